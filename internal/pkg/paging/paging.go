package paging

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidPage is returned for a negative page index or one whose offset overflows.
	ErrInvalidPage = errors.New("invalid page index")
	// ErrInvalidSize is returned for a page size of zero or less.
	ErrInvalidSize = errors.New("page size must be greater than zero")
)

// Request is a validated zero-based page index and page size.
type Request struct {
	Page int
	Size int
}

// NewRequest validates page and size. A size above maxSize is clamped to maxSize
// when maxSize is positive. A page whose offset does not fit in an int is invalid.
func NewRequest(page, size, maxSize int) (Request, error) {
	if page < 0 {
		return Request{}, fmt.Errorf("%w: %d", ErrInvalidPage, page)
	}
	if size <= 0 {
		return Request{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if maxSize > 0 && size > maxSize {
		size = maxSize
	}
	if page > math.MaxInt/size {
		return Request{}, fmt.Errorf("%w: %d is too large for size %d", ErrInvalidPage, page, size)
	}
	return Request{Page: page, Size: size}, nil
}

// Offset returns the number of rows to skip.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// Limit returns the maximum number of rows to fetch.
func (r Request) Limit() int {
	return r.Size
}

// Meta describes where a page sits in the full result set.
type Meta struct {
	CurrentPage int
	Size        int
	TotalItems  int64
	TotalPages  int
}

// NewMeta computes page metadata for a request and the total number of matching rows.
func NewMeta(r Request, totalItems int64) Meta {
	return Meta{
		CurrentPage: r.Page,
		Size:        r.Size,
		TotalItems:  totalItems,
		TotalPages:  TotalPages(totalItems, r.Size),
	}
}

// TotalPages returns ceil(totalItems / size), or 0 when size is not positive.
func TotalPages(totalItems int64, size int) int {
	if size <= 0 || totalItems <= 0 {
		return 0
	}
	s := int64(size)
	return int((totalItems + s - 1) / s)
}

// Page is one slice of an ordered result set.
type Page[T any] struct {
	Items []T
	Meta
}

// NewPage builds a page. Items is never nil so that empty pages render as [].
func NewPage[T any](items []T, r Request, totalItems int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items: items,
		Meta:  NewMeta(r, totalItems),
	}
}
