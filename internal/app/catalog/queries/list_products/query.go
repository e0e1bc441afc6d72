package list_products

import (
	"context"
	"fmt"
	"strings"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

// Filter selects which products are listed.
type Filter int

const (
	All Filter = iota
	ByCategory
	ByBrand
	ByDepartmentID
	ByDepartmentName
	ByName
)

func (f Filter) String() string {
	switch f {
	case All:
		return "all"
	case ByCategory:
		return "category"
	case ByBrand:
		return "brand"
	case ByDepartmentID:
		return "department_id"
	case ByDepartmentName:
		return "department_name"
	case ByName:
		return "name"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// Request contains filtering and pagination parameters.
// Value carries the category, brand, department name or search term;
// DepartmentID is used by ByDepartmentID only.
type Request struct {
	Filter       Filter
	Value        string
	DepartmentID int64
	Page         paging.Request
	Options      contracts.FetchOptions
}

// Query handles the paged product listings.
type Query struct {
	readModel contracts.ProductReadModel
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ProductReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves one page of products matching the filter.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductPage, error) {
	switch req.Filter {
	case All:
		return q.readModel.ListProducts(ctx, req.Page, req.Options)
	case ByCategory:
		return q.readModel.ListByCategory(ctx, req.Value, req.Page, req.Options)
	case ByBrand:
		return q.readModel.ListByBrand(ctx, req.Value, req.Page, req.Options)
	case ByDepartmentID:
		return q.readModel.ListByDepartmentID(ctx, req.DepartmentID, req.Page, req.Options)
	case ByDepartmentName:
		return q.readModel.ListByDepartmentName(ctx, req.Value, req.Page, req.Options)
	case ByName:
		if strings.TrimSpace(req.Value) == "" {
			return nil, fmt.Errorf("%w: search term must not be empty", domain.ErrInvalidParameter)
		}
		return q.readModel.SearchByName(ctx, req.Value, req.Page, req.Options)
	}
	return nil, fmt.Errorf("%w: unknown filter %s", domain.ErrInvalidParameter, req.Filter)
}
