package list_products

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/catalogtest"
	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

func newStore() *catalogtest.Store {
	s := catalogtest.NewStore()
	s.AddDepartment(1, "Men", nil)
	s.AddDepartment(2, "Women", nil)
	s.AddProduct(1, "Running Shoes", "Shoes", "Acme", 1)
	s.AddProduct(2, "Trail Shoes", "Shoes", "Zed", 2)
	s.AddProduct(3, "Blue Shirt", "Tops", "Acme", 1)
	s.AddProduct(4, "Orphan Sock", "Socks", "Acme", 0)
	return s
}

func page(t *testing.T, p, size int) paging.Request {
	t.Helper()
	r, err := paging.NewRequest(p, size, 100)
	require.NoError(t, err)
	return r
}

func ids(items []*contracts.ProductDTO) []int64 {
	out := make([]int64, 0, len(items))
	for _, p := range items {
		out = append(out, p.ID)
	}
	return out
}

func TestQuery_CategoryFirstPage(t *testing.T) {
	q := NewQuery(newStore())

	res, err := q.Execute(context.Background(), &Request{
		Filter: ByCategory,
		Value:  "Shoes",
		Page:   page(t, 0, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, ids(res.Items))
	assert.Equal(t, int64(2), res.TotalItems)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 0, res.CurrentPage)
	assert.Equal(t, 1, res.Size)
}

func TestQuery_Filters(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want []int64
	}{
		{"all", Request{Filter: All}, []int64{1, 2, 3, 4}},
		{"brand", Request{Filter: ByBrand, Value: "Acme"}, []int64{1, 3, 4}},
		{"brand is case sensitive", Request{Filter: ByBrand, Value: "acme"}, []int64{}},
		{"department id", Request{Filter: ByDepartmentID, DepartmentID: 1}, []int64{1, 3}},
		{"department name", Request{Filter: ByDepartmentName, Value: "Women"}, []int64{2}},
		{"department name is case sensitive", Request{Filter: ByDepartmentName, Value: "women"}, []int64{}},
		{"search ignores case", Request{Filter: ByName, Value: "shirt"}, []int64{3}},
		{"search matches substring", Request{Filter: ByName, Value: "SHOE"}, []int64{1, 2}},
		{"search treats wildcard literally", Request{Filter: ByName, Value: "%"}, []int64{}},
		{"no match", Request{Filter: ByCategory, Value: "Hats"}, []int64{}},
	}

	q := NewQuery(newStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.Page = page(t, 0, 10)

			res, err := q.Execute(context.Background(), &req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(res.Items))
			assert.Equal(t, int64(len(tt.want)), res.TotalItems)
		})
	}
}

func TestQuery_PagePastEnd(t *testing.T) {
	q := NewQuery(newStore())

	res, err := q.Execute(context.Background(), &Request{Filter: All, Page: page(t, 5, 2)})
	require.NoError(t, err)

	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, int64(4), res.TotalItems)
	assert.Equal(t, 2, res.TotalPages)
	assert.Equal(t, 5, res.CurrentPage)
}

func TestQuery_PagesCoverAllItemsOnce(t *testing.T) {
	q := NewQuery(newStore())

	var seen []int64
	for p := 0; p < 3; p++ {
		res, err := q.Execute(context.Background(), &Request{Filter: All, Page: page(t, p, 3)})
		require.NoError(t, err)
		assert.LessOrEqual(t, len(res.Items), 3)
		seen = append(seen, ids(res.Items)...)
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, seen)
}

func TestQuery_DepartmentProjection(t *testing.T) {
	q := NewQuery(newStore())

	with, err := q.Execute(context.Background(), &Request{
		Filter:  All,
		Page:    page(t, 0, 10),
		Options: contracts.FetchOptions{WithDepartment: true},
	})
	require.NoError(t, err)
	require.NotNil(t, with.Items[0].Department)
	assert.Equal(t, "Men", with.Items[0].Department.Name)
	assert.Nil(t, with.Items[3].Department, "product without department")

	without, err := q.Execute(context.Background(), &Request{Filter: All, Page: page(t, 0, 10)})
	require.NoError(t, err)
	assert.Nil(t, without.Items[0].Department)
}

func TestQuery_EmptySearchTerm(t *testing.T) {
	q := NewQuery(newStore())

	_, err := q.Execute(context.Background(), &Request{Filter: ByName, Value: "  ", Page: page(t, 0, 10)})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestQuery_UnknownFilter(t *testing.T) {
	q := NewQuery(newStore())

	_, err := q.Execute(context.Background(), &Request{Filter: Filter(42), Page: page(t, 0, 10)})
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.Contains(t, err.Error(), "Filter(42)")
}

func TestQuery_StoreError(t *testing.T) {
	s := newStore()
	s.Err = errors.New("connection refused")

	_, err := NewQuery(s).Execute(context.Background(), &Request{Filter: All, Page: page(t, 0, 10)})
	assert.EqualError(t, err, "connection refused")
}
