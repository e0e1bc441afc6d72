//go:build integration

package integration

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_or_get_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
	"github.com/light-bringer/catalog-service/internal/services"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

var withDept = contracts.FetchOptions{WithDepartment: true}

func page(t *testing.T, n, size int) paging.Request {
	t.Helper()
	r, err := paging.NewRequest(n, size, 100)
	require.NoError(t, err)
	return r
}

func ids(p *contracts.ProductPage) []int64 {
	out := make([]int64, 0, len(p.Items))
	for _, item := range p.Items {
		out = append(out, item.ID)
	}
	return out
}

// runStoreSuite checks one store implementation against the seeded catalog.
// reset must leave the store empty.
func runStoreSuite(t *testing.T, stores *services.Stores, reset func(t *testing.T)) {
	ctx := context.Background()

	reset(t)
	c := testutil.SeedCatalog(t, stores.DeptRepo, stores.Writer)

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, stores.Ping(ctx))
	})

	t.Run("get product with department", func(t *testing.T) {
		p, err := stores.Products.GetProductByID(ctx, 1)
		require.NoError(t, err)

		assert.Equal(t, "Slim Fit Jeans", p.Name)
		assert.Equal(t, "1.50", p.Cost.StringFixed(2))
		assert.Equal(t, "3.00", p.RetailPrice.StringFixed(2))
		assert.Equal(t, "SKU-1", p.SKU)
		require.NotNil(t, p.Department)
		assert.Equal(t, c.Men.ID, p.Department.ID)
		assert.Equal(t, "Men", p.Department.Name)
	})

	t.Run("get product without department", func(t *testing.T) {
		p, err := stores.Products.GetProductByID(ctx, 4)
		require.NoError(t, err)
		assert.Nil(t, p.Department)
	})

	t.Run("get missing product", func(t *testing.T) {
		_, err := stores.Products.GetProductByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrProductNotFound)
	})

	t.Run("list products pages by id", func(t *testing.T) {
		first, err := stores.Products.ListProducts(ctx, page(t, 0, 2), withDept)
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2}, ids(first))
		assert.Equal(t, int64(5), first.TotalItems)
		assert.Equal(t, 3, first.TotalPages)

		last, err := stores.Products.ListProducts(ctx, page(t, 2, 2), withDept)
		require.NoError(t, err)
		assert.Equal(t, []int64{5}, ids(last))

		past, err := stores.Products.ListProducts(ctx, page(t, 7, 2), withDept)
		require.NoError(t, err)
		assert.Empty(t, past.Items)
		assert.Equal(t, int64(5), past.TotalItems)

		lastAddressable := math.MaxInt / 10
		far, err := stores.Products.ListProducts(ctx, page(t, lastAddressable, 10), withDept)
		require.NoError(t, err)
		assert.Empty(t, far.Items)
		assert.Equal(t, lastAddressable, far.CurrentPage)
		assert.Equal(t, int64(5), far.TotalItems)

		_, err = paging.NewRequest(lastAddressable+1, 10, 100)
		assert.ErrorIs(t, err, paging.ErrInvalidPage)
	})

	t.Run("fetch options control the join", func(t *testing.T) {
		p, err := stores.Products.ListProducts(ctx, page(t, 0, 1), contracts.FetchOptions{})
		require.NoError(t, err)
		require.Len(t, p.Items, 1)
		assert.Nil(t, p.Items[0].Department)
	})

	t.Run("filters", func(t *testing.T) {
		tests := []struct {
			name string
			list func() (*contracts.ProductPage, error)
			want []int64
		}{
			{"category", func() (*contracts.ProductPage, error) {
				return stores.Products.ListByCategory(ctx, "Tops", page(t, 0, 10), withDept)
			}, []int64{3, 5}},
			{"category is exact", func() (*contracts.ProductPage, error) {
				return stores.Products.ListByCategory(ctx, "tops", page(t, 0, 10), withDept)
			}, []int64{}},
			{"brand", func() (*contracts.ProductPage, error) {
				return stores.Products.ListByBrand(ctx, "Levi's", page(t, 0, 10), withDept)
			}, []int64{1, 2}},
			{"department id", func() (*contracts.ProductPage, error) {
				return stores.Products.ListByDepartmentID(ctx, c.Women.ID, page(t, 0, 10), withDept)
			}, []int64{3, 5}},
			{"unknown department id", func() (*contracts.ProductPage, error) {
				return stores.Products.ListByDepartmentID(ctx, 999, page(t, 0, 10), withDept)
			}, []int64{}},
			{"department name", func() (*contracts.ProductPage, error) {
				return stores.Products.ListByDepartmentName(ctx, "Men", page(t, 0, 10), withDept)
			}, []int64{1, 2}},
			{"department name is case sensitive", func() (*contracts.ProductPage, error) {
				return stores.Products.ListByDepartmentName(ctx, "men", page(t, 0, 10), withDept)
			}, []int64{}},
			{"search ignores case", func() (*contracts.ProductPage, error) {
				return stores.Products.SearchByName(ctx, "JEANS", page(t, 0, 10), withDept)
			}, []int64{1, 2}},
			{"search treats percent literally", func() (*contracts.ProductPage, error) {
				return stores.Products.SearchByName(ctx, "100%", page(t, 0, 10), withDept)
			}, []int64{5}},
			{"search treats underscore literally", func() (*contracts.ProductPage, error) {
				return stores.Products.SearchByName(ctx, "n_t", page(t, 0, 10), withDept)
			}, []int64{5}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p, err := tt.list()
				require.NoError(t, err)
				assert.Equal(t, tt.want, ids(p))
				assert.Equal(t, int64(len(tt.want)), p.TotalItems)
			})
		}
	})

	t.Run("filtered rows carry their department", func(t *testing.T) {
		p, err := stores.Products.ListByDepartmentName(ctx, "Women", page(t, 0, 10), withDept)
		require.NoError(t, err)
		for _, item := range p.Items {
			require.NotNil(t, item.Department)
			assert.Equal(t, "Women", item.Department.Name)
		}
	})

	t.Run("departments", func(t *testing.T) {
		list, err := stores.Departments.ListDepartments(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Men", list[0].Name)

		counted, err := stores.Departments.ListDepartmentsWithProductCount(ctx)
		require.NoError(t, err)
		counts := map[string]int64{}
		for _, d := range counted {
			counts[d.Name] = d.ProductCount
		}
		assert.Equal(t, map[string]int64{"Men": 2, "Women": 2, "Empty": 0}, counts)

		empty, err := stores.Departments.GetDepartmentWithProductCount(ctx, c.Empty.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), empty.ProductCount)

		_, err = stores.Departments.GetDepartmentWithProductCount(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)

		byName, err := stores.Departments.GetDepartmentByName(ctx, "Women")
		require.NoError(t, err)
		assert.Equal(t, c.Women.ID, byName.ID)

		_, err = stores.Departments.GetDepartmentByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
	})

	t.Run("department insert rejects duplicates", func(t *testing.T) {
		_, err := stores.DeptRepo.Insert(ctx, "Men")
		assert.ErrorIs(t, err, domain.ErrDepartmentExists)
	})

	t.Run("create or get department under contention", func(t *testing.T) {
		interactor := create_or_get_department.NewInteractor(stores.DeptRepo)

		const workers = 8
		var wg sync.WaitGroup
		got := make([]int64, workers)
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				d, err := interactor.Execute(ctx, &create_or_get_department.Request{Name: "Kids"})
				if err == nil {
					got[i] = d.ID
				}
				errs[i] = err
			}(i)
		}
		wg.Wait()

		require.NoError(t, errors.Join(errs...))
		for _, id := range got {
			assert.Equal(t, got[0], id)
		}
	})

	t.Run("writer upserts by id", func(t *testing.T) {
		row := testutil.NewProduct(1, "Skinny Jeans", "Jeans", "Levi's", &c.Men.ID)
		require.NoError(t, stores.Writer.UpsertProducts(ctx, []*m_product.Data{row}))

		p, err := stores.Products.GetProductByID(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, "Skinny Jeans", p.Name)

		all, err := stores.Products.ListProducts(ctx, page(t, 0, 10), withDept)
		require.NoError(t, err)
		assert.Equal(t, int64(5), all.TotalItems)
	})
}
