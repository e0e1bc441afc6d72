package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/projection"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// SpannerProductReadModel implements ProductReadModel for Spanner.
type SpannerProductReadModel struct {
	client *spanner.Client
}

// NewSpannerProductReadModel creates a Spanner backed product read model.
func NewSpannerProductReadModel(client *spanner.Client) contracts.ProductReadModel {
	return &SpannerProductReadModel{client: client}
}

func (rm *SpannerProductReadModel) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	stmt := productQuery(true).
		Where(query.Eq(m_product.Col(m_product.ID), productID)).
		Limit(1).
		Build()

	rows, err := queryRows[spannerProductRow](ctx, rm.client.Single(), stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to read product: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrProductNotFound
	}

	data, err := rows[0].toData()
	if err != nil {
		return nil, err
	}
	return projection.Product(&data, true)
}

func (rm *SpannerProductReadModel) ListProducts(ctx context.Context, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, func(b *query.Builder) *query.Builder { return b }, page, opts)
}

func (rm *SpannerProductReadModel) ListByCategory(ctx context.Context, category string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, whereEq(m_product.Category, category), page, opts)
}

func (rm *SpannerProductReadModel) ListByBrand(ctx context.Context, brand string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, whereEq(m_product.Brand, brand), page, opts)
}

func (rm *SpannerProductReadModel) ListByDepartmentID(ctx context.Context, departmentID int64, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, whereEq(m_product.DepartmentID, departmentID), page, opts)
}

func (rm *SpannerProductReadModel) ListByDepartmentName(ctx context.Context, departmentName string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	filter := func(b *query.Builder) *query.Builder {
		return b.
			Join(m_department.TableName+" dn", "dn."+m_department.ID+" = "+m_product.Col(m_product.DepartmentID)).
			Where(query.Eq("dn."+m_department.Name, departmentName))
	}
	return rm.list(ctx, filter, page, opts)
}

func (rm *SpannerProductReadModel) SearchByName(ctx context.Context, substring string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	filter := func(b *query.Builder) *query.Builder {
		return b.Where(query.ContainsFold(m_product.Col(m_product.Name), substring))
	}
	return rm.list(ctx, filter, page, opts)
}

// list reads the count and the page from the same snapshot.
func (rm *SpannerProductReadModel) list(ctx context.Context, filter func(*query.Builder) *query.Builder, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := queryCount(ctx, txn, filter(query.From(m_product.TableName)).Count().Build())
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if int64(page.Offset()) >= total {
		return paging.NewPage[*contracts.ProductDTO](nil, page, total), nil
	}

	stmt := filter(productQuery(opts.WithDepartment)).
		OrderBy(m_product.Col(m_product.ID), query.Asc).
		Limit(int64(page.Limit())).
		Offset(int64(page.Offset())).
		Build()

	rows, err := queryRows[spannerProductRow](ctx, txn, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	data := make([]m_product.Data, 0, len(rows))
	for i := range rows {
		d, err := rows[i].toData()
		if err != nil {
			return nil, err
		}
		data = append(data, d)
	}

	items, err := projection.Products(data, opts.WithDepartment)
	if err != nil {
		return nil, err
	}
	return paging.NewPage(items, page, total), nil
}

// productQuery selects product columns, left joining departments when requested.
func productQuery(withDepartment bool) *query.Builder {
	b := query.From(m_product.TableName).Select(productColumns(withDepartment)...)
	if withDepartment {
		b = b.LeftJoin(m_department.TableName,
			m_department.Col(m_department.ID)+" = "+m_product.Col(m_product.DepartmentID))
	}
	return b
}

func whereEq(field string, value interface{}) func(*query.Builder) *query.Builder {
	return func(b *query.Builder) *query.Builder {
		return b.Where(query.Eq(m_product.Col(field), value))
	}
}
