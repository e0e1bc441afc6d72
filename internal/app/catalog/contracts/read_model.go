package contracts

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

// ProductReadModel defines the product queries.
// Every list is ordered by product id ascending so pages are stable across calls.
type ProductReadModel interface {
	// GetProductByID retrieves a product with its department
	GetProductByID(ctx context.Context, productID int64) (*ProductDTO, error)

	// ListProducts pages over all products
	ListProducts(ctx context.Context, page paging.Request, opts FetchOptions) (*ProductPage, error)

	// ListByCategory pages over products with an exact category match
	ListByCategory(ctx context.Context, category string, page paging.Request, opts FetchOptions) (*ProductPage, error)

	// ListByBrand pages over products with an exact brand match
	ListByBrand(ctx context.Context, brand string, page paging.Request, opts FetchOptions) (*ProductPage, error)

	// ListByDepartmentID pages over products referencing the department
	ListByDepartmentID(ctx context.Context, departmentID int64, page paging.Request, opts FetchOptions) (*ProductPage, error)

	// ListByDepartmentName pages over products whose department has exactly this name
	ListByDepartmentName(ctx context.Context, departmentName string, page paging.Request, opts FetchOptions) (*ProductPage, error)

	// SearchByName pages over products whose name contains the substring, ignoring case
	SearchByName(ctx context.Context, substring string, page paging.Request, opts FetchOptions) (*ProductPage, error)
}

// DepartmentReadModel defines the department queries.
type DepartmentReadModel interface {
	ListDepartments(ctx context.Context) ([]*DepartmentDTO, error)
	ListDepartmentsWithProductCount(ctx context.Context) ([]*DepartmentWithCountDTO, error)
	GetDepartmentWithProductCount(ctx context.Context, departmentID int64) (*DepartmentWithCountDTO, error)
	GetDepartmentByID(ctx context.Context, departmentID int64) (*DepartmentDTO, error)
	GetDepartmentByName(ctx context.Context, name string) (*DepartmentDTO, error)
}
