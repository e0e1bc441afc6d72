package contracts

import (
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

// DepartmentDTO is the projection of a department row.
type DepartmentDTO struct {
	ID          int64
	Name        string
	Description *string
}

// DepartmentWithCountDTO is a department together with the number of products it holds.
type DepartmentWithCountDTO struct {
	ID           int64
	Name         string
	Description  *string
	ProductCount int64
}

// ProductDTO is the projection of a product row.
// Department is nil when the product has no department or it was not fetched.
type ProductDTO struct {
	ID                   int64
	Cost                 decimal.Decimal
	Category             string
	Name                 string
	Brand                string
	RetailPrice          decimal.Decimal
	SKU                  string
	DistributionCenterID int64
	Department           *DepartmentDTO
}

// ProductPage is a page of projected products.
type ProductPage = paging.Page[*ProductDTO]

// FetchOptions selects which relations a product query joins.
type FetchOptions struct {
	WithDepartment bool
}
