package list_department_products

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

// Request contains the department and the page to read.
type Request struct {
	DepartmentID int64
	Page         paging.Request
}

// Result is a page of the department's products. The products do not carry
// the nested department; it is returned once in Department.
type Result struct {
	Department *contracts.DepartmentDTO
	Products   *contracts.ProductPage
}

// Query lists the products of an existing department.
type Query struct {
	departments contracts.DepartmentReadModel
	products    contracts.ProductReadModel
}

// NewQuery creates a new list department products query.
func NewQuery(departments contracts.DepartmentReadModel, products contracts.ProductReadModel) *Query {
	return &Query{
		departments: departments,
		products:    products,
	}
}

// Execute returns domain.ErrDepartmentNotFound for an unknown department
// instead of an empty page.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	// 1. Resolve the department
	department, err := q.departments.GetDepartmentByID(ctx, req.DepartmentID)
	if err != nil {
		return nil, err
	}

	// 2. Page its products without the redundant join
	page, err := q.products.ListByDepartmentID(ctx, department.ID, req.Page, contracts.FetchOptions{})
	if err != nil {
		return nil, err
	}

	return &Result{Department: department, Products: page}, nil
}
