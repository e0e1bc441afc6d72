package list_departments

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
)

// Request selects whether product counts are aggregated.
type Request struct {
	WithProductCount bool
}

// Result holds Departments or, when counts were requested, Counted.
type Result struct {
	Departments []*contracts.DepartmentDTO
	Counted     []*contracts.DepartmentWithCountDTO
}

// Query handles the department listing.
type Query struct {
	readModel contracts.DepartmentReadModel
}

// NewQuery creates a new list departments query.
func NewQuery(readModel contracts.DepartmentReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute lists every department ordered by id.
func (q *Query) Execute(ctx context.Context, req *Request) (*Result, error) {
	if req.WithProductCount {
		counted, err := q.readModel.ListDepartmentsWithProductCount(ctx)
		if err != nil {
			return nil, err
		}
		return &Result{Counted: counted}, nil
	}

	departments, err := q.readModel.ListDepartments(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Departments: departments}, nil
}
