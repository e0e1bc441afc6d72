package get_department

import (
	"context"
	"fmt"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// Request identifies a department by ID or, when Name is set, by exact name.
type Request struct {
	DepartmentID int64
	Name         string
}

// Query handles single department lookups.
type Query struct {
	readModel contracts.DepartmentReadModel
}

// NewQuery creates a new get department query.
func NewQuery(readModel contracts.DepartmentReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves one department.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.DepartmentDTO, error) {
	if req.Name != "" {
		return q.readModel.GetDepartmentByName(ctx, req.Name)
	}
	return q.readModel.GetDepartmentByID(ctx, req.DepartmentID)
}

// ExecuteWithCount retrieves one department by ID with its product count.
func (q *Query) ExecuteWithCount(ctx context.Context, req *Request) (*contracts.DepartmentWithCountDTO, error) {
	if req.Name != "" {
		return nil, fmt.Errorf("%w: product count lookup is by id only", domain.ErrInvalidParameter)
	}
	return q.readModel.GetDepartmentWithProductCount(ctx, req.DepartmentID)
}
