package contracts

import (
	"context"
)

// DepartmentRepository defines the department writes used by get-or-insert.
type DepartmentRepository interface {
	// FindByName returns domain.ErrDepartmentNotFound when no row has the name
	FindByName(ctx context.Context, name string) (*DepartmentDTO, error)

	// Insert creates a department without description.
	// It returns domain.ErrDepartmentExists when the unique name constraint rejects the row.
	Insert(ctx context.Context, name string) (*DepartmentDTO, error)
}
