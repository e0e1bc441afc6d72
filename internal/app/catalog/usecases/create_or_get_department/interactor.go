package create_or_get_department

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
)

// Request contains the department name to resolve.
type Request struct {
	Name string
}

// Interactor returns the department with a given name, creating it when absent.
type Interactor struct {
	repo contracts.DepartmentRepository
}

// NewInteractor creates a new create-or-get department interactor.
func NewInteractor(repo contracts.DepartmentRepository) *Interactor {
	return &Interactor{
		repo: repo,
	}
}

// Execute is idempotent: repeated calls with the same name return the same
// department. A concurrent insert of the same name is resolved by re-reading
// after the unique constraint rejects this one.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*contracts.DepartmentDTO, error) {
	// 1. Validate request
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidDepartmentName
	}

	// 2. Look up the existing department
	department, err := i.repo.FindByName(ctx, name)
	if err == nil {
		return department, nil
	}
	if !errors.Is(err, domain.ErrDepartmentNotFound) {
		return nil, fmt.Errorf("failed to find department: %w", err)
	}

	// 3. Insert it
	department, err = i.repo.Insert(ctx, name)
	if err == nil {
		return department, nil
	}
	if !errors.Is(err, domain.ErrDepartmentExists) {
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	// 4. Lost the race to another writer
	department, err = i.repo.FindByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to re-read department after conflict: %w", err)
	}
	return department, nil
}
