package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/projection"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
)

// pgUniqueViolation is the SQLSTATE postgres reports for a unique constraint violation.
const pgUniqueViolation = "23505"

// DepartmentRepo implements DepartmentRepository on GORM.
type DepartmentRepo struct {
	db *gorm.DB
}

// NewDepartmentRepo creates a GORM backed department repository.
func NewDepartmentRepo(db *gorm.DB) contracts.DepartmentRepository {
	return &DepartmentRepo{db: db}
}

func (r *DepartmentRepo) FindByName(ctx context.Context, name string) (*contracts.DepartmentDTO, error) {
	row, err := takeDepartment(r.db.WithContext(ctx), m_department.Name, name)
	if err != nil {
		return nil, err
	}
	return projection.Department(row), nil
}

// Insert creates the department and lets the database assign its id.
func (r *DepartmentRepo) Insert(ctx context.Context, name string) (*contracts.DepartmentDTO, error) {
	row := &m_department.Data{Name: name}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", domain.ErrDepartmentExists, name)
		}
		return nil, fmt.Errorf("failed to insert department: %w", err)
	}
	return projection.Department(row), nil
}

// isUniqueViolation recognises both the translated GORM error and the raw pgx error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
