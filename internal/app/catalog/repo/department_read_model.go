package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/projection"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

// DepartmentReadModelImpl implements DepartmentReadModel on GORM.
type DepartmentReadModelImpl struct {
	db *gorm.DB
}

// NewDepartmentReadModel creates a GORM backed department read model.
func NewDepartmentReadModel(db *gorm.DB) contracts.DepartmentReadModel {
	return &DepartmentReadModelImpl{db: db}
}

// ListDepartments returns every department ordered by id.
func (rm *DepartmentReadModelImpl) ListDepartments(ctx context.Context) ([]*contracts.DepartmentDTO, error) {
	var rows []m_department.Data
	if err := rm.db.WithContext(ctx).Order(m_department.ID + " ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return projection.Departments(rows), nil
}

// ListDepartmentsWithProductCount returns every department with its product count.
// Departments without products are included with a count of zero.
func (rm *DepartmentReadModelImpl) ListDepartmentsWithProductCount(ctx context.Context) ([]*contracts.DepartmentWithCountDTO, error) {
	var rows []m_department.CountRow
	if err := rm.countQuery(ctx).Order(m_department.Col(m_department.ID) + " ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count products per department: %w", err)
	}
	return projection.DepartmentsWithCount(rows)
}

// GetDepartmentWithProductCount returns one department with its product count.
func (rm *DepartmentReadModelImpl) GetDepartmentWithProductCount(ctx context.Context, departmentID int64) (*contracts.DepartmentWithCountDTO, error) {
	var rows []m_department.CountRow
	err := rm.countQuery(ctx).
		Where(m_department.Col(m_department.ID)+" = ?", departmentID).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count department products: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrDepartmentNotFound
	}
	return projection.DepartmentWithCount(&rows[0])
}

func (rm *DepartmentReadModelImpl) GetDepartmentByID(ctx context.Context, departmentID int64) (*contracts.DepartmentDTO, error) {
	return rm.take(ctx, m_department.ID, departmentID)
}

// GetDepartmentByName matches the name exactly, including case.
func (rm *DepartmentReadModelImpl) GetDepartmentByName(ctx context.Context, name string) (*contracts.DepartmentDTO, error) {
	return rm.take(ctx, m_department.Name, name)
}

func (rm *DepartmentReadModelImpl) take(ctx context.Context, field string, value interface{}) (*contracts.DepartmentDTO, error) {
	row, err := takeDepartment(rm.db.WithContext(ctx), field, value)
	if err != nil {
		return nil, err
	}
	return projection.Department(row), nil
}

func (rm *DepartmentReadModelImpl) countQuery(ctx context.Context) *gorm.DB {
	id := m_department.Col(m_department.ID)
	name := m_department.Col(m_department.Name)
	description := m_department.Col(m_department.Description)

	return rm.db.WithContext(ctx).
		Table(m_department.TableName).
		Select(id+", "+name+", "+description+", COUNT("+m_product.Col(m_product.ID)+") AS "+m_department.ProductCount).
		Joins("LEFT JOIN "+m_product.TableName+" ON "+m_product.Col(m_product.DepartmentID)+" = "+id).
		Group(id + ", " + name + ", " + description)
}

// takeDepartment loads a single department row by an exact column match.
func takeDepartment(db *gorm.DB, field string, value interface{}) (*m_department.Data, error) {
	var row m_department.Data
	if err := db.Where(m_department.Col(field)+" = ?", value).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to read department: %w", err)
	}
	return &row, nil
}
