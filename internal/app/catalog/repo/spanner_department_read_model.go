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
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// SpannerDepartmentReadModel implements DepartmentReadModel for Spanner.
type SpannerDepartmentReadModel struct {
	client *spanner.Client
}

// NewSpannerDepartmentReadModel creates a Spanner backed department read model.
func NewSpannerDepartmentReadModel(client *spanner.Client) contracts.DepartmentReadModel {
	return &SpannerDepartmentReadModel{client: client}
}

func (rm *SpannerDepartmentReadModel) ListDepartments(ctx context.Context) ([]*contracts.DepartmentDTO, error) {
	stmt := departmentQuery().OrderBy(m_department.ID, query.Asc).Build()

	rows, err := queryRows[spannerDepartmentRow](ctx, rm.client.Single(), stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	data := make([]m_department.Data, 0, len(rows))
	for i := range rows {
		data = append(data, rows[i].toData())
	}
	return projection.Departments(data), nil
}

func (rm *SpannerDepartmentReadModel) ListDepartmentsWithProductCount(ctx context.Context) ([]*contracts.DepartmentWithCountDTO, error) {
	stmt := departmentCountQuery().OrderBy(m_department.Col(m_department.ID), query.Asc).Build()

	rows, err := rm.countRows(ctx, stmt)
	if err != nil {
		return nil, err
	}
	return projection.DepartmentsWithCount(rows)
}

func (rm *SpannerDepartmentReadModel) GetDepartmentWithProductCount(ctx context.Context, departmentID int64) (*contracts.DepartmentWithCountDTO, error) {
	stmt := departmentCountQuery().
		Where(query.Eq(m_department.Col(m_department.ID), departmentID)).
		Build()

	rows, err := rm.countRows(ctx, stmt)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrDepartmentNotFound
	}
	return projection.DepartmentWithCount(&rows[0])
}

func (rm *SpannerDepartmentReadModel) GetDepartmentByID(ctx context.Context, departmentID int64) (*contracts.DepartmentDTO, error) {
	return findDepartment(ctx, rm.client.Single(), m_department.ID, departmentID)
}

func (rm *SpannerDepartmentReadModel) GetDepartmentByName(ctx context.Context, name string) (*contracts.DepartmentDTO, error) {
	return findDepartment(ctx, rm.client.Single(), m_department.Name, name)
}

func (rm *SpannerDepartmentReadModel) countRows(ctx context.Context, stmt spanner.Statement) ([]m_department.CountRow, error) {
	rows, err := queryRows[spannerDepartmentRow](ctx, rm.client.Single(), stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to count products per department: %w", err)
	}

	out := make([]m_department.CountRow, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toCountRow())
	}
	return out, nil
}

func departmentQuery() *query.Builder {
	return query.From(m_department.TableName).
		Select(m_department.ID, m_department.Name, m_department.Description)
}

func departmentCountQuery() *query.Builder {
	id := m_department.Col(m_department.ID)
	name := m_department.Col(m_department.Name)
	description := m_department.Col(m_department.Description)

	return query.From(m_department.TableName).
		Select(id, name, description, "COUNT("+m_product.Col(m_product.ID)+") AS "+m_department.ProductCount).
		LeftJoin(m_product.TableName, m_product.Col(m_product.DepartmentID)+" = "+id).
		GroupBy(id, name, description)
}

// findDepartment loads a single department by an exact column match.
func findDepartment(ctx context.Context, q spannerQuerier, field string, value interface{}) (*contracts.DepartmentDTO, error) {
	stmt := departmentQuery().Where(query.Eq(field, value)).Limit(1).Build()

	rows, err := queryRows[spannerDepartmentRow](ctx, q, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to read department: %w", err)
	}
	if len(rows) == 0 {
		return nil, domain.ErrDepartmentNotFound
	}

	data := rows[0].toData()
	return projection.Department(&data), nil
}
