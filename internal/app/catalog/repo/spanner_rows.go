package repo

import (
	"context"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

// Aliases of the joined department columns in product queries.
const (
	joinedDeptID          = "dept_id"
	joinedDeptName        = "dept_name"
	joinedDeptDescription = "dept_description"
)

// spannerQuerier is satisfied by single-use and read-only transactions.
type spannerQuerier interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

type spannerDepartmentRow struct {
	ID           int64              `spanner:"id"`
	Name         string             `spanner:"name"`
	Description  spanner.NullString `spanner:"description"`
	ProductCount int64              `spanner:"product_count"`
}

func (r *spannerDepartmentRow) toData() m_department.Data {
	return m_department.Data{
		ID:          r.ID,
		Name:        r.Name,
		Description: nullStringPtr(r.Description),
	}
}

func (r *spannerDepartmentRow) toCountRow() m_department.CountRow {
	return m_department.CountRow{
		ID:           r.ID,
		Name:         r.Name,
		Description:  nullStringPtr(r.Description),
		ProductCount: r.ProductCount,
	}
}

type spannerProductRow struct {
	ID                   int64              `spanner:"id"`
	Cost                 big.Rat            `spanner:"cost"`
	Category             string             `spanner:"category"`
	Name                 string             `spanner:"name"`
	Brand                string             `spanner:"brand"`
	RetailPrice          big.Rat            `spanner:"retail_price"`
	DepartmentID         spanner.NullInt64  `spanner:"department_id"`
	SKU                  string             `spanner:"sku"`
	DistributionCenterID int64              `spanner:"distribution_center_id"`
	DeptID               spanner.NullInt64  `spanner:"dept_id"`
	DeptName             spanner.NullString `spanner:"dept_name"`
	DeptDescription      spanner.NullString `spanner:"dept_description"`
}

func (r *spannerProductRow) toData() (m_product.Data, error) {
	cost, err := ratToDecimal(&r.Cost)
	if err != nil {
		return m_product.Data{}, fmt.Errorf("product %d cost: %w", r.ID, err)
	}
	retail, err := ratToDecimal(&r.RetailPrice)
	if err != nil {
		return m_product.Data{}, fmt.Errorf("product %d retail price: %w", r.ID, err)
	}

	data := m_product.Data{
		ID:                   r.ID,
		Cost:                 cost,
		Category:             r.Category,
		Name:                 r.Name,
		Brand:                r.Brand,
		RetailPrice:          retail,
		SKU:                  r.SKU,
		DistributionCenterID: r.DistributionCenterID,
	}
	if r.DepartmentID.Valid {
		id := r.DepartmentID.Int64
		data.DepartmentID = &id
	}
	if r.DeptID.Valid {
		data.Department = &m_department.Data{
			ID:          r.DeptID.Int64,
			Name:        r.DeptName.StringVal,
			Description: nullStringPtr(r.DeptDescription),
		}
	}
	return data, nil
}

// productColumns returns the qualified product columns, optionally followed
// by the aliased columns of a joined departments table.
func productColumns(withDepartment bool) []string {
	cols := make([]string, 0, len(m_product.Columns)+3)
	for _, c := range m_product.Columns {
		cols = append(cols, m_product.Col(c))
	}
	if withDepartment {
		cols = append(cols,
			m_department.Col(m_department.ID)+" AS "+joinedDeptID,
			m_department.Col(m_department.Name)+" AS "+joinedDeptName,
			m_department.Col(m_department.Description)+" AS "+joinedDeptDescription,
		)
	}
	return cols
}

// ratToDecimal converts a NUMERIC value; prices are stored with two decimals.
func ratToDecimal(r *big.Rat) (decimal.Decimal, error) {
	return decimal.NewFromString(r.FloatString(2))
}

func nullStringPtr(s spanner.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.StringVal
	return &v
}

// queryRows runs stmt and decodes every row into T.
func queryRows[T any](ctx context.Context, q spannerQuerier, stmt spanner.Statement) ([]T, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	var out []T
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate rows: %w", err)
		}

		var v T
		if err := row.ToStruct(&v); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		out = append(out, v)
	}
}

// queryCount runs a single-column COUNT statement.
func queryCount(ctx context.Context, q spannerQuerier, stmt spanner.Statement) (int64, error) {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to read count: %w", err)
	}

	var n int64
	if err := row.Column(0, &n); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return n, nil
}
