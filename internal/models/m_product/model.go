package m_product

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for Spanner mutations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation that inserts or overwrites a product row.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	departmentID := spanner.NullInt64{}
	if data.DepartmentID != nil {
		departmentID = spanner.NullInt64{Int64: *data.DepartmentID, Valid: true}
	}

	return spanner.InsertOrUpdate(
		TableName,
		Columns,
		[]interface{}{
			data.ID,
			*data.Cost.Rat(),
			data.Category,
			data.Name,
			data.Brand,
			*data.RetailPrice.Rat(),
			departmentID,
			data.SKU,
			data.DistributionCenterID,
		},
	)
}

// DeleteAllMut creates a Spanner mutation that removes every product row.
func (m *Model) DeleteAllMut() *spanner.Mutation {
	return spanner.Delete(TableName, spanner.AllKeys())
}
