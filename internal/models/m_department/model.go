package m_department

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for Spanner mutations on the departments table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a department.
// Insert (not InsertOrUpdate) so the unique index on name rejects duplicates.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	description := spanner.NullString{}
	if data.Description != nil {
		description = spanner.NullString{StringVal: *data.Description, Valid: true}
	}

	return spanner.Insert(
		TableName,
		[]string{ID, Name, Description},
		[]interface{}{data.ID, data.Name, description},
	)
}

// DeleteAllMut creates a Spanner mutation that removes every department row.
func (m *Model) DeleteAllMut() *spanner.Mutation {
	return spanner.Delete(TableName, spanner.AllKeys())
}
