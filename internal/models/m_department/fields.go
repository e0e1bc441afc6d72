package m_department

// Field name constants for the departments table.
const (
	TableName = "departments"

	ID          = "id"
	Name        = "name"
	Description = "description"

	// ProductCount is the alias of the aggregated column in count queries.
	ProductCount = "product_count"
)

// Col returns the table-qualified column name.
func Col(field string) string {
	return TableName + "." + field
}
