package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ID                   = "id"
	Cost                 = "cost"
	Category             = "category"
	Name                 = "name"
	Brand                = "brand"
	RetailPrice          = "retail_price"
	DepartmentID         = "department_id"
	SKU                  = "sku"
	DistributionCenterID = "distribution_center_id"
)

// Columns lists every column in storage order.
var Columns = []string{
	ID,
	Cost,
	Category,
	Name,
	Brand,
	RetailPrice,
	DepartmentID,
	SKU,
	DistributionCenterID,
}

// Col returns the table-qualified column name.
func Col(field string) string {
	return TableName + "." + field
}
