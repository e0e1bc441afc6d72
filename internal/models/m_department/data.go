package m_department

// Data represents the database model for the departments table.
type Data struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:255;not null;uniqueIndex"`
	Description *string `gorm:"type:text"`
}

// TableName pins the table name for GORM.
func (Data) TableName() string { return TableName }

// CountRow is the typed result of the departments LEFT JOIN products aggregation.
type CountRow struct {
	ID           int64
	Name         string
	Description  *string
	ProductCount int64
}
