package m_product

import (
	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/models/m_department"
)

// Data represents the database model for the products table.
// Department is only populated when the query joins it.
type Data struct {
	ID                   int64              `gorm:"primaryKey;autoIncrement"`
	Cost                 decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	Category             string             `gorm:"size:255;not null;default:'';index"`
	Name                 string             `gorm:"type:text;not null;default:''"`
	Brand                string             `gorm:"size:255;not null;default:'';index"`
	RetailPrice          decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	DepartmentID         *int64             `gorm:"index"`
	Department           *m_department.Data `gorm:"foreignKey:DepartmentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	SKU                  string             `gorm:"column:sku;size:255;not null;default:''"`
	DistributionCenterID int64              `gorm:"not null;default:0"`
}

// TableName pins the table name for GORM.
func (Data) TableName() string { return TableName }
