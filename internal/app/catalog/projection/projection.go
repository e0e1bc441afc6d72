// Package projection turns stored rows into the DTOs returned by the read models.
// Every function is pure; the only failure is a row that contradicts its own join.
package projection

import (
	"fmt"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

// Department maps a department row.
func Department(row *m_department.Data) *contracts.DepartmentDTO {
	return &contracts.DepartmentDTO{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
	}
}

// Departments maps department rows, preserving order.
func Departments(rows []m_department.Data) []*contracts.DepartmentDTO {
	out := make([]*contracts.DepartmentDTO, 0, len(rows))
	for i := range rows {
		out = append(out, Department(&rows[i]))
	}
	return out
}

// DepartmentWithCount maps a department aggregation row.
func DepartmentWithCount(row *m_department.CountRow) (*contracts.DepartmentWithCountDTO, error) {
	if row.ProductCount < 0 {
		return nil, fmt.Errorf("%w: department %d has product count %d", domain.ErrIntegrity, row.ID, row.ProductCount)
	}
	return &contracts.DepartmentWithCountDTO{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		ProductCount: row.ProductCount,
	}, nil
}

// DepartmentsWithCount maps department aggregation rows, preserving order.
func DepartmentsWithCount(rows []m_department.CountRow) ([]*contracts.DepartmentWithCountDTO, error) {
	out := make([]*contracts.DepartmentWithCountDTO, 0, len(rows))
	for i := range rows {
		dto, err := DepartmentWithCount(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}

// Product maps a product row. When withDepartment is set the row is expected to
// carry its joined department; a reference without a joined row is an integrity error.
func Product(row *m_product.Data, withDepartment bool) (*contracts.ProductDTO, error) {
	dto := &contracts.ProductDTO{
		ID:                   row.ID,
		Cost:                 row.Cost,
		Category:             row.Category,
		Name:                 row.Name,
		Brand:                row.Brand,
		RetailPrice:          row.RetailPrice,
		SKU:                  row.SKU,
		DistributionCenterID: row.DistributionCenterID,
	}

	if !withDepartment || row.DepartmentID == nil {
		return dto, nil
	}

	if row.Department == nil || row.Department.ID != *row.DepartmentID {
		return nil, fmt.Errorf("%w: product %d references department %d which was not joined",
			domain.ErrIntegrity, row.ID, *row.DepartmentID)
	}

	dto.Department = Department(row.Department)
	return dto, nil
}

// Products maps product rows, preserving order.
func Products(rows []m_product.Data, withDepartment bool) ([]*contracts.ProductDTO, error) {
	out := make([]*contracts.ProductDTO, 0, len(rows))
	for i := range rows {
		dto, err := Product(&rows[i], withDepartment)
		if err != nil {
			return nil, err
		}
		out = append(out, dto)
	}
	return out, nil
}
