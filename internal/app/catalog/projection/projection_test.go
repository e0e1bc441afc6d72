package projection

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

func ptr[T any](v T) *T { return &v }

func productRow() *m_product.Data {
	return &m_product.Data{
		ID:                   7,
		Cost:                 decimal.RequireFromString("12.30"),
		Category:             "Shoes",
		Name:                 "Blue Shirt",
		Brand:                "Acme",
		RetailPrice:          decimal.RequireFromString("24.99"),
		SKU:                  "SKU-7",
		DistributionCenterID: 3,
	}
}

func TestProduct(t *testing.T) {
	t.Run("copies scalar fields", func(t *testing.T) {
		dto, err := Product(productRow(), true)
		require.NoError(t, err)

		assert.Equal(t, int64(7), dto.ID)
		assert.True(t, decimal.RequireFromString("12.30").Equal(dto.Cost))
		assert.Equal(t, "Shoes", dto.Category)
		assert.Equal(t, "Blue Shirt", dto.Name)
		assert.Equal(t, "Acme", dto.Brand)
		assert.True(t, decimal.RequireFromString("24.99").Equal(dto.RetailPrice))
		assert.Equal(t, "SKU-7", dto.SKU)
		assert.Equal(t, int64(3), dto.DistributionCenterID)
	})

	t.Run("null department projects to nil", func(t *testing.T) {
		dto, err := Product(productRow(), true)
		require.NoError(t, err)
		assert.Nil(t, dto.Department)
	})

	t.Run("joined department is nested", func(t *testing.T) {
		row := productRow()
		row.DepartmentID = ptr(int64(2))
		row.Department = &m_department.Data{ID: 2, Name: "Men", Description: ptr("Menswear")}

		dto, err := Product(row, true)
		require.NoError(t, err)
		require.NotNil(t, dto.Department)
		assert.Equal(t, int64(2), dto.Department.ID)
		assert.Equal(t, "Men", dto.Department.Name)
		assert.Equal(t, "Menswear", *dto.Department.Description)
	})

	t.Run("department not requested is omitted", func(t *testing.T) {
		row := productRow()
		row.DepartmentID = ptr(int64(2))

		dto, err := Product(row, false)
		require.NoError(t, err)
		assert.Nil(t, dto.Department)
	})

	t.Run("reference without joined row is an integrity error", func(t *testing.T) {
		row := productRow()
		row.DepartmentID = ptr(int64(2))

		_, err := Product(row, true)
		assert.ErrorIs(t, err, domain.ErrIntegrity)
	})

	t.Run("mismatched joined row is an integrity error", func(t *testing.T) {
		row := productRow()
		row.DepartmentID = ptr(int64(2))
		row.Department = &m_department.Data{ID: 9, Name: "Women"}

		_, err := Product(row, true)
		assert.ErrorIs(t, err, domain.ErrIntegrity)
	})
}

func TestProducts(t *testing.T) {
	t.Run("preserves order", func(t *testing.T) {
		rows := []m_product.Data{{ID: 3}, {ID: 1}, {ID: 2}}

		dtos, err := Products(rows, false)
		require.NoError(t, err)
		require.Len(t, dtos, 3)
		assert.Equal(t, int64(3), dtos[0].ID)
		assert.Equal(t, int64(1), dtos[1].ID)
		assert.Equal(t, int64(2), dtos[2].ID)
	})

	t.Run("empty input gives empty slice", func(t *testing.T) {
		dtos, err := Products(nil, true)
		require.NoError(t, err)
		assert.NotNil(t, dtos)
		assert.Empty(t, dtos)
	})

	t.Run("one bad row fails the whole page", func(t *testing.T) {
		rows := []m_product.Data{{ID: 1}, {ID: 2, DepartmentID: ptr(int64(5))}}

		_, err := Products(rows, true)
		assert.ErrorIs(t, err, domain.ErrIntegrity)
	})
}

func TestDepartmentWithCount(t *testing.T) {
	t.Run("zero products stays zero", func(t *testing.T) {
		dto, err := DepartmentWithCount(&m_department.CountRow{ID: 1, Name: "Empty"})
		require.NoError(t, err)
		assert.Equal(t, int64(0), dto.ProductCount)
		assert.Nil(t, dto.Description)
	})

	t.Run("negative count is rejected", func(t *testing.T) {
		_, err := DepartmentWithCount(&m_department.CountRow{ID: 1, ProductCount: -1})
		assert.ErrorIs(t, err, domain.ErrIntegrity)
	})

	t.Run("maps all rows", func(t *testing.T) {
		dtos, err := DepartmentsWithCount([]m_department.CountRow{
			{ID: 1, Name: "Men", ProductCount: 4},
			{ID: 2, Name: "Women", ProductCount: 0},
		})
		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, int64(4), dtos[0].ProductCount)
		assert.Equal(t, "Women", dtos[1].Name)
	})
}

func TestDepartments(t *testing.T) {
	dtos := Departments([]m_department.Data{{ID: 1, Name: "Men"}, {ID: 2, Name: "Women", Description: ptr("w")}})

	require.Len(t, dtos, 2)
	assert.Equal(t, "Men", dtos[0].Name)
	assert.Equal(t, "w", *dtos[1].Description)
}
