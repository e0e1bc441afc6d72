package testutil

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

// Catalog is the seeded data set shared by the store tests.
//
//	id  name              category  brand   department
//	1   Slim Fit Jeans    Jeans     Levi's  Men
//	2   Relaxed Jeans     Jeans     Levi's  Men
//	3   Cotton Tee        Tops      Acme    Women
//	4   Wool Socks        Socks     Acme    -
//	5   100% Cotton_Tank  Tops      Acme    Women
//
// Department Empty has no products.
type Catalog struct {
	Men   *contracts.DepartmentDTO
	Women *contracts.DepartmentDTO
	Empty *contracts.DepartmentDTO
}

// SeedCatalog inserts the fixture through the write contracts so every store
// is seeded the same way.
func SeedCatalog(t *testing.T, repo contracts.DepartmentRepository, writer contracts.ProductWriter) *Catalog {
	t.Helper()

	ctx := context.Background()
	insert := func(name string) *contracts.DepartmentDTO {
		d, err := repo.Insert(ctx, name)
		require.NoError(t, err, "failed to insert department %s", name)
		return d
	}

	c := &Catalog{
		Men:   insert("Men"),
		Women: insert("Women"),
		Empty: insert("Empty"),
	}

	rows := []*m_product.Data{
		NewProduct(1, "Slim Fit Jeans", "Jeans", "Levi's", &c.Men.ID),
		NewProduct(2, "Relaxed Jeans", "Jeans", "Levi's", &c.Men.ID),
		NewProduct(3, "Cotton Tee", "Tops", "Acme", &c.Women.ID),
		NewProduct(4, "Wool Socks", "Socks", "Acme", nil),
		NewProduct(5, "100% Cotton_Tank", "Tops", "Acme", &c.Women.ID),
	}
	require.NoError(t, writer.UpsertProducts(ctx, rows), "failed to seed products")

	return c
}

// NewProduct builds a product row whose cost is id+0.5 and retail price twice that.
func NewProduct(id int64, name, category, brand string, departmentID *int64) *m_product.Data {
	cost := decimal.NewFromInt(id).Add(decimal.RequireFromString("0.5"))
	return &m_product.Data{
		ID:                   id,
		Cost:                 cost,
		Category:             category,
		Name:                 name,
		Brand:                brand,
		RetailPrice:          cost.Mul(decimal.NewFromInt(2)),
		DepartmentID:         departmentID,
		SKU:                  "SKU-" + decimal.NewFromInt(id).String(),
		DistributionCenterID: id % 3,
	}
}
