package contracts

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

// ProductWriter loads product rows in bulk. It is used by the importer only;
// no product write is exposed over HTTP.
type ProductWriter interface {
	// UpsertProducts inserts rows or overwrites existing rows with the same id
	UpsertProducts(ctx context.Context, rows []*m_product.Data) error
}
