package repo

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
)

// DefaultBatchSize is the number of rows written per INSERT statement.
const DefaultBatchSize = 500

// ProductWriterImpl implements ProductWriter on GORM.
type ProductWriterImpl struct {
	db        *gorm.DB
	batchSize int
}

// NewProductWriter creates a GORM backed product writer.
// A batchSize of zero or less selects DefaultBatchSize.
func NewProductWriter(db *gorm.DB, batchSize int) contracts.ProductWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &ProductWriterImpl{db: db, batchSize: batchSize}
}

// UpsertProducts writes rows in batches, overwriting rows whose id already exists.
func (w *ProductWriterImpl) UpsertProducts(ctx context.Context, rows []*m_product.Data) error {
	if len(rows) == 0 {
		return nil
	}

	err := w.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: m_product.ID}},
			UpdateAll: true,
		}).
		CreateInBatches(rows, w.batchSize).Error
	if err != nil {
		return fmt.Errorf("failed to upsert %d products: %w", len(rows), err)
	}
	return nil
}
