package repo

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
)

// SpannerProductWriter implements ProductWriter for Spanner.
type SpannerProductWriter struct {
	committer *committer.Committer
	model     *m_product.Model
	batchSize int
}

// NewSpannerProductWriter creates a Spanner backed product writer.
// Each batch is applied as one commit.
func NewSpannerProductWriter(client *spanner.Client, batchSize int) contracts.ProductWriter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &SpannerProductWriter{
		committer: committer.NewCommitter(client),
		model:     m_product.NewModel(),
		batchSize: batchSize,
	}
}

func (w *SpannerProductWriter) UpsertProducts(ctx context.Context, rows []*m_product.Data) error {
	plan := committer.NewPlan()
	for _, row := range rows {
		plan.Add(w.model.UpsertMut(row))
	}
	return w.committer.ApplyInBatches(ctx, plan, w.batchSize)
}
