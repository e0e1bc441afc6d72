package get_product

import (
	"context"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
)

// Request contains the product ID to retrieve.
type Request struct {
	ProductID int64
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ProductReadModel
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ProductReadModel) *Query {
	return &Query{
		readModel: readModel,
	}
}

// Execute retrieves a product by ID together with its department.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ProductDTO, error) {
	return q.readModel.GetProductByID(ctx, req.ProductID)
}
