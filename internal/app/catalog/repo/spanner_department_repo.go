package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/projection"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/pkg/committer"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// SpannerDepartmentRepo implements DepartmentRepository for Spanner.
type SpannerDepartmentRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_department.Model
}

// NewSpannerDepartmentRepo creates a Spanner backed department repository.
func NewSpannerDepartmentRepo(client *spanner.Client) contracts.DepartmentRepository {
	return &SpannerDepartmentRepo{
		client:    client,
		committer: committer.NewCommitter(client),
		model:     m_department.NewModel(),
	}
}

func (r *SpannerDepartmentRepo) FindByName(ctx context.Context, name string) (*contracts.DepartmentDTO, error) {
	return findDepartment(ctx, r.client.Single(), m_department.Name, name)
}

// Insert allocates the next id and inserts the row in one read-write
// transaction. Spanner has no sequence on this table, so ids are MAX(id)+1.
func (r *SpannerDepartmentRepo) Insert(ctx context.Context, name string) (*contracts.DepartmentDTO, error) {
	var data m_department.Data

	err := r.committer.ApplyWithReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		_, err := findDepartment(ctx, txn, m_department.Name, name)
		if err == nil {
			return domain.ErrDepartmentExists
		}
		if !errors.Is(err, domain.ErrDepartmentNotFound) {
			return err
		}

		stmt := query.From(m_department.TableName).
			Select("COALESCE(MAX(" + m_department.ID + "), 0)").
			Build()
		maxID, err := queryCount(ctx, txn, stmt)
		if err != nil {
			return fmt.Errorf("failed to allocate department id: %w", err)
		}

		data = m_department.Data{ID: maxID + 1, Name: name}
		plan := committer.NewPlan()
		plan.Add(r.model.InsertMut(&data))
		return txn.BufferWrite(plan.Mutations())
	})
	if err != nil {
		if errors.Is(err, domain.ErrDepartmentExists) || spanner.ErrCode(err) == codes.AlreadyExists {
			return nil, fmt.Errorf("%w: %q", domain.ErrDepartmentExists, name)
		}
		return nil, fmt.Errorf("failed to insert department: %w", err)
	}

	return projection.Department(&data), nil
}
