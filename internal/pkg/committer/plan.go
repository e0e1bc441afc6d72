// Package committer applies collected Spanner mutations.
//
// Repositories build mutations from models (see m_product.Model.UpsertMut)
// and hand them to a CommitPlan; the Committer decides how the plan is
// committed. A plan can go in as one commit, or split into chunks when it
// is larger than what a single Spanner commit accepts.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// CommitPlan is an ordered list of mutations.
type CommitPlan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *CommitPlan {
	return &CommitPlan{
		mutations: make([]*spanner.Mutation, 0),
	}
}

// Add appends a mutation. Nil mutations are ignored.
func (cp *CommitPlan) Add(mut *spanner.Mutation) {
	if mut != nil {
		cp.mutations = append(cp.mutations, mut)
	}
}

func (cp *CommitPlan) AddMultiple(muts []*spanner.Mutation) {
	for _, mut := range muts {
		cp.Add(mut)
	}
}

func (cp *CommitPlan) Mutations() []*spanner.Mutation {
	return cp.mutations
}

func (cp *CommitPlan) IsEmpty() bool {
	return len(cp.mutations) == 0
}

func (cp *CommitPlan) Count() int {
	return len(cp.mutations)
}

// Chunks splits the plan into consecutive slices of at most size mutations.
// A non-positive size yields the whole plan as one chunk.
func (cp *CommitPlan) Chunks(size int) [][]*spanner.Mutation {
	if cp.IsEmpty() {
		return nil
	}
	if size <= 0 || size >= len(cp.mutations) {
		return [][]*spanner.Mutation{cp.mutations}
	}
	chunks := make([][]*spanner.Mutation, 0, (len(cp.mutations)+size-1)/size)
	for start := 0; start < len(cp.mutations); start += size {
		end := min(start+size, len(cp.mutations))
		chunks = append(chunks, cp.mutations[start:end])
	}
	return chunks
}

// Committer applies plans to a Spanner database.
type Committer struct {
	client *spanner.Client
}

func NewCommitter(client *spanner.Client) *Committer {
	return &Committer{client: client}
}

// Apply commits the whole plan atomically.
func (c *Committer) Apply(ctx context.Context, plan *CommitPlan) error {
	if plan.IsEmpty() {
		return nil
	}

	if _, err := c.client.Apply(ctx, plan.Mutations()); err != nil {
		return fmt.Errorf("failed to apply commit plan: %w", err)
	}
	return nil
}

// ApplyInBatches commits the plan in chunks of batchSize mutations. Each
// chunk is atomic on its own; a failure leaves earlier chunks committed.
func (c *Committer) ApplyInBatches(ctx context.Context, plan *CommitPlan, batchSize int) error {
	applied := 0
	for _, chunk := range plan.Chunks(batchSize) {
		if _, err := c.client.Apply(ctx, chunk); err != nil {
			return fmt.Errorf("failed to apply mutations %d-%d: %w", applied, applied+len(chunk)-1, err)
		}
		applied += len(chunk)
	}
	return nil
}

// ApplyWithReadWriteTransaction runs fn in a read-write transaction. fn
// reads what it needs and buffers its writes on txn.
func (c *Committer) ApplyWithReadWriteTransaction(ctx context.Context, fn func(context.Context, *spanner.ReadWriteTransaction) error) error {
	_, err := c.client.ReadWriteTransaction(ctx, fn)
	return err
}
