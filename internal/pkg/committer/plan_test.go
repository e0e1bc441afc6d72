package committer

import (
	"fmt"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mutations(n int) []*spanner.Mutation {
	muts := make([]*spanner.Mutation, n)
	for i := range muts {
		muts[i] = spanner.InsertOrUpdate("products", []string{"id"}, []interface{}{int64(i)})
	}
	return muts
}

func TestCommitPlan_Add(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty())

	plan.AddMultiple(mutations(3))
	plan.Add(nil)
	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 3, plan.Count())
	assert.Len(t, plan.Mutations(), 3)
}

func TestCommitPlan_Chunks(t *testing.T) {
	tests := []struct {
		total int
		size  int
		want  []int
	}{
		{total: 0, size: 2, want: nil},
		{total: 5, size: 2, want: []int{2, 2, 1}},
		{total: 4, size: 2, want: []int{2, 2}},
		{total: 3, size: 10, want: []int{3}},
		{total: 3, size: 0, want: []int{3}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d by %d", tt.total, tt.size), func(t *testing.T) {
			plan := NewPlan()
			plan.AddMultiple(mutations(tt.total))

			chunks := plan.Chunks(tt.size)
			require.Len(t, chunks, len(tt.want))
			for i, c := range chunks {
				assert.Len(t, c, tt.want[i])
			}
		})
	}
}
