package list_departments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/catalog-service/internal/app/catalog/catalogtest"
)

func TestQuery_Execute(t *testing.T) {
	s := catalogtest.NewStore()
	s.AddDepartment(2, "Women", nil)
	s.AddDepartment(1, "Men", nil)
	s.AddProduct(1, "Dress", "Dresses", "Acme", 2)
	q := NewQuery(s)

	t.Run("without counts", func(t *testing.T) {
		res, err := q.Execute(context.Background(), &Request{})
		require.NoError(t, err)

		assert.Nil(t, res.Counted)
		require.Len(t, res.Departments, 2)
		assert.Equal(t, "Men", res.Departments[0].Name)
		assert.Equal(t, "Women", res.Departments[1].Name)
	})

	t.Run("with counts", func(t *testing.T) {
		res, err := q.Execute(context.Background(), &Request{WithProductCount: true})
		require.NoError(t, err)

		assert.Nil(t, res.Departments)
		require.Len(t, res.Counted, 2)
		assert.Equal(t, int64(0), res.Counted[0].ProductCount)
		assert.Equal(t, int64(1), res.Counted[1].ProductCount)
	})
}
