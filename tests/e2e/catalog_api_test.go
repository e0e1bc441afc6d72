//go:build integration

package e2e

import (
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productIDs(t *testing.T, body map[string]any) []float64 {
	t.Helper()
	items, ok := body["products"].([]any)
	require.True(t, ok, "products missing from %v", body)

	out := make([]float64, 0, len(items))
	for _, it := range items {
		out = append(out, it.(map[string]any)["id"].(float64))
	}
	return out
}

func TestCatalogAPI(t *testing.T) {
	srv := setupServer(t)

	t.Run("health", func(t *testing.T) {
		status, body := getJSON(t, srv, "/healthz")
		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("product with department and fixed prices", func(t *testing.T) {
		status, body := getJSON(t, srv, "/api/products/1")
		require.Equal(t, http.StatusOK, status)

		assert.Equal(t, "Slim Fit Jeans", body["name"])
		assert.Equal(t, 10.5, body["cost"])
		assert.Equal(t, 25.0, body["retailPrice"])
		dept := body["department"].(map[string]any)
		assert.Equal(t, "Men", dept["name"])
	})

	t.Run("product without department", func(t *testing.T) {
		status, body := getJSON(t, srv, "/api/products/4")
		require.Equal(t, http.StatusOK, status)
		assert.Nil(t, body["department"])
	})

	t.Run("skipped row is absent", func(t *testing.T) {
		status, body := getJSON(t, srv, "/api/products/5")
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Not found", body["error"])
	})

	t.Run("page size is clamped", func(t *testing.T) {
		status, body := getJSON(t, srv, "/api/products?page=0&size=50")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, []float64{1, 2, 3}, productIDs(t, body))
		assert.Equal(t, 3.0, body["size"])
		assert.Equal(t, 4.0, body["totalItems"])
		assert.Equal(t, 2.0, body["totalPages"])
	})

	t.Run("filters", func(t *testing.T) {
		tests := []struct {
			path string
			want []float64
		}{
			{"/api/products/category/Tops", []float64{3}},
			{"/api/products/brand/Acme", []float64{3, 4}},
			{"/api/products/department/1", []float64{1, 2}},
			{"/api/products/department/name/Women", []float64{3}},
			{"/api/products/search?name=jeans", []float64{1, 2}},
		}
		for _, tt := range tests {
			t.Run(tt.path, func(t *testing.T) {
				status, body := getJSON(t, srv, tt.path)
				require.Equal(t, http.StatusOK, status)
				assert.Equal(t, tt.want, productIDs(t, body))
			})
		}
	})

	t.Run("departments with counts", func(t *testing.T) {
		status, body := getJSON(t, srv, "/api/departments")
		require.Equal(t, http.StatusOK, status)

		depts := body["departments"].([]any)
		require.Len(t, depts, 2)
		men := depts[0].(map[string]any)
		assert.Equal(t, "Men", men["name"])
		assert.Equal(t, 2.0, men["productCount"])
	})

	t.Run("department products envelope", func(t *testing.T) {
		status, body := getJSON(t, srv, "/api/departments/2/products")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Women", body["department"])
		assert.Equal(t, []float64{3}, productIDs(t, body))

		status, _ = getJSON(t, srv, "/api/departments/99/products")
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("bad parameters", func(t *testing.T) {
		status, body := getJSON(t, srv, "/api/products?page=x")
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid parameter", body["error"])

		status, _ = getJSON(t, srv, "/api/products/search")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, string(raw), `catalog_http_requests_total{method="GET",route="/api/products/:id",status="200"}`)
	})
}
