//go:build integration

package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/pkg/database"
	"github.com/light-bringer/catalog-service/internal/services"
	"github.com/light-bringer/catalog-service/tests/testutil"
)

const productsCSV = `id,cost,category,name,brand,retail_price,department,sku,distribution_center_id
1,10.50,Jeans,Slim Fit Jeans,Levi's,25.00,Men,SKU-1,1
2,11.00,Jeans,Relaxed Jeans,Levi's,27.50,Men,SKU-2,1
3,4.25,Tops,Cotton Tee,Acme,9.99,Women,SKU-3,2
4,2.00,Socks,Wool Socks,Acme,5.00,,SKU-4,3
5,bad,Tops,Broken Row,Acme,1.00,Women,SKU-5,2
`

// setupServer starts postgres, loads the config the way the server does,
// migrates, imports the CSV and serves the router from httptest.
func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	t.Setenv("CATALOG_DATABASE_DRIVER", config.DriverPostgres)
	t.Setenv("CATALOG_DATABASE_DSN", testutil.StartPostgres(t))
	t.Setenv("CATALOG_PAGINATION_MAX_SIZE", "3")
	t.Setenv("CATALOG_METRICS_ENABLED", "true")

	cfg, err := config.Load("")
	require.NoError(t, err)

	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	opts, err := services.NewServiceOptions(ctx, cfg, logger)
	require.NoError(t, err)
	t.Cleanup(opts.Close)

	require.NoError(t, database.AutoMigrate(ctx, opts.DB))

	res, err := opts.Importer.Import(ctx, strings.NewReader(productsCSV))
	require.NoError(t, err)
	require.Equal(t, 4, res.Imported)
	require.Equal(t, 1, res.Skipped)

	srv := httptest.NewServer(opts.Router())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, srv *httptest.Server, path string) (int, map[string]any) {
	t.Helper()

	resp, err := http.Get(srv.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}
