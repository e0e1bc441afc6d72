package services

import (
	"context"
	"fmt"
	"net/http"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_department"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_department_products"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_departments"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/catalog-service/internal/app/catalog/repo"
	"github.com/light-bringer/catalog-service/internal/app/catalog/usecases/create_or_get_department"
	"github.com/light-bringer/catalog-service/internal/config"
	"github.com/light-bringer/catalog-service/internal/importer"
	"github.com/light-bringer/catalog-service/internal/pkg/database"
	"github.com/light-bringer/catalog-service/internal/pkg/metrics"
	httphandler "github.com/light-bringer/catalog-service/internal/transport/http"
)

// Stores groups the store implementations for one driver.
type Stores struct {
	Products    contracts.ProductReadModel
	Departments contracts.DepartmentReadModel
	DeptRepo    contracts.DepartmentRepository
	Writer      contracts.ProductWriter
	Ping        func(ctx context.Context) error
}

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	Config         *config.Config
	Logger         *zap.Logger
	DB             *gorm.DB
	SpannerClient  *spanner.Client
	Stores         *Stores
	CatalogHandler *httphandler.CatalogHandler
	Metrics        *metrics.HTTPMetrics
	Importer       *importer.Importer
}

// NewServiceOptions opens the configured store and wires queries, use cases and handlers on top of it.
func NewServiceOptions(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*ServiceOptions, error) {
	s := &ServiceOptions{Config: cfg, Logger: logger}

	// 1. Open the store
	switch cfg.Database.Driver {
	case config.DriverSpanner:
		client, err := database.OpenSpanner(ctx, cfg.Spanner.Database, logger)
		if err != nil {
			return nil, err
		}
		s.SpannerClient = client
		s.Stores = SpannerStores(client, cfg.Import.BatchSize)
	case config.DriverPostgres:
		db, err := database.OpenPostgres(ctx, cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		s.DB = db
		s.Stores = GormStores(db, cfg.Import.BatchSize)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	// 2. Queries (read side)
	listProductsQuery := list_products.NewQuery(s.Stores.Products)
	getProductQuery := get_product.NewQuery(s.Stores.Products)
	listDepartmentsQuery := list_departments.NewQuery(s.Stores.Departments)
	getDepartmentQuery := get_department.NewQuery(s.Stores.Departments)
	listDepartmentProductsQuery := list_department_products.NewQuery(s.Stores.Departments, s.Stores.Products)

	// 3. Use cases (import side)
	createOrGetDepartment := create_or_get_department.NewInteractor(s.Stores.DeptRepo)
	s.Importer = importer.New(createOrGetDepartment, s.Stores.Writer, cfg.Import.BatchSize, logger)

	// 4. Transport
	s.CatalogHandler = httphandler.NewCatalogHandler(
		listProductsQuery,
		getProductQuery,
		listDepartmentsQuery,
		getDepartmentQuery,
		listDepartmentProductsQuery,
		cfg.Pagination,
		logger,
	)
	if cfg.Metrics.Enabled {
		s.Metrics = metrics.NewHTTPMetrics("catalog")
	}

	return s, nil
}

// GormStores builds the GORM backed stores.
func GormStores(db *gorm.DB, batchSize int) *Stores {
	return &Stores{
		Products:    repo.NewProductReadModel(db),
		Departments: repo.NewDepartmentReadModel(db),
		DeptRepo:    repo.NewDepartmentRepo(db),
		Writer:      repo.NewProductWriter(db, batchSize),
		Ping: func(ctx context.Context) error {
			return database.Ping(ctx, db)
		},
	}
}

// SpannerStores builds the Spanner backed stores.
func SpannerStores(client *spanner.Client, batchSize int) *Stores {
	return &Stores{
		Products:    repo.NewSpannerProductReadModel(client),
		Departments: repo.NewSpannerDepartmentReadModel(client),
		DeptRepo:    repo.NewSpannerDepartmentRepo(client),
		Writer:      repo.NewSpannerProductWriter(client, batchSize),
		Ping: func(ctx context.Context) error {
			return database.PingSpanner(ctx, client)
		},
	}
}

// Router builds the HTTP engine for the wired handler.
func (s *ServiceOptions) Router() http.Handler {
	return httphandler.NewRouter(httphandler.RouterOptions{
		Catalog:     s.CatalogHandler,
		Health:      s.Stores.Ping,
		Metrics:     s.Metrics,
		MetricsPath: s.Config.Metrics.Path,
		CORSOrigins: s.Config.HTTP.CORSOrigins,
		Logger:      s.Logger,
	})
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.DB != nil {
		if err := database.Close(s.DB); err != nil {
			s.Logger.Warn("failed to close database", zap.Error(err))
		}
	}
}
