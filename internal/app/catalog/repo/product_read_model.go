package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/domain"
	"github.com/light-bringer/catalog-service/internal/app/catalog/projection"
	"github.com/light-bringer/catalog-service/internal/models/m_department"
	"github.com/light-bringer/catalog-service/internal/models/m_product"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
	"github.com/light-bringer/catalog-service/internal/pkg/query"
)

// departmentAssociation is the GORM association joined for FetchOptions.WithDepartment.
const departmentAssociation = "Department"

// ProductReadModelImpl implements ProductReadModel on GORM.
type ProductReadModelImpl struct {
	db *gorm.DB
}

// NewProductReadModel creates a GORM backed product read model.
func NewProductReadModel(db *gorm.DB) contracts.ProductReadModel {
	return &ProductReadModelImpl{db: db}
}

// GetProductByID retrieves a product with its department.
func (rm *ProductReadModelImpl) GetProductByID(ctx context.Context, productID int64) (*contracts.ProductDTO, error) {
	var row m_product.Data
	err := rm.db.WithContext(ctx).
		Joins(departmentAssociation).
		Where(m_product.Col(m_product.ID)+" = ?", productID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	return projection.Product(&row, true)
}

func (rm *ProductReadModelImpl) ListProducts(ctx context.Context, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, allProducts, page, opts)
}

func (rm *ProductReadModelImpl) ListByCategory(ctx context.Context, category string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, columnEquals(m_product.Category, category), page, opts)
}

func (rm *ProductReadModelImpl) ListByBrand(ctx context.Context, brand string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, columnEquals(m_product.Brand, brand), page, opts)
}

func (rm *ProductReadModelImpl) ListByDepartmentID(ctx context.Context, departmentID int64, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	return rm.list(ctx, columnEquals(m_product.DepartmentID, departmentID), page, opts)
}

// ListByDepartmentName filters through its own join so the filter does not
// depend on whether the department projection is requested.
func (rm *ProductReadModelImpl) ListByDepartmentName(ctx context.Context, departmentName string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN "+m_department.TableName+" dn ON dn."+m_department.ID+" = "+m_product.Col(m_product.DepartmentID)).
			Where("dn."+m_department.Name+" = ?", departmentName)
	}
	return rm.list(ctx, scope, page, opts)
}

// SearchByName matches a case-insensitive substring with LIKE wildcards in
// the input escaped.
func (rm *ProductReadModelImpl) SearchByName(ctx context.Context, substring string, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		clause, arg := containsFold(db.Dialector.Name(), m_product.Col(m_product.Name), substring)
		return db.Where(clause, arg)
	}
	return rm.list(ctx, scope, page, opts)
}

// containsFold builds the case-insensitive substring condition: ILIKE on
// postgres, LOWER() LIKE elsewhere. Backslash is the escape character in both.
func containsFold(dialect, col, substring string) (string, string) {
	if dialect == "postgres" {
		return col + ` ILIKE ? ESCAPE '\'`, "%" + query.EscapeLike(substring) + "%"
	}
	return "LOWER(" + col + `) LIKE ? ESCAPE '\'`, "%" + query.EscapeLike(strings.ToLower(substring)) + "%"
}

// list counts the filtered rows, then fetches the requested page in id order.
// The count never joins the department projection.
func (rm *ProductReadModelImpl) list(ctx context.Context, filter func(*gorm.DB) *gorm.DB, page paging.Request, opts contracts.FetchOptions) (*contracts.ProductPage, error) {
	var total int64
	if err := rm.db.WithContext(ctx).Model(&m_product.Data{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if int64(page.Offset()) >= total {
		return paging.NewPage[*contracts.ProductDTO](nil, page, total), nil
	}

	tx := rm.db.WithContext(ctx).Model(&m_product.Data{}).Scopes(filter)
	if opts.WithDepartment {
		tx = tx.Joins(departmentAssociation)
	}

	var rows []m_product.Data
	err := tx.
		Order(m_product.Col(m_product.ID) + " ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	items, err := projection.Products(rows, opts.WithDepartment)
	if err != nil {
		return nil, err
	}

	return paging.NewPage(items, page, total), nil
}

func allProducts(db *gorm.DB) *gorm.DB {
	return db
}

func columnEquals(field string, value interface{}) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(m_product.Col(field)+" = ?", value)
	}
}
