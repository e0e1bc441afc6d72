package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_department"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/get_product"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_department_products"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_departments"
	"github.com/light-bringer/catalog-service/internal/app/catalog/queries/list_products"
	"github.com/light-bringer/catalog-service/internal/config"
)

// CatalogHandler serves the read-only department and product endpoints.
type CatalogHandler struct {
	listProducts           *list_products.Query
	getProduct             *get_product.Query
	listDepartments        *list_departments.Query
	getDepartment          *get_department.Query
	listDepartmentProducts *list_department_products.Query
	pagination             config.PaginationConfig
	logger                 *zap.Logger
}

// NewCatalogHandler creates a new HTTP catalog handler.
func NewCatalogHandler(
	listProducts *list_products.Query,
	getProduct *get_product.Query,
	listDepartments *list_departments.Query,
	getDepartment *get_department.Query,
	listDepartmentProducts *list_department_products.Query,
	pagination config.PaginationConfig,
	logger *zap.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		listProducts:           listProducts,
		getProduct:             getProduct,
		listDepartments:        listDepartments,
		getDepartment:          getDepartment,
		listDepartmentProducts: listDepartmentProducts,
		pagination:             pagination,
		logger:                 logger,
	}
}

// Register mounts the catalog routes on r.
func (h *CatalogHandler) Register(r gin.IRouter) {
	departments := r.Group("/departments")
	departments.GET("", h.ListDepartments)
	departments.GET("/:id", h.GetDepartment)
	departments.GET("/:id/count", h.GetDepartmentWithCount)
	departments.GET("/:id/products", h.ListDepartmentProducts)
	departments.GET("/name/:name", h.GetDepartmentByName)

	products := r.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:id", h.GetProduct)
	products.GET("/search", h.SearchProducts)
	products.GET("/category/:category", h.ListProductsByCategory)
	products.GET("/brand/:brand", h.ListProductsByBrand)
	products.GET("/department/:departmentId", h.ListProductsByDepartmentID)
	products.GET("/department/name/:departmentName", h.ListProductsByDepartmentName)
}

// ListDepartments handles GET /departments?counts=bool.
func (h *CatalogHandler) ListDepartments(c *gin.Context) {
	withCounts, err := queryBool(c, "counts", true)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	res, err := h.listDepartments.Execute(c.Request.Context(), &list_departments.Request{WithProductCount: withCounts})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	if withCounts {
		out := make([]DepartmentWithCountResponse, 0, len(res.Counted))
		for _, d := range res.Counted {
			out = append(out, toDepartmentWithCountResponse(d))
		}
		c.JSON(http.StatusOK, DepartmentListResponse{Departments: out})
		return
	}

	out := make([]*DepartmentResponse, 0, len(res.Departments))
	for _, d := range res.Departments {
		out = append(out, toDepartmentResponse(d))
	}
	c.JSON(http.StatusOK, DepartmentListResponse{Departments: out})
}

// GetDepartment handles GET /departments/:id.
func (h *CatalogHandler) GetDepartment(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	dept, err := h.getDepartment.Execute(c.Request.Context(), &get_department.Request{DepartmentID: id})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toDepartmentResponse(dept))
}

// GetDepartmentWithCount handles GET /departments/:id/count.
func (h *CatalogHandler) GetDepartmentWithCount(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	dept, err := h.getDepartment.ExecuteWithCount(c.Request.Context(), &get_department.Request{DepartmentID: id})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toDepartmentWithCountResponse(dept))
}

// GetDepartmentByName handles GET /departments/name/:name.
func (h *CatalogHandler) GetDepartmentByName(c *gin.Context) {
	dept, err := h.getDepartment.Execute(c.Request.Context(), &get_department.Request{Name: c.Param("name")})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toDepartmentResponse(dept))
}

// ListDepartmentProducts handles GET /departments/:id/products.
func (h *CatalogHandler) ListDepartmentProducts(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	page, err := pageRequest(c, h.pagination)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	res, err := h.listDepartmentProducts.Execute(c.Request.Context(), &list_department_products.Request{
		DepartmentID: id,
		Page:         page,
	})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toDepartmentProductsResponse(res.Department, res.Products))
}

// GetProduct handles GET /products/:id.
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, err := pathInt64(c, "id")
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}

	product, err := h.getProduct.Execute(c.Request.Context(), &get_product.Request{ProductID: id})
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductResponse(product))
}

// ListProducts handles GET /products.
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	h.renderProducts(c, &list_products.Request{Filter: list_products.All})
}

// ListProductsByCategory handles GET /products/category/:category.
func (h *CatalogHandler) ListProductsByCategory(c *gin.Context) {
	h.renderProducts(c, &list_products.Request{Filter: list_products.ByCategory, Value: c.Param("category")})
}

// ListProductsByBrand handles GET /products/brand/:brand.
func (h *CatalogHandler) ListProductsByBrand(c *gin.Context) {
	h.renderProducts(c, &list_products.Request{Filter: list_products.ByBrand, Value: c.Param("brand")})
}

// ListProductsByDepartmentID handles GET /products/department/:departmentId.
// An unknown department yields an empty page.
func (h *CatalogHandler) ListProductsByDepartmentID(c *gin.Context) {
	id, err := pathInt64(c, "departmentId")
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	h.renderProducts(c, &list_products.Request{Filter: list_products.ByDepartmentID, DepartmentID: id})
}

// ListProductsByDepartmentName handles GET /products/department/name/:departmentName.
func (h *CatalogHandler) ListProductsByDepartmentName(c *gin.Context) {
	h.renderProducts(c, &list_products.Request{Filter: list_products.ByDepartmentName, Value: c.Param("departmentName")})
}

// SearchProducts handles GET /products/search?name=.
func (h *CatalogHandler) SearchProducts(c *gin.Context) {
	name, ok := c.GetQuery("name")
	if !ok {
		abortWithError(c, h.logger, missingParam("name"))
		return
	}
	h.renderProducts(c, &list_products.Request{Filter: list_products.ByName, Value: name})
}

func (h *CatalogHandler) renderProducts(c *gin.Context, req *list_products.Request) {
	page, err := pageRequest(c, h.pagination)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	req.Page = page
	req.Options = contracts.FetchOptions{WithDepartment: true}

	res, err := h.listProducts.Execute(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, toProductPageResponse(res))
}
