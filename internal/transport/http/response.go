package http

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/catalog-service/internal/app/catalog/contracts"
	"github.com/light-bringer/catalog-service/internal/pkg/paging"
)

type DepartmentResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type DepartmentWithCountResponse struct {
	DepartmentResponse
	ProductCount int64 `json:"productCount"`
}

type DepartmentListResponse struct {
	Departments any `json:"departments"`
}

// ProductFields are the scalar product attributes. Prices render as JSON
// numbers with two decimals.
type ProductFields struct {
	ID                   int64       `json:"id"`
	Cost                 json.Number `json:"cost"`
	Category             string      `json:"category"`
	Name                 string      `json:"name"`
	Brand                string      `json:"brand"`
	RetailPrice          json.Number `json:"retailPrice"`
	SKU                  string      `json:"sku"`
	DistributionCenterID int64       `json:"distributionCenterId"`
}

// ProductResponse is a product with its department, null when it has none.
type ProductResponse struct {
	ProductFields
	Department *DepartmentResponse `json:"department"`
}

type ProductPageResponse struct {
	Products    []ProductResponse `json:"products"`
	CurrentPage int               `json:"currentPage"`
	TotalItems  int64             `json:"totalItems"`
	TotalPages  int               `json:"totalPages"`
	Size        int               `json:"size"`
}

// DepartmentProductsResponse names the department once instead of nesting it per product.
type DepartmentProductsResponse struct {
	Department  string          `json:"department"`
	Products    []ProductFields `json:"products"`
	CurrentPage int             `json:"currentPage"`
	TotalItems  int64           `json:"totalItems"`
	TotalPages  int             `json:"totalPages"`
	Size        int             `json:"size"`
}

func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}

func toDepartmentResponse(dto *contracts.DepartmentDTO) *DepartmentResponse {
	if dto == nil {
		return nil
	}
	return &DepartmentResponse{ID: dto.ID, Name: dto.Name, Description: dto.Description}
}

func toDepartmentWithCountResponse(dto *contracts.DepartmentWithCountDTO) DepartmentWithCountResponse {
	return DepartmentWithCountResponse{
		DepartmentResponse: DepartmentResponse{ID: dto.ID, Name: dto.Name, Description: dto.Description},
		ProductCount:       dto.ProductCount,
	}
}

func toProductFields(dto *contracts.ProductDTO) ProductFields {
	return ProductFields{
		ID:                   dto.ID,
		Cost:                 money(dto.Cost),
		Category:             dto.Category,
		Name:                 dto.Name,
		Brand:                dto.Brand,
		RetailPrice:          money(dto.RetailPrice),
		SKU:                  dto.SKU,
		DistributionCenterID: dto.DistributionCenterID,
	}
}

func toProductResponse(dto *contracts.ProductDTO) ProductResponse {
	return ProductResponse{
		ProductFields: toProductFields(dto),
		Department:    toDepartmentResponse(dto.Department),
	}
}

func toProductPageResponse(page *contracts.ProductPage) ProductPageResponse {
	items := make([]ProductResponse, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toProductResponse(p))
	}
	return ProductPageResponse{
		Products:    items,
		CurrentPage: page.CurrentPage,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		Size:        page.Size,
	}
}

func toDepartmentProductsResponse(department *contracts.DepartmentDTO, page *paging.Page[*contracts.ProductDTO]) DepartmentProductsResponse {
	items := make([]ProductFields, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, toProductFields(p))
	}
	return DepartmentProductsResponse{
		Department:  department.Name,
		Products:    items,
		CurrentPage: page.CurrentPage,
		TotalItems:  page.TotalItems,
		TotalPages:  page.TotalPages,
		Size:        page.Size,
	}
}
