package dto

import (
	"github.com/google/uuid"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type SelectBrandRequest struct {
	BrandID uuid.UUID `json:"brandId" validate:"required"`
}

type SelectCategoryRequest struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
}

type BreadcrumbRequest struct {
	// Index -1 means the brand segment; 0..len(path)-1 a category segment.
	Index int `json:"index" validate:"min=-1"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

// BreadcrumbEntry is one resolved segment of the category path.
type BreadcrumbEntry struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	NameAr *string   `json:"nameAr,omitempty"`
}

// ExplorerStateResponse reports the session position plus the placement
// guards for the current location.
type ExplorerStateResponse struct {
	View              string            `json:"view"`
	BrandID           *uuid.UUID        `json:"brandId,omitempty"`
	CategoryID        *uuid.UUID        `json:"categoryId,omitempty"`
	Breadcrumbs       []BreadcrumbEntry `json:"breadcrumbs"`
	CanAddProduct     bool              `json:"canAddProduct"`
	CanAddSubcategory bool              `json:"canAddSubcategory"`
}

// ExplorerContentResponse is one page of the merged category+product list
// for the current view. Categories always precede products.
type ExplorerContentResponse struct {
	State      ExplorerStateResponse `json:"state"`
	Brands     []BrandResponse       `json:"brands,omitempty"`
	Categories []CategoryResponse    `json:"categories"`
	Products   []ProductResponse     `json:"products"`
	Page       int                   `json:"page"`
	PerPage    int                   `json:"perPage"`
	TotalItems int                   `json:"totalItems"`
	TotalPages int                   `json:"totalPages"`
}
