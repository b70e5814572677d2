package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateProductRequest struct {
	Name       string          `json:"name"       validate:"required,min=1,max=200"`
	NameAr     *string         `json:"nameAr"     validate:"omitempty,max=200"`
	SKU        string          `json:"sku"        validate:"required,min=1,max=64"`
	Price      decimal.Decimal `json:"price"      validate:"min=0"`
	Image      *string         `json:"image"      validate:"omitempty,url"`
	BrandID    *uuid.UUID      `json:"brandId"`
	Categories []CategoryRef   `json:"categories" validate:"omitempty,dive"`
}

type UpdateProductRequest struct {
	Name   *string          `json:"name"   validate:"omitempty,min=1,max=200"`
	NameAr *string          `json:"nameAr" validate:"omitempty,max=200"`
	Price  *decimal.Decimal `json:"price"`
	Image  *string          `json:"image"  validate:"omitempty,url"`
	Active *bool            `json:"active"`

	// BrandID moves the product to another brand; SetBrand distinguishes
	// "clear brand" (true, nil BrandID) from "leave unchanged" (false).
	BrandID  *uuid.UUID `json:"brandId"`
	SetBrand bool       `json:"setBrand"`

	// Categories, when non-nil, replaces the full membership list.
	Categories []CategoryRef `json:"categories" validate:"omitempty,dive"`
}

type CreateVariantRequest struct {
	Name  string          `json:"name"  validate:"required,min=1,max=100"`
	SKU   string          `json:"sku"   validate:"required,min=1,max=64"`
	Price decimal.Decimal `json:"price" validate:"min=0"`
	Stock int             `json:"stock" validate:"min=0"`
}

type UpdateVariantRequest struct {
	Name  *string          `json:"name"  validate:"omitempty,min=1,max=100"`
	Price *decimal.Decimal `json:"price"`
	Stock *int             `json:"stock" validate:"omitempty,min=0"`
}

// ProductFilter narrows the product listing.
type ProductFilter struct {
	Query      string `form:"q"`
	BrandID    string `form:"brandId"`
	CategoryID string `form:"categoryId"`
	Active     string `form:"active"` // "false" | "all" | default active-only
	Page       int    `form:"page"`
	Limit      int    `form:"limit"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type VariantResponse struct {
	ID     uuid.UUID       `json:"id"`
	Name   string          `json:"name"`
	SKU    string          `json:"sku"`
	Price  decimal.Decimal `json:"price"`
	Stock  int             `json:"stock"`
	Active bool            `json:"active"`
}

type ProductResponse struct {
	ID         uuid.UUID         `json:"id"`
	Name       string            `json:"name"`
	NameAr     *string           `json:"nameAr,omitempty"`
	SKU        string            `json:"sku"`
	Price      decimal.Decimal   `json:"price"`
	Image      *string           `json:"image,omitempty"`
	BrandID    *uuid.UUID        `json:"brandId,omitempty"`
	Categories []CategoryRef     `json:"categories"`
	Variants   []VariantResponse `json:"variants,omitempty"`
	Active     bool              `json:"active"`
}

type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
