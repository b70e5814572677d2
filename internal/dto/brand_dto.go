package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateBrandRequest struct {
	Name   string  `json:"name"    validate:"required,min=1,max=100"`
	NameAr *string `json:"nameAr"  validate:"omitempty,max=100"`
	Code   *string `json:"code"    validate:"omitempty,max=50"`
	Logo   *string `json:"logo"    validate:"omitempty,url"`
}

type UpdateBrandRequest struct {
	Name   *string `json:"name"    validate:"omitempty,min=1,max=100"`
	NameAr *string `json:"nameAr"  validate:"omitempty,max=100"`
	Code   *string `json:"code"    validate:"omitempty,max=50"`
	Logo   *string `json:"logo"    validate:"omitempty,url"`
	Active *bool   `json:"active"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type BrandResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	NameAr *string   `json:"nameAr,omitempty"`
	Code   *string   `json:"code,omitempty"`
	Logo   *string   `json:"logo,omitempty"`
	Active bool      `json:"active"`
}
