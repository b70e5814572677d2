package dto

import "github.com/google/uuid"

// ── Request DTOs ──────────────────────────────────────────────────────────────

// CreateCategoryRequest optionally carries the active brand context; when
// present, the new category inherits that brand association (unless the
// slot is already taken).
type CreateCategoryRequest struct {
	Name     string     `json:"name"     validate:"required,min=1,max=100"`
	NameAr   *string    `json:"nameAr"   validate:"omitempty,max=100"`
	ParentID *uuid.UUID `json:"parentId"`
	Image    *string    `json:"image"    validate:"omitempty,url"`
	BrandID  *uuid.UUID `json:"brandId"`
}

type UpdateCategoryRequest struct {
	Name   *string `json:"name"   validate:"omitempty,min=1,max=100"`
	NameAr *string `json:"nameAr" validate:"omitempty,max=100"`
	Image  *string `json:"image"  validate:"omitempty,url"`
	Active *bool   `json:"active"`

	// ParentID moves the category; SetParent distinguishes "move to top
	// level" (true, nil ParentID) from "leave unchanged" (false).
	ParentID  *uuid.UUID `json:"parentId"`
	SetParent bool       `json:"setParent"`
}

type LinkBrandRequest struct {
	BrandID uuid.UUID `json:"brandId" validate:"required"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategoryResponse struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	NameAr   *string    `json:"nameAr,omitempty"`
	ParentID *uuid.UUID `json:"parentId,omitempty"`
	Image    *string    `json:"image,omitempty"`
	BrandID  *uuid.UUID `json:"brandId,omitempty"` // from the association map
	Active   bool       `json:"active"`
}
