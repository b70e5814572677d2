package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// ExportCatalogRequest enqueues an async catalog export. When Email is set
// the rendered PDF is mailed once ready.
type ExportCatalogRequest struct {
	Email *string `json:"email" validate:"omitempty,email"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ExportCatalogResponse struct {
	Queued bool `json:"queued"`
}
