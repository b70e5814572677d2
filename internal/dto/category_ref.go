package dto

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// CategoryRef normalizes the historical wire shapes of a product-category
// relation. Clients have sent, at various points:
//
//	"f81d…"                      (bare id)
//	{"categoryId": "f81d…"}
//	{"category": {"id": "f81d…"}}
//	{"id": "f81d…"}
//
// The coercion happens here, once, at deserialization — business logic only
// ever sees CategoryID.
type CategoryRef struct {
	CategoryID uuid.UUID
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return r.parse(s)
	}

	var shape struct {
		CategoryID *string `json:"categoryId"`
		Category   *struct {
			ID *string `json:"id"`
		} `json:"category"`
		ID *string `json:"id"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return fmt.Errorf("category reference: %w", err)
	}

	switch {
	case shape.CategoryID != nil:
		return r.parse(*shape.CategoryID)
	case shape.Category != nil && shape.Category.ID != nil:
		return r.parse(*shape.Category.ID)
	case shape.ID != nil:
		return r.parse(*shape.ID)
	}
	return errors.New("category reference missing an identifier")
}

func (r *CategoryRef) parse(s string) error {
	id, err := uuid.Parse(s)
	if err != nil {
		return fmt.Errorf("category reference: invalid id %q", s)
	}
	r.CategoryID = id
	return nil
}

// MarshalJSON always emits the canonical shape.
func (r CategoryRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		CategoryID string `json:"categoryId"`
	}{r.CategoryID.String()})
}
