// Package assoc maintains the derived category→brand association map.
//
// The backend does not model a many-to-one category→brand relation directly;
// this map is synthesized from three sources, in merge priority order:
//
//  1. manual linkage performed through the dashboard,
//  2. inheritance when a category is created while a brand context is active,
//  3. inference from products — a category whose products all carry exactly
//     one distinct brand is associated with that brand.
//
// Once established an association is never removed by inference; only an
// explicit user action (unlink, or deleting the owning brand) removes it.
package assoc

import (
	"shopcat/internal/model"

	"github.com/google/uuid"
)

// Map associates a category identifier with the single brand it belongs to.
// It serializes as a plain JSON object (category id → brand id).
type Map map[uuid.UUID]uuid.UUID

// Clone returns an independent copy.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// MergeMissing copies entries from src into m only where m has no entry for
// the category. Existing entries — manual or otherwise — are never replaced.
// Returns the number of entries added.
func (m Map) MergeMissing(src Map) int {
	added := 0
	for cat, brand := range src {
		if _, ok := m[cat]; !ok {
			m[cat] = brand
			added++
		}
	}
	return added
}

// Infer derives associations from the current product collection: for each
// category, tally brand occurrences across its member products; if exactly
// one distinct brand occurs, that brand is recorded for the category.
// Products without a brand contribute nothing to the tally.
func Infer(products []model.Product) Map {
	counts := make(map[uuid.UUID]map[uuid.UUID]int)
	for _, p := range products {
		if p.BrandID == nil {
			continue
		}
		for _, catID := range p.CategoryIDs() {
			if counts[catID] == nil {
				counts[catID] = make(map[uuid.UUID]int)
			}
			counts[catID][*p.BrandID]++
		}
	}

	inferred := make(Map)
	for catID, brands := range counts {
		if len(brands) != 1 {
			continue
		}
		for brandID := range brands {
			inferred[catID] = brandID
		}
	}
	return inferred
}
