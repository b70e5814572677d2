package assoc

import (
	"shopcat/internal/model"

	"github.com/google/uuid"
)

// forest indexes a category slice for parent/child lookups.
type forest struct {
	byID     map[uuid.UUID]model.Category
	children map[uuid.UUID][]uuid.UUID
}

func indexCategories(categories []model.Category) forest {
	f := forest{
		byID:     make(map[uuid.UUID]model.Category, len(categories)),
		children: make(map[uuid.UUID][]uuid.UUID),
	}
	for _, c := range categories {
		f.byID[c.ID] = c
		if c.ParentID != nil {
			f.children[*c.ParentID] = append(f.children[*c.ParentID], c.ID)
		}
	}
	return f
}

// CategorySetForBrand returns every category belonging to brandID:
//  1. direct hits in the association map,
//  2. categories of products carrying the brand,
//  3. ancestor closure — parents of any member, to fixed point,
//  4. descendant closure — children of any member, to fixed point.
//
// A nil brand (uuid.Nil) yields the empty set.
func CategorySetForBrand(m Map, brandID uuid.UUID, categories []model.Category, products []model.Product) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool)
	if brandID == uuid.Nil {
		return set
	}

	f := indexCategories(categories)

	for catID, b := range m {
		if b == brandID {
			if _, known := f.byID[catID]; known {
				set[catID] = true
			}
		}
	}
	for _, p := range products {
		if p.BrandID == nil || *p.BrandID != brandID {
			continue
		}
		for _, catID := range p.CategoryIDs() {
			if _, known := f.byID[catID]; known {
				set[catID] = true
			}
		}
	}

	// Ancestor closure.
	for changed := true; changed; {
		changed = false
		for catID := range set {
			c, ok := f.byID[catID]
			if !ok || c.ParentID == nil {
				continue
			}
			if _, known := f.byID[*c.ParentID]; known && !set[*c.ParentID] {
				set[*c.ParentID] = true
				changed = true
			}
		}
	}

	// Descendant closure.
	for changed := true; changed; {
		changed = false
		for catID := range set {
			for _, childID := range f.children[catID] {
				if !set[childID] {
					set[childID] = true
					changed = true
				}
			}
		}
	}

	return set
}

// CategoriesByBrand returns the top-level categories in the brand's set,
// preserving input order. When the filtered result is empty and a brand is
// selected, every top-level category is returned instead so the dashboard
// never shows a false empty state and manual linking stays reachable.
func CategoriesByBrand(m Map, brandID uuid.UUID, categories []model.Category, products []model.Product) []model.Category {
	set := CategorySetForBrand(m, brandID, categories, products)

	var topLevel, members []model.Category
	for _, c := range categories {
		if c.ParentID != nil {
			continue
		}
		topLevel = append(topLevel, c)
		if set[c.ID] {
			members = append(members, c)
		}
	}

	if len(members) == 0 && brandID != uuid.Nil {
		return topLevel
	}
	return members
}

// Subcategories returns the children of parentID. With a brand selected:
// if the parent itself carries direct evidence for the brand (a map entry
// or a product of the brand) the user navigated into brand territory, so
// every child is returned unfiltered; otherwise children directly present
// in the map for that brand are returned, falling back to all children
// when that filter comes up empty.
//
// The guard deliberately ignores closure membership: ancestor closure puts
// the parent in the brand's set whenever any child is mapped, which would
// make the filtered branch unreachable.
func Subcategories(m Map, parentID, brandID uuid.UUID, categories []model.Category, products []model.Product) []model.Category {
	var children []model.Category
	for _, c := range categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	if brandID == uuid.Nil {
		return children
	}

	if directMember(m, parentID, brandID, products) {
		return children
	}

	var filtered []model.Category
	for _, c := range children {
		if m[c.ID] == brandID {
			filtered = append(filtered, c)
		}
	}
	if len(filtered) == 0 {
		return children
	}
	return filtered
}

// directMember reports whether catID belongs to brandID on its own merit:
// a map entry for the category, or a product of the brand placed in it.
func directMember(m Map, catID, brandID uuid.UUID, products []model.Product) bool {
	if m[catID] == brandID {
		return true
	}
	for _, p := range products {
		if p.BrandID != nil && *p.BrandID == brandID && p.InCategory(catID) {
			return true
		}
	}
	return false
}
