// Package explorer implements the hierarchical catalog explorer: the
// navigation state machine, the sidebar tree builder, and the merged
// pagination layer over heterogeneous category+product lists.
package explorer

import (
	"github.com/google/uuid"
)

// View is the explorer's current navigation state.
type View string

const (
	ViewBrands        View = "brands"
	ViewCategories    View = "categories"
	ViewSubcategories View = "subcategories"
	ViewProducts      View = "products"
)

// MaxSubcategories caps the children a category may have before
// "add subcategory" is refused.
const MaxSubcategories = 10

// Session is one user's explorer position. Invariants:
//   - len(Path) == 0 implies View is brands or categories;
//   - entering a category with no subcategories forces ViewProducts,
//     with one or more it forces ViewSubcategories.
type Session struct {
	View       View        `json:"view"`
	BrandID    *uuid.UUID  `json:"brand_id,omitempty"`
	CategoryID *uuid.UUID  `json:"category_id,omitempty"`
	Path       []uuid.UUID `json:"path"`
}

// NewSession starts at the brand list.
func NewSession() Session {
	return Session{View: ViewBrands, Path: []uuid.UUID{}}
}

// SelectBrand enters a brand's top-level categories.
func (s *Session) SelectBrand(brandID uuid.UUID) {
	b := brandID
	s.BrandID = &b
	s.CategoryID = nil
	s.Path = s.Path[:0]
	s.View = ViewCategories
}

// SelectCategory descends into a category. subcategoryCount decides the
// target view: zero children lands on products, otherwise on subcategories.
func (s *Session) SelectCategory(categoryID uuid.UUID, subcategoryCount int) {
	c := categoryID
	s.CategoryID = &c
	s.Path = append(s.Path, categoryID)
	if subcategoryCount == 0 {
		s.View = ViewProducts
	} else {
		s.View = ViewSubcategories
	}
}

// Back pops one level. From the category list it returns to brands; from
// the brand list it is a no-op.
func (s *Session) Back() {
	switch s.View {
	case ViewBrands:
		return
	case ViewCategories:
		s.BrandID = nil
		s.CategoryID = nil
		s.Path = s.Path[:0]
		s.View = ViewBrands
	default:
		if len(s.Path) > 0 {
			s.Path = s.Path[:len(s.Path)-1]
		}
		if len(s.Path) == 0 {
			s.CategoryID = nil
			s.View = ViewCategories
			return
		}
		tail := s.Path[len(s.Path)-1]
		s.CategoryID = &tail
		s.View = ViewSubcategories
	}
}

// JumpToBrand handles a breadcrumb click on the brand segment: keep the
// selected brand, clear the category path.
func (s *Session) JumpToBrand() {
	if s.BrandID == nil {
		return
	}
	s.CategoryID = nil
	s.Path = s.Path[:0]
	s.View = ViewCategories
}

// JumpToPath handles a breadcrumb click on path index i: truncate the path
// to i+1 elements and re-enter the category at the new tail. Out-of-range
// indexes are ignored.
func (s *Session) JumpToPath(i int, subcategoryCount int) {
	if i < 0 || i >= len(s.Path) {
		return
	}
	s.Path = s.Path[:i+1]
	tail := s.Path[i]
	s.CategoryID = &tail
	if subcategoryCount == 0 {
		s.View = ViewProducts
	} else {
		s.View = ViewSubcategories
	}
}

// CanAddProduct: products may only be placed under leaf categories.
func CanAddProduct(subcategoryCount int) bool {
	return subcategoryCount == 0
}

// CanAddSubcategory: a category accepts a new child only while it holds no
// products and fewer than MaxSubcategories children.
func CanAddSubcategory(subcategoryCount, productCount int) bool {
	return subcategoryCount < MaxSubcategories && productCount == 0
}
