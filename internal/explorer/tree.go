package explorer

import (
	"errors"

	"shopcat/internal/assoc"
	"shopcat/internal/model"

	"github.com/google/uuid"
)

// ErrCycleDetected is returned when the category parent chain is malformed.
// The edit-time cycle guard should make this unreachable, but the traversal
// refuses to trust that and fails instead of hanging.
var ErrCycleDetected = errors.New("category parent chain contains a cycle")

// NodeKind discriminates tree nodes for the sidebar renderer.
type NodeKind string

const (
	NodeBrand    NodeKind = "brand"
	NodeCategory NodeKind = "category"
)

// TreeNode is one sidebar entry: a brand root or a category beneath it.
type TreeNode struct {
	ID       uuid.UUID  `json:"id"`
	Kind     NodeKind   `json:"kind"`
	Name     string     `json:"name"`
	NameAr   *string    `json:"name_ar,omitempty"`
	Children []TreeNode `json:"children,omitempty"`
}

// BuildTree projects the loaded collections into one tree per brand:
// brand → top-level categories → subcategories, recursively. It is a pure
// projection with no side effects.
func BuildTree(m assoc.Map, brands []model.Brand, categories []model.Category, products []model.Product) ([]TreeNode, error) {
	if err := validateAcyclic(categories); err != nil {
		return nil, err
	}

	roots := make([]TreeNode, 0, len(brands))
	for _, b := range brands {
		node := TreeNode{ID: b.ID, Kind: NodeBrand, Name: b.Name, NameAr: b.NameAr}
		visited := map[uuid.UUID]bool{}
		for _, c := range assoc.CategoriesByBrand(m, b.ID, categories, products) {
			child, err := buildCategoryNode(m, c, b.ID, categories, products, visited)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
		roots = append(roots, node)
	}
	return roots, nil
}

// validateAcyclic walks every category's parent chain. A chain revisiting a
// node means corrupt data that would send the recursive build into a loop.
func validateAcyclic(categories []model.Category) error {
	parents := make(map[uuid.UUID]*uuid.UUID, len(categories))
	for _, c := range categories {
		parents[c.ID] = c.ParentID
	}
	for _, c := range categories {
		seen := map[uuid.UUID]bool{}
		for cur := &c.ID; cur != nil; cur = parents[*cur] {
			if seen[*cur] {
				return ErrCycleDetected
			}
			seen[*cur] = true
		}
	}
	return nil
}

func buildCategoryNode(m assoc.Map, c model.Category, brandID uuid.UUID, categories []model.Category, products []model.Product, visited map[uuid.UUID]bool) (TreeNode, error) {
	if visited[c.ID] {
		return TreeNode{}, ErrCycleDetected
	}
	visited[c.ID] = true

	node := TreeNode{ID: c.ID, Kind: NodeCategory, Name: c.Name, NameAr: c.NameAr}
	for _, sub := range assoc.Subcategories(m, c.ID, brandID, categories, products) {
		child, err := buildCategoryNode(m, sub, brandID, categories, products, visited)
		if err != nil {
			return TreeNode{}, err
		}
		node.Children = append(node.Children, child)
	}
	return node, nil
}
