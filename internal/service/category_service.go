package service

import (
	"context"
	"errors"
	"fmt"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/explorer"
	"shopcat/internal/model"
	"shopcat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CategoryService defines business operations for the category forest.
type CategoryService interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
	LinkBrand(ctx context.Context, categoryID, brandID uuid.UUID) error
	UnlinkBrand(ctx context.Context, categoryID uuid.UUID) error
}

type categoryService struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	brands   repository.BrandRepository
	engine   *assoc.Engine
}

func NewCategoryService(repo repository.CategoryRepository, products repository.ProductRepository, brands repository.BrandRepository, engine *assoc.Engine) CategoryService {
	return &categoryService{repo: repo, products: products, brands: brands, engine: engine}
}

// mapCategory converts a model to a DTO response, resolving the brand from
// the association map.
func mapCategory(c model.Category, m assoc.Map) dto.CategoryResponse {
	resp := dto.CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		NameAr:   c.NameAr,
		ParentID: c.ParentID,
		Image:    c.Image,
		Active:   c.Active,
	}
	if brandID, ok := m[c.ID]; ok {
		b := brandID
		resp.BrandID = &b
	}
	return resp
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error) {
	if req.ParentID != nil {
		if err := s.checkPlacement(ctx, *req.ParentID); err != nil {
			return dto.CategoryResponse{}, err
		}
	}

	c := &model.Category{
		Name:     req.Name,
		NameAr:   req.NameAr,
		ParentID: req.ParentID,
		Image:    req.Image,
		Active:   true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}

	// Inherited association: the category was created under an active brand
	// context. Never displaces an existing entry.
	if req.BrandID != nil {
		s.engine.LinkIfAbsent(ctx, c.ID, *req.BrandID)
	}

	s.recompute(ctx)
	return mapCategory(*c, s.engine.Snapshot()), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	m := s.engine.Snapshot()
	result := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategory(c, m))
	}
	return result, nil
}

func (s *categoryService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCategoryRequest) (dto.CategoryResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CategoryResponse{}, errors.New("category not found")
		}
		return dto.CategoryResponse{}, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.NameAr != nil {
		c.NameAr = req.NameAr
	}
	if req.Image != nil {
		c.Image = req.Image
	}
	if req.Active != nil {
		c.Active = *req.Active
	}

	if req.SetParent {
		if req.ParentID != nil {
			if err := s.checkParentCycle(ctx, id, *req.ParentID); err != nil {
				return dto.CategoryResponse{}, err
			}
			if err := s.checkPlacement(ctx, *req.ParentID); err != nil {
				return dto.CategoryResponse{}, err
			}
		}
		c.ParentID = req.ParentID
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return dto.CategoryResponse{}, err
	}
	return mapCategory(*c, s.engine.Snapshot()), nil
}

func (s *categoryService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

// LinkBrand records a manual association — the highest-priority source,
// allowed to overwrite whatever inference put there.
func (s *categoryService) LinkBrand(ctx context.Context, categoryID, brandID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, categoryID); err != nil {
		return errors.New("category not found")
	}
	if _, err := s.brands.FindByID(ctx, brandID); err != nil {
		return errors.New("brand not found")
	}
	s.engine.Link(ctx, categoryID, brandID)
	return nil
}

func (s *categoryService) UnlinkBrand(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, categoryID); err != nil {
		return errors.New("category not found")
	}
	s.engine.Unlink(ctx, categoryID)
	return nil
}

// checkPlacement enforces the subcategory placement rule on a would-be
// parent: no products assigned, fewer than MaxSubcategories children.
func (s *categoryService) checkPlacement(ctx context.Context, parentID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, parentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("parent category not found")
		}
		return err
	}
	productCount, err := s.products.CountByCategory(ctx, parentID)
	if err != nil {
		return err
	}
	subCount, err := s.repo.CountByParent(ctx, parentID)
	if err != nil {
		return err
	}
	if !explorer.CanAddSubcategory(int(subCount), int(productCount)) {
		if productCount > 0 {
			return errors.New("cannot add a subcategory to a category that has products")
		}
		return fmt.Errorf("category already has the maximum of %d subcategories", explorer.MaxSubcategories)
	}
	return nil
}

// checkParentCycle refuses a parent that is the category itself or one of
// its descendants — the edit-time cycle guard.
func (s *categoryService) checkParentCycle(ctx context.Context, id, newParentID uuid.UUID) error {
	if newParentID == id {
		return errors.New("a category cannot be its own parent")
	}
	all, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	children := make(map[uuid.UUID][]uuid.UUID)
	for _, c := range all {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c.ID)
		}
	}
	// BFS over the subtree rooted at id.
	queue := []uuid.UUID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range children[cur] {
			if child == newParentID {
				return errors.New("cannot assign a descendant category as parent")
			}
			queue = append(queue, child)
		}
	}
	return nil
}

// recompute re-runs the inference pass over the live product collection.
// Store failures are absorbed by the engine.
func (s *categoryService) recompute(ctx context.Context) {
	products, err := s.products.ListAll(ctx)
	if err != nil {
		return
	}
	s.engine.Recompute(ctx, products)
}
