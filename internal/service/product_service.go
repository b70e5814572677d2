package service

import (
	"context"
	"errors"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/explorer"
	"shopcat/internal/model"
	"shopcat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductService defines the business logic contract for products and
// their variants.
type ProductService interface {
	Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	FindByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error

	AddVariant(ctx context.Context, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error)
	UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req dto.UpdateVariantRequest) (*dto.VariantResponse, error)
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error
}

type productService struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	engine     *assoc.Engine
}

func NewProductService(repo repository.ProductRepository, categories repository.CategoryRepository, engine *assoc.Engine) ProductService {
	return &productService{repo: repo, categories: categories, engine: engine}
}

func mapVariant(v model.ProductVariant) dto.VariantResponse {
	return dto.VariantResponse{
		ID: v.ID, Name: v.Name, SKU: v.SKU,
		Price: v.Price, Stock: v.Stock, Active: v.Active,
	}
}

func mapProduct(p model.Product) *dto.ProductResponse {
	resp := &dto.ProductResponse{
		ID:      p.ID,
		Name:    p.Name,
		NameAr:  p.NameAr,
		SKU:     p.SKU,
		Price:   p.Price,
		Image:   p.Image,
		BrandID: p.BrandID,
		Active:  p.Active,
	}
	resp.Categories = make([]dto.CategoryRef, 0, len(p.Categories))
	for _, pc := range p.Categories {
		resp.Categories = append(resp.Categories, dto.CategoryRef{CategoryID: pc.CategoryID})
	}
	for _, v := range p.Variants {
		resp.Variants = append(resp.Variants, mapVariant(v))
	}
	return resp
}

func (s *productService) Create(ctx context.Context, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := s.repo.FindBySKU(ctx, req.SKU)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("a product with that SKU already exists")
	}

	catIDs := make([]uuid.UUID, 0, len(req.Categories))
	for _, ref := range req.Categories {
		if err := s.checkLeaf(ctx, ref.CategoryID); err != nil {
			return nil, err
		}
		catIDs = append(catIDs, ref.CategoryID)
	}

	p := &model.Product{
		Name:    req.Name,
		NameAr:  req.NameAr,
		SKU:     req.SKU,
		Price:   req.Price,
		Image:   req.Image,
		BrandID: req.BrandID,
		Active:  true,
	}
	for _, catID := range catIDs {
		p.Categories = append(p.Categories, model.ProductCategory{CategoryID: catID})
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.recompute(ctx)
	return mapProduct(*p), nil
}

func (s *productService) FindByID(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}
	return mapProduct(*p), nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *mapProduct(p))
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	return &dto.ProductListResponse{Items: items, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

func (s *productService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.NameAr != nil {
		p.NameAr = req.NameAr
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	if req.Image != nil {
		p.Image = req.Image
	}
	if req.Active != nil {
		p.Active = *req.Active
	}
	if req.SetBrand {
		p.BrandID = req.BrandID
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if req.Categories != nil {
		catIDs := make([]uuid.UUID, 0, len(req.Categories))
		for _, ref := range req.Categories {
			if err := s.checkLeaf(ctx, ref.CategoryID); err != nil {
				return nil, err
			}
			catIDs = append(catIDs, ref.CategoryID)
		}
		if err := s.repo.ReplaceCategories(ctx, id, catIDs); err != nil {
			return nil, err
		}
	}

	s.recompute(ctx)

	updated, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapProduct(*updated), nil
}

func (s *productService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *productService) AddVariant(ctx context.Context, productID uuid.UUID, req dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		return nil, errors.New("product not found")
	}
	v := &model.ProductVariant{
		ProductID: productID,
		Name:      req.Name,
		SKU:       req.SKU,
		Price:     req.Price,
		Stock:     req.Stock,
		Active:    true,
	}
	if err := s.repo.CreateVariant(ctx, v); err != nil {
		return nil, err
	}
	resp := mapVariant(*v)
	return &resp, nil
}

func (s *productService) UpdateVariant(ctx context.Context, productID, variantID uuid.UUID, req dto.UpdateVariantRequest) (*dto.VariantResponse, error) {
	v, err := s.repo.FindVariant(ctx, productID, variantID)
	if err != nil {
		return nil, errors.New("variant not found")
	}
	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Price != nil {
		v.Price = *req.Price
	}
	if req.Stock != nil {
		v.Stock = *req.Stock
	}
	if err := s.repo.UpdateVariant(ctx, v); err != nil {
		return nil, err
	}
	resp := mapVariant(*v)
	return &resp, nil
}

func (s *productService) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	if _, err := s.repo.FindVariant(ctx, productID, variantID); err != nil {
		return errors.New("variant not found")
	}
	return s.repo.DeleteVariant(ctx, productID, variantID)
}

// checkLeaf enforces the product placement rule: products may only be
// assigned to categories with zero subcategories.
func (s *productService) checkLeaf(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("category not found")
		}
		return err
	}
	subCount, err := s.categories.CountByParent(ctx, categoryID)
	if err != nil {
		return err
	}
	if !explorer.CanAddProduct(int(subCount)) {
		return errors.New("products can only be added to categories without subcategories")
	}
	return nil
}

func (s *productService) recompute(ctx context.Context) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return
	}
	s.engine.Recompute(ctx, products)
}
