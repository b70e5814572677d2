package tests

import (
	"context"
	"errors"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/model"
	"shopcat/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── Model builders ────────────────────────────────────────────────────────────

func cat(name string, parentID *uuid.UUID) model.Category {
	return model.Category{ID: uuid.New(), Name: name, ParentID: parentID, Active: true}
}

func prod(name, sku string, brandID *uuid.UUID, categoryIDs ...uuid.UUID) model.Product {
	p := model.Product{ID: uuid.New(), Name: name, SKU: sku, BrandID: brandID, Active: true}
	for _, id := range categoryIDs {
		p.Categories = append(p.Categories, model.ProductCategory{ProductID: p.ID, CategoryID: id})
	}
	return p
}

// ── Association store stubs ───────────────────────────────────────────────────

// memStore is an in-memory assoc.Store.
type memStore struct {
	m     assoc.Map
	saves int
}

func newMemStore() *memStore { return &memStore{m: make(assoc.Map)} }

func (s *memStore) Load(_ context.Context) (assoc.Map, error) { return s.m.Clone(), nil }
func (s *memStore) Save(_ context.Context, m assoc.Map) error {
	s.m = m.Clone()
	s.saves++
	return nil
}

var _ assoc.Store = (*memStore)(nil)

// failingStore errors on every operation — used to verify the engine
// degrades instead of propagating persistence failures.
type failingStore struct{}

func (failingStore) Load(_ context.Context) (assoc.Map, error) {
	return nil, errors.New("store unavailable")
}
func (failingStore) Save(_ context.Context, _ assoc.Map) error {
	return errors.New("store unavailable")
}

var _ assoc.Store = failingStore{}

// ── Repository stubs ──────────────────────────────────────────────────────────

// stubBrandRepo is an in-memory BrandRepository.
type stubBrandRepo struct {
	brands map[uuid.UUID]*model.Brand
}

func newStubBrandRepo() *stubBrandRepo {
	return &stubBrandRepo{brands: make(map[uuid.UUID]*model.Brand)}
}

func (r *stubBrandRepo) seed(name string) *model.Brand {
	b := &model.Brand{ID: uuid.New(), Name: name, Active: true}
	r.brands[b.ID] = b
	return b
}

func (r *stubBrandRepo) Create(_ context.Context, b *model.Brand) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.brands[b.ID] = b
	return nil
}

func (r *stubBrandRepo) List(_ context.Context) ([]model.Brand, error) {
	var out []model.Brand
	for _, b := range r.brands {
		if b.Active {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *stubBrandRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Brand, error) {
	b, ok := r.brands[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBrandRepo) FindByName(_ context.Context, name string) (*model.Brand, error) {
	for _, b := range r.brands {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubBrandRepo) Update(_ context.Context, b *model.Brand) error {
	r.brands[b.ID] = b
	return nil
}

func (r *stubBrandRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	b, ok := r.brands[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Active = false
	return nil
}

var _ repository.BrandRepository = (*stubBrandRepo)(nil)

// stubCategoryRepo is an in-memory CategoryRepository.
type stubCategoryRepo struct {
	categories map[uuid.UUID]*model.Category
	order      []uuid.UUID
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*model.Category)}
}

func (r *stubCategoryRepo) seed(c model.Category) *model.Category {
	stored := c
	r.categories[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return &stored
}

func (r *stubCategoryRepo) Create(_ context.Context, c *model.Category) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.categories[c.ID] = c
	r.order = append(r.order, c.ID)
	return nil
}

func (r *stubCategoryRepo) List(_ context.Context) ([]model.Category, error) {
	var out []model.Category
	for _, id := range r.order {
		if c := r.categories[id]; c.Active {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *stubCategoryRepo) FindByParent(_ context.Context, parentID uuid.UUID) ([]model.Category, error) {
	var out []model.Category
	for _, id := range r.order {
		c := r.categories[id]
		if c.Active && c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *stubCategoryRepo) CountByParent(ctx context.Context, parentID uuid.UUID) (int64, error) {
	list, _ := r.FindByParent(ctx, parentID)
	return int64(len(list)), nil
}

func (r *stubCategoryRepo) Update(_ context.Context, c *model.Category) error {
	r.categories[c.ID] = c
	return nil
}

func (r *stubCategoryRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	c, ok := r.categories[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	c.Active = false
	return nil
}

var _ repository.CategoryRepository = (*stubCategoryRepo)(nil)

// stubProductRepo is an in-memory ProductRepository.
type stubProductRepo struct {
	products map[uuid.UUID]*model.Product
	variants map[uuid.UUID]*model.ProductVariant
	order    []uuid.UUID
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: make(map[uuid.UUID]*model.Product),
		variants: make(map[uuid.UUID]*model.ProductVariant),
	}
}

func (r *stubProductRepo) seed(p model.Product) *model.Product {
	stored := p
	r.products[stored.ID] = &stored
	r.order = append(r.order, stored.ID)
	return &stored
}

func (r *stubProductRepo) Create(_ context.Context, p *model.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (r *stubProductRepo) FindBySKU(_ context.Context, sku string) (*model.Product, error) {
	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductRepo) List(ctx context.Context, _ dto.ProductFilter) ([]model.Product, int64, error) {
	all, err := r.ListAll(ctx)
	return all, int64(len(all)), err
}

func (r *stubProductRepo) ListAll(_ context.Context) ([]model.Product, error) {
	var out []model.Product
	for _, id := range r.order {
		if p := r.products[id]; p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	all, _ := r.ListAll(ctx)
	var out []model.Product
	for _, p := range all {
		if p.InCategory(categoryID) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubProductRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	list, _ := r.ListByCategory(ctx, categoryID)
	return int64(len(list)), nil
}

func (r *stubProductRepo) Update(_ context.Context, p *model.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *stubProductRepo) ReplaceCategories(_ context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	p, ok := r.products[productID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Categories = nil
	for _, id := range categoryIDs {
		p.Categories = append(p.Categories, model.ProductCategory{ProductID: productID, CategoryID: id})
	}
	return nil
}

func (r *stubProductRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Active = false
	return nil
}

func (r *stubProductRepo) CreateVariant(_ context.Context, v *model.ProductVariant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	r.variants[v.ID] = v
	return nil
}

func (r *stubProductRepo) FindVariant(_ context.Context, productID, variantID uuid.UUID) (*model.ProductVariant, error) {
	v, ok := r.variants[variantID]
	if !ok || v.ProductID != productID {
		return nil, gorm.ErrRecordNotFound
	}
	return v, nil
}

func (r *stubProductRepo) UpdateVariant(_ context.Context, v *model.ProductVariant) error {
	r.variants[v.ID] = v
	return nil
}

func (r *stubProductRepo) DeleteVariant(_ context.Context, productID, variantID uuid.UUID) error {
	v, ok := r.variants[variantID]
	if !ok || v.ProductID != productID {
		return gorm.ErrRecordNotFound
	}
	delete(r.variants, variantID)
	return nil
}

var _ repository.ProductRepository = (*stubProductRepo)(nil)
