package repository

import (
	"context"

	"shopcat/internal/dto"
	"shopcat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository defines the data access contract for products and
// their variants. Services depend on this interface, not on the concrete
// GORM implementation, enabling clean unit testing via stubs.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	FindBySKU(ctx context.Context, sku string) (*model.Product, error)
	List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error)
	// ListAll loads every active product with memberships — input for the
	// association inference pass and explorer projections.
	ListAll(ctx context.Context) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)
	Update(ctx context.Context, p *model.Product) error
	ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// Variants
	CreateVariant(ctx context.Context, v *model.ProductVariant) error
	FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*model.ProductVariant, error)
	UpdateVariant(ctx context.Context, v *model.ProductVariant) error
	DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error
}

type productRepo struct{ db *gorm.DB }

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Categories").Preload("Variants").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) FindBySKU(ctx context.Context, sku string) (*model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) List(ctx context.Context, filter dto.ProductFilter) ([]model.Product, int64, error) {
	var products []model.Product
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Product{})

	// Active filter: "false" = inactive, "all" = everything, default active-only
	switch filter.Active {
	case "false":
		q = q.Where("active = false")
	case "all":
		// no filter
	default:
		q = q.Where("active = true")
	}

	if filter.Query != "" {
		q = q.Where("name ILIKE ? OR sku ILIKE ?", "%"+filter.Query+"%", "%"+filter.Query+"%")
	}
	if filter.BrandID != "" {
		q = q.Where("brand_id = ?", filter.BrandID)
	}
	if filter.CategoryID != "" {
		q = q.Where("id IN (?)", r.db.Model(&model.ProductCategory{}).
			Select("product_id").Where("category_id = ?", filter.CategoryID))
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Categories").Order("name ASC").Limit(filter.Limit).Offset(offset).Find(&products).Error
	return products, total, err
}

func (r *productRepo) ListAll(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Categories").Where("active = true").Find(&products).Error
	return products, err
}

func (r *productRepo) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.WithContext(ctx).Preload("Categories").
		Where("active = true AND id IN (?)", r.db.Model(&model.ProductCategory{}).
			Select("product_id").Where("category_id = ?", categoryID)).
		Order("name ASC").Find(&products).Error
	return products, err
}

func (r *productRepo) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductCategory{}).
		Joins("JOIN products ON products.id = product_categories.product_id AND products.active = true").
		Where("product_categories.category_id = ?", categoryID).Count(&n).Error
	return n, err
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	return r.db.WithContext(ctx).Omit("Categories", "Variants").Save(p).Error
}

func (r *productRepo) ReplaceCategories(ctx context.Context, productID uuid.UUID, categoryIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductCategory{}).Error; err != nil {
			return err
		}
		for _, catID := range categoryIDs {
			pc := model.ProductCategory{ProductID: productID, CategoryID: catID}
			if err := tx.Create(&pc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *productRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Update("active", false).Error
}

func (r *productRepo) CreateVariant(ctx context.Context, v *model.ProductVariant) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *productRepo) FindVariant(ctx context.Context, productID, variantID uuid.UUID) (*model.ProductVariant, error) {
	var v model.ProductVariant
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).First(&v).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *productRepo) UpdateVariant(ctx context.Context, v *model.ProductVariant) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *productRepo) DeleteVariant(ctx context.Context, productID, variantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", variantID, productID).
		Delete(&model.ProductVariant{}).Error
}
