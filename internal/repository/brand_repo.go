package repository

import (
	"context"

	"shopcat/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BrandRepository defines CRUD operations for Brand.
type BrandRepository interface {
	Create(ctx context.Context, b *model.Brand) error
	List(ctx context.Context) ([]model.Brand, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error)
	FindByName(ctx context.Context, name string) (*model.Brand, error)
	Update(ctx context.Context, b *model.Brand) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type brandRepo struct{ db *gorm.DB }

func NewBrandRepository(db *gorm.DB) BrandRepository { return &brandRepo{db: db} }

func (r *brandRepo) Create(ctx context.Context, b *model.Brand) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *brandRepo) List(ctx context.Context) ([]model.Brand, error) {
	var list []model.Brand
	err := r.db.WithContext(ctx).Where("active = true").Order("name asc").Find(&list).Error
	return list, err
}

func (r *brandRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Brand, error) {
	var b model.Brand
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) FindByName(ctx context.Context, name string) (*model.Brand, error) {
	var b model.Brand
	if err := r.db.WithContext(ctx).Where("lower(name) = lower(?)", name).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *brandRepo) Update(ctx context.Context, b *model.Brand) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *brandRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Brand{}).Where("id = ?", id).Update("active", false).Error
}
