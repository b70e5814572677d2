package service

import (
	"context"
	"errors"

	"shopcat/internal/assoc"
	"shopcat/internal/dto"
	"shopcat/internal/model"
	"shopcat/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// BrandService defines business operations for brands.
type BrandService interface {
	Create(ctx context.Context, req dto.CreateBrandRequest) (dto.BrandResponse, error)
	List(ctx context.Context) ([]dto.BrandResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateBrandRequest) (dto.BrandResponse, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type brandService struct {
	repo   repository.BrandRepository
	engine *assoc.Engine
}

func NewBrandService(repo repository.BrandRepository, engine *assoc.Engine) BrandService {
	return &brandService{repo: repo, engine: engine}
}

func mapBrand(b model.Brand) dto.BrandResponse {
	return dto.BrandResponse{
		ID:     b.ID,
		Name:   b.Name,
		NameAr: b.NameAr,
		Code:   b.Code,
		Logo:   b.Logo,
		Active: b.Active,
	}
}

func (s *brandService) Create(ctx context.Context, req dto.CreateBrandRequest) (dto.BrandResponse, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.BrandResponse{}, err
	}
	if existing != nil {
		return dto.BrandResponse{}, errors.New("a brand with that name already exists")
	}

	b := &model.Brand{
		Name:   req.Name,
		NameAr: req.NameAr,
		Code:   req.Code,
		Logo:   req.Logo,
		Active: true,
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return dto.BrandResponse{}, err
	}
	return mapBrand(*b), nil
}

func (s *brandService) List(ctx context.Context) ([]dto.BrandResponse, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.BrandResponse, 0, len(list))
	for _, b := range list {
		result = append(result, mapBrand(b))
	}
	return result, nil
}

func (s *brandService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateBrandRequest) (dto.BrandResponse, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.BrandResponse{}, errors.New("brand not found")
		}
		return dto.BrandResponse{}, err
	}

	if req.Name != nil {
		if *req.Name != b.Name {
			existing, err := s.repo.FindByName(ctx, *req.Name)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.BrandResponse{}, err
			}
			if existing != nil && existing.ID != id {
				return dto.BrandResponse{}, errors.New("a brand with that name already exists")
			}
		}
		b.Name = *req.Name
	}
	if req.NameAr != nil {
		b.NameAr = req.NameAr
	}
	if req.Code != nil {
		b.Code = req.Code
	}
	if req.Logo != nil {
		b.Logo = req.Logo
	}
	if req.Active != nil {
		b.Active = *req.Active
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return dto.BrandResponse{}, err
	}
	return mapBrand(*b), nil
}

// Deactivate soft-deletes the brand and cascades into the association map:
// deleting the owning brand is the one action that removes associations.
func (s *brandService) Deactivate(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("brand not found")
		}
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	removed := s.engine.RemoveBrand(ctx, id)
	if removed > 0 {
		log.Info().Str("brand_id", id.String()).Int("associations_removed", removed).
			Msg("brand deactivated, associations cascaded")
	}
	return nil
}
