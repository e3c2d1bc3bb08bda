package service

import (
	"context"

	"github.com/cryptobloom/backend/internal/domain"
	"github.com/cryptobloom/backend/internal/repository"
	apperrors "github.com/cryptobloom/backend/pkg/util"
)

// FlowerService exposes catalog operations.
type FlowerService struct {
	flowers repository.FlowerRepository
}

// NewFlowerService builds the service.
func NewFlowerService(flowers repository.FlowerRepository) *FlowerService {
	return &FlowerService{flowers: flowers}
}

// ListCatalog returns active flowers, optionally filtered by category.
func (s *FlowerService) ListCatalog(ctx context.Context, category string) ([]domain.Flower, error) {
	filter := repository.FlowerFilter{ActiveOnly: true}
	if category != "" {
		cat := domain.FlowerCategory(category)
		if !cat.Valid() {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": category})
		}
		filter.Category = &cat
	}
	return s.flowers.List(ctx, filter)
}

// GetFlower returns a single catalog item.
func (s *FlowerService) GetFlower(ctx context.Context, id string) (*domain.Flower, error) {
	return s.flowers.GetByID(ctx, id)
}

// FlowerInput carries admin create/update fields.
type FlowerInput struct {
	Name        string
	Description string
	Price       float64
	Category    domain.FlowerCategory
	Image       string
	Stock       int
	Rating      float64
	IsActive    bool
}

func (in FlowerInput) validate() error {
	if in.Name == "" || in.Description == "" || in.Image == "" {
		return apperrors.NewValidationError("name, description, image required", nil)
	}
	if !in.Category.Valid() {
		return apperrors.NewValidationError("unknown category", nil)
	}
	if in.Price < 0 {
		return apperrors.NewValidationError("price must be non-negative", nil)
	}
	if in.Stock < 0 {
		return apperrors.NewValidationError("stock must be non-negative", nil)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return apperrors.NewValidationError("rating must be between 0 and 5", nil)
	}
	return nil
}

// CreateFlower adds a catalog item (admin surface).
func (s *FlowerService) CreateFlower(ctx context.Context, in FlowerInput) (*domain.Flower, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.Rating == 0 {
		in.Rating = 4.5
	}

	flower := &domain.Flower{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
		Image:       in.Image,
		Stock:       in.Stock,
		Rating:      in.Rating,
		IsActive:    in.IsActive,
	}
	if err := s.flowers.Create(ctx, flower); err != nil {
		return nil, err
	}
	return flower, nil
}

// UpdateFlower replaces catalog item fields (admin surface).
func (s *FlowerService) UpdateFlower(ctx context.Context, id string, in FlowerInput) (*domain.Flower, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	flower, err := s.flowers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	flower.Name = in.Name
	flower.Description = in.Description
	flower.Price = in.Price
	flower.Category = in.Category
	flower.Image = in.Image
	flower.Stock = in.Stock
	flower.Rating = in.Rating
	flower.IsActive = in.IsActive

	if err := s.flowers.Update(ctx, flower); err != nil {
		return nil, err
	}
	return flower, nil
}
