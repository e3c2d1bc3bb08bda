package dto

import (
	"time"

	"github.com/cryptobloom/backend/internal/domain"
)

// FlowerRequest payload for admin catalog writes.
type FlowerRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
	Stock       int     `json:"stock"`
	Rating      float64 `json:"rating"`
	IsActive    bool    `json:"is_active"`
}

// FlowerResponse is the external catalog item shape.
type FlowerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewFlowerResponse maps a domain flower to its external shape.
func NewFlowerResponse(f *domain.Flower) FlowerResponse {
	return FlowerResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Category:    string(f.Category),
		Image:       f.Image,
		Stock:       f.Stock,
		Rating:      f.Rating,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
