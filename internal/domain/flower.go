package domain

import "time"

// FlowerCategory enumerates catalog categories.
type FlowerCategory string

const (
	CategoryRoses      FlowerCategory = "Roses"
	CategoryTulips     FlowerCategory = "Tulips"
	CategoryOrchids    FlowerCategory = "Orchids"
	CategoryLilies     FlowerCategory = "Lilies"
	CategorySunflowers FlowerCategory = "Sunflowers"
	CategoryMixed      FlowerCategory = "Mixed"
	CategoryExotic     FlowerCategory = "Exotic"
)

// Valid reports whether the category is a known value.
func (c FlowerCategory) Valid() bool {
	switch c {
	case CategoryRoses, CategoryTulips, CategoryOrchids, CategoryLilies,
		CategorySunflowers, CategoryMixed, CategoryExotic:
		return true
	}
	return false
}

// Flower is a catalog item available for purchase.
type Flower struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    FlowerCategory
	Image       string
	Stock       int
	Rating      float64
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
