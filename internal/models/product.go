package models

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidCategory is returned when a category value is not part of the catalog
var ErrInvalidCategory = errors.New("invalid category")

// Category groups products in the SawitPro catalog
type Category string

const (
	// CategoryAll is the filter value that selects every product. It is never
	// assigned to a product.
	CategoryAll       Category = "all"
	CategoryPalmOil   Category = "palm-oil"
	CategoryEquipment Category = "equipment"
	CategoryTesting   Category = "testing"
)

// Categories lists the filter values in display order
func Categories() []Category {
	return []Category{CategoryAll, CategoryPalmOil, CategoryEquipment, CategoryTesting}
}

// ParseCategory validates a raw filter value
func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryAll, CategoryPalmOil, CategoryEquipment, CategoryTesting:
		return c, nil
	case "":
		return CategoryAll, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// Label returns the human readable name shown on the filter buttons
func (c Category) Label() string {
	switch c {
	case CategoryAll:
		return "All Products"
	case CategoryPalmOil:
		return "Palm Oil"
	case CategoryEquipment:
		return "Equipment"
	case CategoryTesting:
		return "Testing Kits"
	default:
		return string(c)
	}
}

// Product represents a palm oil product or piece of equipment in the catalog
type Product struct {
	ID             int64    `json:"id" yaml:"id"`
	Name           string   `json:"name" yaml:"name"`
	Price          float64  `json:"price" yaml:"price"`
	OriginalPrice  float64  `json:"originalPrice" yaml:"originalPrice"`
	Image          string   `json:"image" yaml:"image"`
	Rating         float64  `json:"rating" yaml:"rating"`
	Reviews        int      `json:"reviews" yaml:"reviews"`
	Category       Category `json:"category" yaml:"category"`
	Badge          string   `json:"badge" yaml:"badge"`
	Description    string   `json:"description" yaml:"description"`
	Specifications string   `json:"specifications" yaml:"specifications"`
}

// DiscountPercent returns the rounded discount against the original price
func (p Product) DiscountPercent() int {
	if p.OriginalPrice <= 0 {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}

// Recommendation is a tool or product suggested next to the PalmPal chat
type Recommendation struct {
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image" yaml:"image"`
	Price string `json:"price" yaml:"price"`
}
