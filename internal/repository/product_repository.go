package repository

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/sawitpro/palmstore/internal/models"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateID     = errors.New("duplicate product id")
)

//go:embed catalog.yaml
var seedCatalog []byte

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// RecommendationRepository provides the tools suggested beside the chat
type RecommendationRepository interface {
	Recommendations(ctx context.Context) ([]models.Recommendation, error)
}

type catalogDocument struct {
	Products        []models.Product        `yaml:"products"`
	Recommendations []models.Recommendation `yaml:"recommendations"`
}

// InMemoryProductRepository holds the immutable catalog in seed order
type InMemoryProductRepository struct {
	products        []models.Product
	index           map[int64]int
	recommendations []models.Recommendation
}

// NewInMemoryProductRepository creates a repository from the embedded seed catalog
func NewInMemoryProductRepository() *InMemoryProductRepository {
	repo, err := LoadCatalog(seedCatalog)
	if err != nil {
		panic(fmt.Sprintf("repository: embedded catalog: %v", err))
	}
	return repo
}

// LoadCatalog parses a YAML catalog document
func LoadCatalog(data []byte) (*InMemoryProductRepository, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	index := make(map[int64]int, len(doc.Products))
	for i, p := range doc.Products {
		if _, exists := index[p.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, p.ID)
		}
		// "all" is a filter value, never a product category
		if c, err := models.ParseCategory(string(p.Category)); err != nil || c == models.CategoryAll {
			return nil, fmt.Errorf("product %d: %w: %q", p.ID, models.ErrInvalidCategory, p.Category)
		}
		index[p.ID] = i
	}

	return &InMemoryProductRepository{
		products:        doc.Products,
		index:           index,
		recommendations: doc.Recommendations,
	}, nil
}

// GetAll returns all products in catalog order
func (r *InMemoryProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	products := make([]models.Product, len(r.products))
	copy(products, r.products)
	return products, nil
}

// GetByID returns a product by its ID
func (r *InMemoryProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	i, exists := r.index[id]
	if !exists {
		return nil, ErrProductNotFound
	}
	product := r.products[i]
	return &product, nil
}

// Recommendations returns the PalmPal recommended tools and products
func (r *InMemoryProductRepository) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	recs := make([]models.Recommendation, len(r.recommendations))
	copy(recs, r.recommendations)
	return recs, nil
}
