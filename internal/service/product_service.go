package service

import (
	"context"

	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/repository"
	"github.com/sawitpro/palmstore/internal/store"
)

// CatalogRepository is the product data the storefront needs
type CatalogRepository interface {
	repository.ProductRepository
	repository.RecommendationRepository
}

// ProductService handles business logic for products
type ProductService struct {
	repo CatalogRepository
}

// NewProductService creates a new product service
func NewProductService(repo CatalogRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// ListProducts returns the products of a category in catalog order
func (s *ProductService) ListProducts(ctx context.Context, category models.Category) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return store.FilterByCategory(products, category), nil
}

// GetProduct returns a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Recommendations returns the tools suggested beside the farming chat
func (s *ProductService) Recommendations(ctx context.Context) ([]models.Recommendation, error) {
	return s.repo.Recommendations(ctx)
}
