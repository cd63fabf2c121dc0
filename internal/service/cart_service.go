package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/session"
	"github.com/sawitpro/palmstore/internal/store"
)

var ErrInvalidProduct = errors.New("invalid product")

// ProductRepository interface for product data access
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}

// SessionPersister saves a session after it changed
type SessionPersister interface {
	Persist(ctx context.Context, sess *session.Session) error
}

// StatePersister saves a session with a storefront state that is not yet published
type StatePersister interface {
	PersistState(ctx context.Context, sess *session.Session, state store.State) error
}

// CartService applies storefront actions to a session
type CartService struct {
	productRepo ProductRepository
	sessions    StatePersister
}

// NewCartService creates a new cart service
func NewCartService(productRepo ProductRepository, sessions StatePersister) *CartService {
	return &CartService{
		productRepo: productRepo,
		sessions:    sessions,
	}
}

func (s *CartService) lookup(ctx context.Context, rawID string) (*models.Product, error) {
	productID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, ErrInvalidProduct
	}
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, ErrInvalidProduct
	}
	return product, nil
}

func (s *CartService) apply(ctx context.Context, sess *session.Session, a store.Action) (store.State, error) {
	if s.sessions == nil {
		return sess.Catalog.Dispatch(a), nil
	}
	// published only after the snapshot is saved
	return sess.Catalog.Commit(a, func(next store.State) error {
		return s.sessions.PersistState(ctx, sess, next)
	})
}

// AddToCart adds one unit of the product to the session cart
func (s *CartService) AddToCart(ctx context.Context, sess *session.Session, productID string) (store.State, error) {
	product, err := s.lookup(ctx, productID)
	if err != nil {
		return store.State{}, err
	}
	return s.apply(ctx, sess, store.AddToCartAction{Product: *product})
}

// ToggleFavorite flips the favorite flag of the product
func (s *CartService) ToggleFavorite(ctx context.Context, sess *session.Session, productID string) (store.State, error) {
	product, err := s.lookup(ctx, productID)
	if err != nil {
		return store.State{}, err
	}
	return s.apply(ctx, sess, store.ToggleFavoriteAction{ProductID: product.ID})
}

// SetFilter selects the category shown in the storefront
func (s *CartService) SetFilter(ctx context.Context, sess *session.Session, category string) (store.State, error) {
	c, err := models.ParseCategory(category)
	if err != nil {
		return store.State{}, err
	}
	return s.apply(ctx, sess, store.SetFilterAction{Category: c})
}

// Cart returns the JSON view of the session cart
func (s *CartService) Cart(sess *session.Session) models.Cart {
	state := sess.Catalog.State()
	return models.Cart{
		Items: state.Cart,
		Count: state.CartCount(),
		Total: state.CartTotal(),
	}
}
