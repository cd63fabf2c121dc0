// Package store holds the storefront UI state as an explicit state container.
//
// Every transition is a pure function from State to State; Store serialises
// dispatches for one session.
package store

import (
	"sync"

	"github.com/sawitpro/palmstore/internal/models"
)

// State is the storefront state of a single session
type State struct {
	Filter    models.Category    `json:"filter"`
	Favorites map[int64]struct{} `json:"favorites"`
	Cart      []models.CartItem  `json:"cart"`
}

// NewState returns the initial state: filter "all", empty favorites and cart
func NewState() State {
	return State{
		Filter:    models.CategoryAll,
		Favorites: map[int64]struct{}{},
		Cart:      []models.CartItem{},
	}
}

// IsFavorite reports whether id is in the favorite set
func (s State) IsFavorite(id int64) bool {
	_, ok := s.Favorites[id]
	return ok
}

// FavoriteIDs returns the favorite product ids in catalog order
func (s State) FavoriteIDs(catalog []models.Product) []int64 {
	ids := make([]int64, 0, len(s.Favorites))
	for _, p := range catalog {
		if s.IsFavorite(p.ID) {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// CartCount returns the total quantity of items in the cart
func (s State) CartCount() int {
	count := 0
	for _, item := range s.Cart {
		count += item.Quantity
	}
	return count
}

// CartTotal returns the sum of all cart item subtotals
func (s State) CartTotal() float64 {
	total := 0.0
	for _, item := range s.Cart {
		total += item.Subtotal()
	}
	return total
}

// SetFilter replaces the category filter. Cart and favorites are untouched.
func SetFilter(s State, c models.Category) State {
	next := s
	next.Filter = c
	return next
}

// ToggleFavorite flips membership of id in the favorite set
func ToggleFavorite(s State, id int64) State {
	favorites := make(map[int64]struct{}, len(s.Favorites)+1)
	for k := range s.Favorites {
		favorites[k] = struct{}{}
	}
	if _, ok := favorites[id]; ok {
		delete(favorites, id)
	} else {
		favorites[id] = struct{}{}
	}

	next := s
	next.Favorites = favorites
	return next
}

// AddToCart increments the quantity of p when present, otherwise appends it with quantity 1
func AddToCart(s State, p models.Product) State {
	cart := make([]models.CartItem, 0, len(s.Cart)+1)
	found := false
	for _, item := range s.Cart {
		if item.ID == p.ID {
			item.Quantity++
			found = true
		}
		cart = append(cart, item)
	}
	if !found {
		cart = append(cart, models.CartItem{Product: p, Quantity: 1})
	}

	next := s
	next.Cart = cart
	return next
}

// Visible returns the products selected by the filter, preserving catalog order
func Visible(s State, catalog []models.Product) []models.Product {
	return FilterByCategory(catalog, s.Filter)
}

// FilterByCategory returns the products of category c in their original order.
// CategoryAll returns a copy of the whole catalog.
func FilterByCategory(catalog []models.Product, c models.Category) []models.Product {
	out := make([]models.Product, 0, len(catalog))
	for _, p := range catalog {
		if c == models.CategoryAll || p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// Action is a storefront state transition
type Action interface {
	Apply(State) State
}

// SetFilterAction selects a category
type SetFilterAction struct{ Category models.Category }

// ToggleFavoriteAction flips a favorite
type ToggleFavoriteAction struct{ ProductID int64 }

// AddToCartAction puts a product into the cart
type AddToCartAction struct{ Product models.Product }

func (a SetFilterAction) Apply(s State) State      { return SetFilter(s, a.Category) }
func (a ToggleFavoriteAction) Apply(s State) State { return ToggleFavorite(s, a.ProductID) }
func (a AddToCartAction) Apply(s State) State      { return AddToCart(s, a.Product) }

// Reduce applies actions in order
func Reduce(s State, actions ...Action) State {
	for _, a := range actions {
		s = a.Apply(s)
	}
	return s
}

// Store is a concurrency-safe holder of one session's State
type Store struct {
	mu      sync.RWMutex
	state   State
	catalog []models.Product
}

// New creates a store over the catalog with the initial state
func New(catalog []models.Product) *Store {
	return NewFromState(catalog, NewState())
}

// NewFromState creates a store that resumes from state
func NewFromState(catalog []models.Product, state State) *Store {
	if state.Filter == "" {
		state.Filter = models.CategoryAll
	}
	if state.Favorites == nil {
		state.Favorites = map[int64]struct{}{}
	}
	if state.Cart == nil {
		state.Cart = []models.CartItem{}
	}
	return &Store{
		state:   state,
		catalog: catalog,
	}
}

// Dispatch applies a and returns the resulting state
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = a.Apply(s.state)
	return s.state
}

// Commit applies a and hands the result to save. The state is published only
// when save succeeds, otherwise the store keeps its previous state.
func (s *Store) Commit(a Action, save func(next State) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := a.Apply(s.state)
	if err := save(next); err != nil {
		return s.state, err
	}
	s.state = next
	return s.state, nil
}

// State returns the current state. Reducers never mutate a published State,
// so the returned value is safe to read without the lock.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Visible returns the filtered product view
func (s *Store) Visible() []models.Product {
	return Visible(s.State(), s.catalog)
}

// Catalog returns the immutable catalog the store was built over
func (s *Store) Catalog() []models.Product {
	return s.catalog
}
