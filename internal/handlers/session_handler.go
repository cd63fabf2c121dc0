package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sawitpro/palmstore/internal/middleware"
	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/service"
	"github.com/sawitpro/palmstore/internal/session"
)

// SessionCreator starts and ends storefront sessions
type SessionCreator interface {
	Create(ctx context.Context) (*session.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionHandler serves the per-visitor storefront state
type SessionHandler struct {
	sessions  SessionCreator
	carts     *service.CartService
	assistant *service.AssistantService
	logger    *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions SessionCreator, carts *service.CartService, assistant *service.AssistantService, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		sessions:  sessions,
		carts:     carts,
		assistant: assistant,
		logger:    logger,
	}
}

// CreateSessionResponse is returned by POST /api/session
type CreateSessionResponse struct {
	ID       string           `json:"id"`
	Messages []models.Message `json:"messages"`
}

// FilterRequest sets the storefront category filter
type FilterRequest struct {
	Category string `json:"category" validate:"max=32"`
}

// FilterResponse reports the active category filter
type FilterResponse struct {
	Category models.Category `json:"category"`
}

// ProductView is a catalog entry decorated with the visitor's favorite flag
type ProductView struct {
	models.Product
	Favorite bool `json:"favorite"`
}

// ProductsResponse is the filtered storefront grid
type ProductsResponse struct {
	Filter   models.Category `json:"filter"`
	Products []ProductView   `json:"products"`
}

// FavoritesResponse lists favorite product ids in catalog order
type FavoritesResponse struct {
	ProductIDs []int64 `json:"productIds"`
}

// FavoriteToggleResponse reports the favorite flag after a toggle
type FavoriteToggleResponse struct {
	ProductID int64 `json:"productId"`
	Favorite  bool  `json:"favorite"`
}

// LanguageRequest selects the chat reply language
type LanguageRequest struct {
	Language string `json:"language" validate:"required,max=35"`
}

// LanguageResponse reports the chat reply language
type LanguageResponse struct {
	Language models.Language `json:"language"`
}

// Create handles POST /api/session
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Create(r.Context())
	if err != nil {
		h.logger.Error("failed to create session", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusCreated, CreateSessionResponse{
		ID:       sess.ID,
		Messages: sess.Chat.Transcript(),
	}, h.logger)
}

// Delete handles DELETE /api/session and forgets the visitor's state
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	if err := h.sessions.Delete(r.Context(), sess.ID); err != nil {
		h.logger.Error("failed to delete session", "session_id", sess.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetFilter handles GET /api/session/filter
func (h *SessionHandler) GetFilter(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	WriteJSON(w, http.StatusOK, FilterResponse{Category: sess.Catalog.State().Filter}, h.logger)
}

// SetFilter handles PUT /api/session/filter
func (h *SessionHandler) SetFilter(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req FilterRequest
	if err := decodeRequest(r, &req); err != nil {
		h.logger.Warn("failed to decode filter request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	state, err := h.carts.SetFilter(r.Context(), sess, req.Category)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCategory) {
			WriteError(w, http.StatusBadRequest, "Invalid category", h.logger)
			return
		}
		h.logger.Error("failed to set filter", "session_id", sess.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, FilterResponse{Category: state.Filter}, h.logger)
}

// Products handles GET /api/session/products
func (h *SessionHandler) Products(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	state := sess.Catalog.State()

	visible := sess.Catalog.Visible()
	views := make([]ProductView, 0, len(visible))
	for _, p := range visible {
		views = append(views, ProductView{Product: p, Favorite: state.IsFavorite(p.ID)})
	}

	WriteJSON(w, http.StatusOK, ProductsResponse{Filter: state.Filter, Products: views}, h.logger)
}

// Favorites handles GET /api/session/favorites
func (h *SessionHandler) Favorites(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	ids := sess.Catalog.State().FavoriteIDs(sess.Catalog.Catalog())
	WriteJSON(w, http.StatusOK, FavoritesResponse{ProductIDs: ids}, h.logger)
}

// ToggleFavorite handles POST /api/session/favorites/{productId}
func (h *SessionHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	productID := chi.URLParam(r, "productId")

	state, err := h.carts.ToggleFavorite(r.Context(), sess, productID)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			h.logger.Warn("favorite for unknown product", "productId", productID)
			WriteError(w, http.StatusBadRequest, "Invalid product", h.logger)
			return
		}
		h.logger.Error("failed to toggle favorite", "session_id", sess.ID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	// the id parsed successfully inside the service
	id, _ := parseProductID(productID)
	WriteJSON(w, http.StatusOK, FavoriteToggleResponse{ProductID: id, Favorite: state.IsFavorite(id)}, h.logger)
}

// SetLanguage handles PUT /api/session/language
func (h *SessionHandler) SetLanguage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req LanguageRequest
	if err := decodeRequest(r, &req); err != nil {
		h.logger.Warn("failed to decode language request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	lang, err := h.assistant.SetLanguage(r.Context(), sess, req.Language)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Unsupported language", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, LanguageResponse{Language: lang}, h.logger)
}

// ToggleLanguage handles POST /api/session/language/toggle
func (h *SessionHandler) ToggleLanguage(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	lang := h.assistant.ToggleLanguage(r.Context(), sess)
	WriteJSON(w, http.StatusOK, LanguageResponse{Language: lang}, h.logger)
}
