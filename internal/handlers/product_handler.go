package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sawitpro/palmstore/internal/chat"
	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/repository"
	"github.com/sawitpro/palmstore/internal/service"
)

// ProductHandler handles product-related HTTP requests
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

// CategoryOption is one entry of the storefront filter bar
type CategoryOption struct {
	Value models.Category `json:"value"`
	Label string          `json:"label"`
}

// PromptsResponse lists the canned chat inputs
type PromptsResponse struct {
	Examples     []string           `json:"examples"`
	QuickActions []chat.QuickAction `json:"quickActions"`
}

// ListProducts handles GET /api/product
// An optional ?category= narrows the result, unknown categories are rejected.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	category, err := models.ParseCategory(r.URL.Query().Get("category"))
	if err != nil {
		h.logger.Warn("invalid category filter", "category", r.URL.Query().Get("category"))
		WriteError(w, http.StatusBadRequest, "Invalid category", h.logger)
		return
	}

	products, err := h.service.ListProducts(ctx, category)
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// GetProduct handles GET /api/product/{productId}
//   - 200: successful operation
//   - 400: Invalid ID supplied
//   - 404: Product not found
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	productID := chi.URLParam(r, "productId")

	if productID == "" {
		h.logger.Warn("product ID is required")
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	id, err := strconv.ParseInt(productID, 10, 64)
	if err != nil {
		h.logger.Warn("invalid product ID format", "productId", productID, "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	product, err := h.service.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			h.logger.Info("product not found", "productId", productID)
			WriteError(w, http.StatusNotFound, "Product not found", h.logger)
			return
		}

		h.logger.Error("failed to get product", "productId", productID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, product, h.logger)
}

// Categories handles GET /api/categories
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories := models.Categories()
	options := make([]CategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, CategoryOption{Value: c, Label: c.Label()})
	}
	WriteJSON(w, http.StatusOK, options, h.logger)
}

// Recommendations handles GET /api/recommendations
func (h *ProductHandler) Recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.Recommendations(r.Context())
	if err != nil {
		h.logger.Error("failed to list recommendations", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, recs, h.logger)
}

// Prompts handles GET /api/prompts
func (h *ProductHandler) Prompts(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, PromptsResponse{
		Examples:     chat.ExamplePrompts,
		QuickActions: chat.QuickActions,
	}, h.logger)
}
