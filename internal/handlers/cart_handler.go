package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sawitpro/palmstore/internal/middleware"
	"github.com/sawitpro/palmstore/internal/service"
)

// CartHandler handles cart-related HTTP requests
type CartHandler struct {
	cartService *service.CartService
	log         *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *service.CartService, log *slog.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		log:         log,
	}
}

// AddToCartRequest accepts the product id as a JSON number or string
type AddToCartRequest struct {
	ProductID json.Number `json:"productId" validate:"required"`
}

// AddToCart handles POST /api/session/cart
func (h *CartHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())

	var req AddToCartRequest
	if err := decodeRequest(r, &req); err != nil {
		h.log.Error("failed to decode cart request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	if _, err := h.cartService.AddToCart(r.Context(), sess, req.ProductID.String()); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidProduct):
			WriteError(w, http.StatusBadRequest, "Invalid product", h.log)
		default:
			h.log.Error("failed to add to cart", "session_id", sess.ID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
		}
		return
	}

	cart := h.cartService.Cart(sess)
	WriteJSON(w, http.StatusOK, cart, h.log)
	h.log.Info("product added to cart", "session_id", sess.ID, "productId", req.ProductID.String(), "cart_count", cart.Count)
}

// GetCart handles GET /api/session/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromContext(r.Context())
	WriteJSON(w, http.StatusOK, h.cartService.Cart(sess), h.log)
}

func parseProductID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}
