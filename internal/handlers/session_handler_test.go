package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sawitpro/palmstore/internal/chat"
	"github.com/sawitpro/palmstore/internal/middleware"
	"github.com/sawitpro/palmstore/internal/models"
	"github.com/sawitpro/palmstore/internal/repository"
	"github.com/sawitpro/palmstore/internal/responder"
	"github.com/sawitpro/palmstore/internal/service"
	"github.com/sawitpro/palmstore/internal/session"
	"github.com/sawitpro/palmstore/pkg/logger"
)

type testAPI struct {
	router   chi.Router
	registry *session.Registry
}

func newTestAPI(t *testing.T, r responder.Responder) *testAPI {
	t.Helper()

	log := logger.New("error")
	repo := repository.NewInMemoryProductRepository()
	catalog, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}

	registry := session.NewRegistry(catalog, func() *chat.Session {
		return chat.NewSession(r, chat.WithGreeting(responder.SawitProGreeting), chat.WithLogger(log))
	}, nil, log)

	carts := service.NewCartService(repo, registry)
	assistant := service.NewAssistantService(responder.NewPalmPal(), registry, log)

	sessionHandler := NewSessionHandler(registry, carts, assistant, log)
	cartHandler := NewCartHandler(carts, log)
	chatHandler := NewChatHandler(assistant, log)

	router := chi.NewRouter()
	router.Post("/chat", chatHandler.Chat)
	router.Route("/api/session", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireSession(registry, log))
			r.Delete("/", sessionHandler.Delete)
			r.Get("/filter", sessionHandler.GetFilter)
			r.Put("/filter", sessionHandler.SetFilter)
			r.Get("/products", sessionHandler.Products)
			r.Get("/favorites", sessionHandler.Favorites)
			r.Post("/favorites/{productId}", sessionHandler.ToggleFavorite)
			r.Put("/language", sessionHandler.SetLanguage)
			r.Post("/language/toggle", sessionHandler.ToggleLanguage)
			r.Get("/cart", cartHandler.GetCart)
			r.Post("/cart", cartHandler.AddToCart)
			r.Get("/messages", chatHandler.Messages)
			r.Post("/messages", chatHandler.PostMessage)
			r.Post("/messages/quick/{action}", chatHandler.QuickAction)
		})
	})

	return &testAPI{router: router, registry: registry}
}

func (a *testAPI) do(t *testing.T, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(middleware.SessionHeader, sessionID)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) createSession(t *testing.T) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/session", "", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create session: status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp CreateSessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	return resp.ID
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response map[string]string
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	return response["error"]
}

func TestSessionHandler_Create(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())

	w := api.do(t, http.MethodPost, "/api/session", "", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp CreateSessionResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID == "" {
		t.Error("session ID is empty")
	}
	if len(resp.Messages) != 1 || resp.Messages[0].Sender != models.SenderBot {
		t.Fatalf("expected a single bot greeting, got %+v", resp.Messages)
	}
	if resp.Messages[0].Text != responder.SawitProGreeting {
		t.Errorf("greeting = %q", resp.Messages[0].Text)
	}
	if api.registry.Len() != 1 {
		t.Errorf("registry holds %d sessions, want 1", api.registry.Len())
	}
}

func TestSessionHandler_Delete(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())
	id := api.createSession(t)

	if w := api.do(t, http.MethodPost, "/api/session/cart", id, `{"productId": 1}`); w.Code != http.StatusOK {
		t.Fatalf("add to cart: status = %d, want %d", w.Code, http.StatusOK)
	}

	w := api.do(t, http.MethodDelete, "/api/session", id, "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", w.Body.String())
	}
	if api.registry.Len() != 0 {
		t.Errorf("registry holds %d sessions, want 0", api.registry.Len())
	}

	w = api.do(t, http.MethodGet, "/api/session/cart", id, "")
	if w.Code != http.StatusNotFound {
		t.Errorf("cart after delete: status = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = api.do(t, http.MethodDelete, "/api/session", "", "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("delete without header: status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestSessionHandler_RequiresSession(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())

	tests := []struct {
		name           string
		sessionID      string
		expectedStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"unknown session", "00000000-0000-0000-0000-000000000000", http.StatusNotFound},
		{"malformed session", "not-a-uuid", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodGet, "/api/session/cart", tt.sessionID, "")
			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
		})
	}
}

func TestSessionHandler_Filter(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())
	id := api.createSession(t)

	w := api.do(t, http.MethodGet, "/api/session/filter", id, "")
	var filter FilterResponse
	if err := json.NewDecoder(w.Body).Decode(&filter); err != nil {
		t.Fatalf("failed to decode filter: %v", err)
	}
	if filter.Category != models.CategoryAll {
		t.Errorf("default filter = %s, want all", filter.Category)
	}

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expected       models.Category
	}{
		{"equipment", `{"category":"equipment"}`, http.StatusOK, models.CategoryEquipment},
		{"empty resets to all", `{"category":""}`, http.StatusOK, models.CategoryAll},
		{"unknown category", `{"category":"snacks"}`, http.StatusBadRequest, ""},
		{"invalid JSON", `invalid json`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPut, "/api/session/filter", id, tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var resp FilterResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode filter: %v", err)
			}
			if resp.Category != tt.expected {
				t.Errorf("filter = %s, want %s", resp.Category, tt.expected)
			}
		})
	}
}

func TestSessionHandler_ProductsFollowFilter(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())
	id := api.createSession(t)

	api.do(t, http.MethodPut, "/api/session/filter", id, `{"category":"equipment"}`)
	api.do(t, http.MethodPost, "/api/session/favorites/5", id, "")

	w := api.do(t, http.MethodGet, "/api/session/products", id, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp ProductsResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode products: %v", err)
	}
	if resp.Filter != models.CategoryEquipment {
		t.Errorf("filter = %s, want equipment", resp.Filter)
	}
	if len(resp.Products) != 2 {
		t.Fatalf("expected 2 equipment products, got %d", len(resp.Products))
	}
	if resp.Products[0].ID != 3 || resp.Products[0].Favorite {
		t.Errorf("unexpected first product: id=%d favorite=%v", resp.Products[0].ID, resp.Products[0].Favorite)
	}
	if resp.Products[1].ID != 5 || !resp.Products[1].Favorite {
		t.Errorf("unexpected second product: id=%d favorite=%v", resp.Products[1].ID, resp.Products[1].Favorite)
	}
}

func TestSessionHandler_ToggleFavorite(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())
	id := api.createSession(t)

	toggle := func() FavoriteToggleResponse {
		w := api.do(t, http.MethodPost, "/api/session/favorites/2", id, "")
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", w.Code)
		}
		var resp FavoriteToggleResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode toggle: %v", err)
		}
		return resp
	}

	if first := toggle(); !first.Favorite || first.ProductID != 2 {
		t.Errorf("first toggle = %+v, want favorite product 2", first)
	}

	w := api.do(t, http.MethodGet, "/api/session/favorites", id, "")
	var favs FavoritesResponse
	if err := json.NewDecoder(w.Body).Decode(&favs); err != nil {
		t.Fatalf("failed to decode favorites: %v", err)
	}
	if len(favs.ProductIDs) != 1 || favs.ProductIDs[0] != 2 {
		t.Errorf("favorites = %v, want [2]", favs.ProductIDs)
	}

	if second := toggle(); second.Favorite {
		t.Error("second toggle should clear the favorite")
	}

	for _, bad := range []string{"999", "abc"} {
		w := api.do(t, http.MethodPost, "/api/session/favorites/"+bad, id, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("favorite %s: status = %d, want 400", bad, w.Code)
		}
	}
}

func TestSessionHandler_Language(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())
	id := api.createSession(t)

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expected       models.Language
	}{
		{"indonesian", `{"language":"id"}`, http.StatusOK, models.LanguageIndonesian},
		{"regional english", `{"language":"en-US"}`, http.StatusOK, models.LanguageEnglish},
		{"unsupported", `{"language":"fr"}`, http.StatusBadRequest, ""},
		{"missing", `{}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(t, http.MethodPut, "/api/session/language", id, tt.body)
			if w.Code != tt.expectedStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.expectedStatus)
			}
			if tt.expectedStatus != http.StatusOK {
				return
			}
			var resp LanguageResponse
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode language: %v", err)
			}
			if resp.Language != tt.expected {
				t.Errorf("language = %s, want %s", resp.Language, tt.expected)
			}
		})
	}

	w := api.do(t, http.MethodPost, "/api/session/language/toggle", id, "")
	var resp LanguageResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode language: %v", err)
	}
	if resp.Language != models.LanguageIndonesian {
		t.Errorf("toggled language = %s, want id", resp.Language)
	}
}

func TestSessionHandler_FilterKeepsCart(t *testing.T) {
	api := newTestAPI(t, responder.NewSawitPro())
	id := api.createSession(t)

	api.do(t, http.MethodPost, "/api/session/cart", id, `{"productId":1}`)
	api.do(t, http.MethodPut, "/api/session/filter", id, `{"category":"testing"}`)

	w := api.do(t, http.MethodGet, "/api/session/cart", id, "")
	if !strings.Contains(w.Body.String(), `"count":1`) {
		t.Errorf("cart changed after filter: %s", w.Body.String())
	}
}
