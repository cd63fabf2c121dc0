package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"golang.org/x/sync/errgroup"

	"github.com/sawitpro/palmstore/internal/chat"
	"github.com/sawitpro/palmstore/internal/config"
	"github.com/sawitpro/palmstore/internal/handlers"
	"github.com/sawitpro/palmstore/internal/middleware"
	"github.com/sawitpro/palmstore/internal/repository"
	"github.com/sawitpro/palmstore/internal/responder"
	"github.com/sawitpro/palmstore/internal/service"
	"github.com/sawitpro/palmstore/internal/session"
	"github.com/sawitpro/palmstore/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.NewWithFormat(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(log)

	log.Info("starting palmstore api server",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"env", cfg.AppEnv,
		"log_level", cfg.LogLevel,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	// Initialize repositories
	productRepo := repository.NewInMemoryProductRepository()
	catalog, err := productRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	snapshots, closeSnapshots, err := newSnapshotStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSnapshots()

	registry := session.NewRegistry(catalog, newChatFactory(cfg, log), snapshots, log)

	// Initialize services
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(productRepo, registry)
	assistantService := service.NewAssistantService(responder.NewPalmPal(), registry, log)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(registry, log)
	productHandler := handlers.NewProductHandler(productService, log)
	sessionHandler := handlers.NewSessionHandler(registry, cartService, assistantService, log)
	cartHandler := handlers.NewCartHandler(cartService, log)
	chatHandler := handlers.NewChatHandler(assistantService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.Server.RequestTimeout))
	r.Use(middleware.SecureHeaders(cfg.IsProduction(), log))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.SessionHeader},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// PalmPal assistant
	r.With(httprate.Limit(
		cfg.Server.RateLimit,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)).Post("/chat", chatHandler.Chat)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Catalog endpoints
		r.Get("/product", productHandler.ListProducts)
		r.Get("/product/{productId}", productHandler.GetProduct)
		r.Get("/categories", productHandler.Categories)
		r.Get("/recommendations", productHandler.Recommendations)
		r.Get("/prompts", productHandler.Prompts)

		// Session endpoints
		r.Route("/session", func(r chi.Router) {
			r.With(httprate.Limit(
				cfg.Server.SessionLimit,
				time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
			)).Post("/", sessionHandler.Create)

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
	})

	// Create HTTP server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return registry.RunJanitor(gctx, cfg.Session.SweepInterval, cfg.Session.IdleTimeout)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// newChatFactory builds the SawitPro chat panel for each new session.
// With CHAT_UPSTREAM_URL set the panel asks the remote assistant instead of the canned table.
func newChatFactory(cfg *config.Config, log *slog.Logger) session.ChatFactory {
	var r responder.Responder = responder.NewSawitPro()
	apology := responder.SawitProApology
	if cfg.Chat.UpstreamURL != "" {
		r = responder.NewRemoteResponder(cfg.Chat.UpstreamURL, nil, cfg.Chat.UpstreamTimeout)
		apology = responder.PalmPalApology
		log.Info("chat panel uses remote assistant", "endpoint", cfg.Chat.UpstreamURL)
	}

	delay := chat.FixedDelay(cfg.Chat.ThinkingDelay)
	return func() *chat.Session {
		return chat.NewSession(r,
			chat.WithDelay(delay),
			chat.WithGreeting(responder.SawitProGreeting),
			chat.WithApology(apology),
			chat.WithLogger(log),
		)
	}
}

func newSnapshotStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (session.SnapshotStore, func(), error) {
	if cfg.Redis.Addr == "" {
		log.Info("sessions kept in memory", "ttl", cfg.Session.TTL)
		return session.NewExpiringMemorySnapshotStore(cfg.Session.TTL), func() {}, nil
	}

	client, err := session.NewRedisClient(ctx, cfg.Redis.Addr)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info("sessions persisted to redis", "addr", cfg.Redis.Addr, "ttl", cfg.Session.TTL)

	return session.NewRedisSnapshotStore(client, cfg.Session.TTL), func() {
		if err := client.Close(); err != nil {
			log.Warn("failed to close redis client", "error", err)
		}
	}, nil
}
