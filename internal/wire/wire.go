package wire

import (
	"net/http"

	"tour-booking/internal/adaptor"
	"tour-booking/internal/data/repository"
	"tour-booking/internal/gateway"
	"tour-booking/internal/usecase"
	"tour-booking/pkg/middleware"
	"tour-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired router.
type App struct {
	Router *chi.Mux
}

// Wiring initializes gateways, services, handlers and routes.
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	stripe := gateway.NewStripeClient(config.Stripe.SecretKey, config.Stripe.WebhookSecret, logger)
	if config.Stripe.BaseURL != "" {
		stripe = stripe.WithBaseURL(config.Stripe.BaseURL)
	}
	sslcommerz := gateway.NewSSLCommerzClient(
		config.SSLCommerz.StoreID,
		config.SSLCommerz.StorePassword,
		config.SSLCommerz.BaseURL,
		logger,
	)

	service := usecase.NewService(repo, config, stripe, sslcommerz, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router.
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS([]string{config.App.ClientURL}))

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireUser(r, handler.User, repo, config, logger)
	wireListing(r, handler.Listing, repo, config, logger)
	wireAvailability(r, handler.Availability, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wirePayment(r, handler.Payment, repo, config, logger)
	wireReview(r, handler.Review, repo, config, logger)
	wireBadge(r, handler.Badge, repo, config, logger)
	wireMeta(r, handler.Meta, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
