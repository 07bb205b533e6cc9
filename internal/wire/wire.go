// internal/wire/wire.go
package wire

import (
	"net/http"

	"teach-trade/internal/adaptor"
	"teach-trade/internal/data/repository"
	"teach-trade/internal/usecase"
	"teach-trade/pkg/middleware"
	"teach-trade/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds the assembled router
type App struct {
	Router *chi.Mux
}

// Wiring builds services, handlers and routes.
// gatherer is served on /metrics; nil means the default registry.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	deps usecase.Deps,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *App {
	tokens := utils.NewTokenIssuer(config.JWT)

	service := usecase.NewService(repo, tokens, config, deps, logger)
	handler := adaptor.NewHandler(service, logger)

	auth := middleware.AuthSession(tokens, repo.Session, logger)
	router := setupRouter(handler, auth, gatherer, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	auth func(http.Handler) http.Handler,
	gatherer prometheus.Gatherer,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, auth)
	wireUser(r, handler.User, auth)
	wireCourse(r, handler.Course, auth)
	wireBooking(r, handler.Booking, auth)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return r
}
