// Package api exposes the movie catalog over HTTP.
package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pragmatical/ngsa-app/config"
	"github.com/pragmatical/ngsa-app/core"
)

// rateLimiterEntry holds a rate limiter with last seen time
type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MovieStorer interface for movie storage
type MovieStorer interface {
	GetMovies(limit int) ([]core.Movie, error)
	GetMovie(id string) (*core.Movie, error)
	SearchMovies(title string, year, limit int) ([]core.Movie, error)
	CreateMovie(movie *core.Movie) error
	DeleteMovie(id string) error
	GetMovieCount() (int64, error)
}

// HealthChecker reports whether the backing database is reachable. The
// in-memory run mode has no database and passes nil.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// API holds the API server
type API struct {
	router         *mux.Router
	server         *http.Server
	movies         MovieStorer
	db             HealthChecker
	config         *config.Config
	logger         *zap.SugaredLogger
	rateLimiters   map[string]*rateLimiterEntry
	rateLimitersMu sync.Mutex
	stopCh         chan struct{}
}

// NewAPI creates a new API server
func NewAPI(movies MovieStorer, db HealthChecker, cfg *config.Config, logger *zap.SugaredLogger) *API {
	api := &API{
		router:       mux.NewRouter(),
		movies:       movies,
		db:           db,
		config:       cfg,
		logger:       logger,
		rateLimiters: make(map[string]*rateLimiterEntry),
		stopCh:       make(chan struct{}),
	}
	api.setupRoutes()
	go api.cleanupRateLimiters()
	return api
}

// setupRoutes sets up the API routes
func (a *API) setupRoutes() {
	a.router.Use(a.corsMiddleware)
	a.router.Use(a.rateLimitMiddleware)
	a.router.HandleFunc("/api/movies", a.getMovies).Methods("GET")
	a.router.HandleFunc("/api/movies", a.createMovie).Methods("POST")
	a.router.HandleFunc("/api/movies/search", a.searchMovies).Methods("GET")
	a.router.HandleFunc("/api/movies/{id}", a.getMovie).Methods("GET")
	a.router.HandleFunc("/api/movies/{id}", a.deleteMovie).Methods("DELETE")
	a.router.HandleFunc("/version", a.getVersion).Methods("GET")
	a.router.HandleFunc("/health", a.healthCheck).Methods("GET")
	a.router.Handle("/metrics", promhttp.Handler())
}

// Bind creates the HTTP server for addr without serving. It must run before
// the serve goroutine and before the shutdown path is armed, so Stop always
// sees the server it is supposed to drain.
func (a *API) Bind(addr string) {
	a.server = &http.Server{
		Addr:    addr,
		Handler: a.router,
	}
}

// Start serves on the bound address.
func (a *API) Start() error {
	return a.server.ListenAndServe()
}

// StartTLS serves on the bound address with TLS.
func (a *API) StartTLS(certFile, keyFile string) error {
	return a.server.ListenAndServeTLS(certFile, keyFile)
}

// Stop asks the server to finish in-flight requests and stop accepting new
// ones. It returns when draining completes or ctx expires.
func (a *API) Stop(ctx context.Context) error {
	close(a.stopCh)
	if a.server != nil {
		return a.server.Shutdown(ctx)
	}
	return nil
}
