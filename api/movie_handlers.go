package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pragmatical/ngsa-app/core"
	"github.com/pragmatical/ngsa-app/metrics"
	"github.com/pragmatical/ngsa-app/storage"
)

// Version is the API version reported by /version.
const Version = "1.0"

// respondJSON writes a JSON response with proper error handling
func (a *API) respondJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		a.logger.Errorw("Failed to encode JSON response",
			"error", err,
			"data_type", fmt.Sprintf("%T", data))
		// Response already started, can't send error to client
	}
}

// parseLimit reads the limit query parameter, clamped to 1-1000.
func parseLimit(r *http.Request) int {
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 1000 {
			limit = parsed
		}
	}
	return limit
}

// getMovies returns the catalog ordered by rating.
func (a *API) getMovies(w http.ResponseWriter, r *http.Request) {
	timer := time.Now()
	movies, err := a.movies.GetMovies(parseLimit(r))
	if err != nil {
		metrics.RequestsServed.WithLabelValues("movies", "error").Inc()
		http.Error(w, fmt.Sprintf("Failed to get movies: %v", err), http.StatusInternalServerError)
		return
	}
	metrics.RequestsServed.WithLabelValues("movies", "ok").Inc()
	metrics.RequestDuration.Observe(time.Since(timer).Seconds())
	a.respondJSON(w, movies, http.StatusOK)
}

// getMovie returns a single movie by id.
func (a *API) getMovie(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	movie, err := a.movies.GetMovie(id)
	if err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			metrics.RequestsServed.WithLabelValues("movie", "not_found").Inc()
			http.Error(w, "Movie not found", http.StatusNotFound)
			return
		}
		metrics.RequestsServed.WithLabelValues("movie", "error").Inc()
		http.Error(w, fmt.Sprintf("Failed to get movie: %v", err), http.StatusInternalServerError)
		return
	}
	metrics.RequestsServed.WithLabelValues("movie", "ok").Inc()
	a.respondJSON(w, movie, http.StatusOK)
}

// searchMovies filters the catalog by title substring and release year.
func (a *API) searchMovies(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	year := 0
	if y := r.URL.Query().Get("year"); y != "" {
		parsed, err := strconv.Atoi(y)
		if err != nil {
			http.Error(w, "Invalid year", http.StatusBadRequest)
			return
		}
		year = parsed
	}

	movies, err := a.movies.SearchMovies(title, year, parseLimit(r))
	if err != nil {
		metrics.RequestsServed.WithLabelValues("search", "error").Inc()
		http.Error(w, fmt.Sprintf("Failed to search movies: %v", err), http.StatusInternalServerError)
		return
	}
	metrics.RequestsServed.WithLabelValues("search", "ok").Inc()
	a.respondJSON(w, movies, http.StatusOK)
}

// createMovie inserts a movie. The id is assigned server-side.
func (a *API) createMovie(w http.ResponseWriter, r *http.Request) {
	var movie core.Movie
	if err := json.NewDecoder(r.Body).Decode(&movie); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	validate := validator.New()
	if err := validate.Struct(&movie); err != nil {
		http.Error(w, fmt.Sprintf("Invalid movie: %v", err), http.StatusBadRequest)
		return
	}

	movie.ID = uuid.New().String()

	if err := a.movies.CreateMovie(&movie); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	a.respondJSON(w, movie, http.StatusCreated)
}

// deleteMovie removes a movie by id.
func (a *API) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := a.movies.DeleteMovie(id); err != nil {
		if errors.Is(err, storage.ErrMovieNotFound) {
			http.Error(w, "Movie not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getVersion reports the API version.
func (a *API) getVersion(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, map[string]string{"version": Version}, http.StatusOK)
}

// healthCheck reports healthy when the backing database answers a ping.
// In-memory mode has no database and is always healthy.
func (a *API) healthCheck(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	if a.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.db.HealthCheck(ctx); err != nil {
			a.logger.Errorw("Database health check failed", "error", err)
			status = "degraded"
		}
	}

	response := map[string]string{
		"status": status,
		"time":   time.Now().Format(time.RFC3339),
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	a.respondJSON(w, response, code)
}
