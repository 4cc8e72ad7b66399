package storage

import (
	"sort"
	"strings"
	"sync"

	"github.com/pragmatical/ngsa-app/core"
)

// MemoryMovieStorage serves the catalog from process memory. It backs the
// in-memory run mode so the service can be exercised without a Cosmos
// account, and doubles as the storage fake in API tests.
type MemoryMovieStorage struct {
	mu     sync.RWMutex
	movies map[string]core.Movie
}

// NewMemoryMovieStorage creates an in-memory store seeded with the given
// movies. Pass SampleMovies() for the development fixture catalog.
func NewMemoryMovieStorage(seed []core.Movie) *MemoryMovieStorage {
	ms := &MemoryMovieStorage{movies: make(map[string]core.Movie, len(seed))}
	for _, movie := range seed {
		ms.movies[movie.ID] = movie
	}
	return ms
}

// GetMovies returns up to limit movies ordered by descending rating.
func (ms *MemoryMovieStorage) GetMovies(limit int) ([]core.Movie, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	movies := make([]core.Movie, 0, len(ms.movies))
	for _, movie := range ms.movies {
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool {
		if movies[i].Rating != movies[j].Rating {
			return movies[i].Rating > movies[j].Rating
		}
		return movies[i].ID < movies[j].ID
	})

	if limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}
	return movies, nil
}

// GetMovie returns a single movie by id.
func (ms *MemoryMovieStorage) GetMovie(id string) (*core.Movie, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	movie, ok := ms.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	return &movie, nil
}

// SearchMovies returns movies whose title contains the query, optionally
// restricted to a release year, ordered by title.
func (ms *MemoryMovieStorage) SearchMovies(title string, year, limit int) ([]core.Movie, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	query := strings.ToLower(title)
	movies := make([]core.Movie, 0)
	for _, movie := range ms.movies {
		if query != "" && !strings.Contains(strings.ToLower(movie.Title), query) {
			continue
		}
		if year > 0 && movie.Year != year {
			continue
		}
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool { return movies[i].Title < movies[j].Title })

	if limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}
	return movies, nil
}

// CreateMovie inserts a new movie.
func (ms *MemoryMovieStorage) CreateMovie(movie *core.Movie) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.movies[movie.ID]; exists {
		return ErrDuplicateMovie
	}
	ms.movies[movie.ID] = *movie
	return nil
}

// DeleteMovie removes a movie by id.
func (ms *MemoryMovieStorage) DeleteMovie(id string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if _, exists := ms.movies[id]; !exists {
		return ErrMovieNotFound
	}
	delete(ms.movies, id)
	return nil
}

// GetMovieCount returns the total number of movies.
func (ms *MemoryMovieStorage) GetMovieCount() (int64, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return int64(len(ms.movies)), nil
}
