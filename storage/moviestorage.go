package storage

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pragmatical/ngsa-app/config"
	"github.com/pragmatical/ngsa-app/core"
	"github.com/pragmatical/ngsa-app/metrics"
)

// MovieCursor interface for mocking
type MovieCursor interface {
	All(ctx context.Context, results interface{}) error
	Close(ctx context.Context) error
	Err() error
	Next(ctx context.Context) bool
	Decode(v interface{}) error
}

// MovieSingleResult interface for mocking
type MovieSingleResult interface {
	Decode(v interface{}) error
	Err() error
}

// MovieCollection interface for mocking
type MovieCollection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (MovieCursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) MovieSingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
}

// mongoMovieCursor adapts *mongo.Cursor to MovieCursor
type mongoMovieCursor struct {
	*mongo.Cursor
}

func (m *mongoMovieCursor) All(ctx context.Context, results interface{}) error {
	return m.Cursor.All(ctx, results)
}

func (m *mongoMovieCursor) Close(ctx context.Context) error {
	return m.Cursor.Close(ctx)
}

func (m *mongoMovieCursor) Err() error {
	return m.Cursor.Err()
}

func (m *mongoMovieCursor) Next(ctx context.Context) bool {
	return m.Cursor.Next(ctx)
}

func (m *mongoMovieCursor) Decode(v interface{}) error {
	return m.Cursor.Decode(v)
}

// mongoMovieCollection adapts *mongo.Collection to MovieCollection
type mongoMovieCollection struct {
	*mongo.Collection
}

func (m *mongoMovieCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (MovieCursor, error) {
	cursor, err := m.Collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return &mongoMovieCursor{Cursor: cursor}, nil
}

func (m *mongoMovieCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) MovieSingleResult {
	return m.Collection.FindOne(ctx, filter, opts...)
}

// MovieStorage handles movie persistence against a single collection. Lookups
// by id go through a small LRU cache since the catalog is read-heavy and
// individual titles are requested repeatedly.
type MovieStorage struct {
	cosmos  *Cosmos
	coll    MovieCollection
	cache   *lru.Cache[string, *core.Movie]
	timeout time.Duration
	logger  *zap.SugaredLogger
}

// NewMovieStorage creates a movie storage handler over the named collection.
func NewMovieStorage(cosmos *Cosmos, collection string, cfg *config.Config, logger *zap.SugaredLogger) (*MovieStorage, error) {
	cache, err := lru.New[string, *core.Movie](cfg.Database.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create movie cache: %w", err)
	}
	return &MovieStorage{
		cosmos:  cosmos,
		coll:    &mongoMovieCollection{Collection: cosmos.Database.Collection(collection)},
		cache:   cache,
		timeout: cfg.QueryTimeout(),
		logger:  logger,
	}, nil
}

// GetMovies retrieves up to limit movies ordered by descending rating.
func (ms *MovieStorage) GetMovies(limit int) ([]core.Movie, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
	defer cancel()

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"rating": -1})
	findOptions.SetLimit(int64(limit))

	cursor, err := ms.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer cursor.Close(ctx)

	movies := make([]core.Movie, 0)
	for cursor.Next(ctx) {
		var movie core.Movie
		if err := cursor.Decode(&movie); err != nil {
			return nil, fmt.Errorf("failed to decode movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return movies, nil
}

// GetMovie retrieves a single movie by id, consulting the cache first.
func (ms *MovieStorage) GetMovie(id string) (*core.Movie, error) {
	if movie, ok := ms.cache.Get(id); ok {
		metrics.MovieCacheHits.Inc()
		return movie, nil
	}
	metrics.MovieCacheMisses.Inc()

	ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
	defer cancel()

	var movie core.Movie
	if err := ms.coll.FindOne(ctx, bson.M{"id": id}).Decode(&movie); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrMovieNotFound
		}
		return nil, fmt.Errorf("failed to find movie %s: %w", id, err)
	}

	ms.cache.Add(id, &movie)
	return &movie, nil
}

// SearchMovies retrieves movies whose title matches the query, optionally
// restricted to a release year. An empty title with year 0 behaves like
// GetMovies.
func (ms *MovieStorage) SearchMovies(title string, year, limit int) ([]core.Movie, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
	defer cancel()

	filter := bson.M{}
	if title != "" {
		filter["title"] = bson.M{"$regex": title, "$options": "i"}
	}
	if year > 0 {
		filter["year"] = year
	}

	findOptions := options.Find()
	findOptions.SetSort(bson.M{"title": 1})
	findOptions.SetLimit(int64(limit))

	cursor, err := ms.coll.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to search movies: %w", err)
	}
	defer cursor.Close(ctx)

	movies := make([]core.Movie, 0)
	if err := cursor.All(ctx, &movies); err != nil {
		return nil, fmt.Errorf("failed to decode search results: %w", err)
	}

	return movies, nil
}

// CreateMovie inserts a new movie.
func (ms *MovieStorage) CreateMovie(movie *core.Movie) error {
	ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
	defer cancel()

	if _, err := ms.coll.InsertOne(ctx, movie); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateMovie
		}
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	ms.cache.Add(movie.ID, movie)
	return nil
}

// DeleteMovie removes a movie by id.
func (ms *MovieStorage) DeleteMovie(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
	defer cancel()

	result, err := ms.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete movie %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrMovieNotFound
	}

	ms.cache.Remove(id)
	return nil
}

// GetMovieCount returns the total number of movies.
func (ms *MovieStorage) GetMovieCount() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), ms.timeout)
	defer cancel()

	count, err := ms.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return count, nil
}
