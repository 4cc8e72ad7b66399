package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pragmatical/ngsa-app/api"
	"github.com/pragmatical/ngsa-app/config"
	"github.com/pragmatical/ngsa-app/storage"
)

// App represents the application with all its components.
type App struct {
	// Configuration
	Config  *config.Config
	Secrets *config.SecretBundle
	Logger  *zap.Logger
	Sugar   *zap.SugaredLogger

	// Storage
	Cosmos *storage.Cosmos
	Movies api.MovieStorer

	// Services
	APIServer *api.API

	// Lifecycle
	Shutdown *ShutdownCoordinator
}

// NewApp creates a new application instance and initializes all components.
// All errors surface synchronously: either a fully valid secret bundle and
// storage layer exist, or the process never begins serving.
func NewApp(ctx context.Context) (*App, error) {
	app := &App{}

	logger, sugar, err := InitLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger = logger
	app.Sugar = sugar

	sugar.Info("ngsa-app starting...")

	cfg, err := InitConfig(sugar)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if err := app.initStorage(); err != nil {
		return nil, err
	}

	app.APIServer = api.NewAPI(app.Movies, app.healthChecker(), cfg, sugar)

	return app, nil
}

// initStorage resolves the run mode, loads and validates the secret bundle,
// and constructs the movie storage layer.
func (a *App) initStorage() error {
	if a.Config.Database.InMemory {
		a.Secrets = config.InMemoryBundle()
		a.Movies = storage.NewMemoryMovieStorage(storage.SampleMovies())
		a.Sugar.Infow("Using in-memory movie store",
			"database", a.Secrets.Database,
			"collection", a.Secrets.Collection)
		return nil
	}

	bundle, err := config.LoadSecretBundle(a.Config.Database.SecretsVolume)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}
	a.Secrets = bundle

	cosmos, err := storage.NewCosmos(bundle, a.Config.Database.MaxPoolSize, a.Sugar)
	if err != nil {
		return err
	}
	a.Cosmos = cosmos

	movies, err := storage.NewMovieStorage(cosmos, bundle.Collection, a.Config, a.Sugar)
	if err != nil {
		return err
	}
	a.Movies = movies

	a.Sugar.Infow("Movie storage initialized",
		"server", config.ServerDisplayName(bundle.ServerURL),
		"database", bundle.Database,
		"collection", bundle.Collection)
	return nil
}

// healthChecker returns the database health probe, or nil in memory mode. A
// typed nil inside the interface would defeat the handler's nil check.
func (a *App) healthChecker() api.HealthChecker {
	if a.Cosmos == nil {
		return nil
	}
	return a.Cosmos
}

// Start starts the API server and arms the shutdown coordinator against it.
func (a *App) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)

	// Bind before the serve goroutine and the signal handler exist, so a
	// signal arriving during startup still drains the right server.
	a.APIServer.Bind(addr)

	go func() {
		a.Sugar.Infof("API server started on %s", addr)

		var err error
		if a.Config.Server.TLS {
			err = a.APIServer.StartTLS(a.Config.Server.CertFile, a.Config.Server.KeyFile)
		} else {
			err = a.APIServer.Start()
		}

		if err != nil && err.Error() != "http: Server closed" {
			a.Sugar.Errorf("API server error: %v", err)
		}
	}()

	a.Shutdown = NewShutdownCoordinator(a.APIServer, a.Sugar, a.Config.Server.ShutdownTimeout)
	a.Shutdown.Arm(ctx)

	return nil
}

// WaitForShutdown blocks until the shutdown coordinator has brought the
// process down. In production the coordinator exits the process directly, so
// this never returns.
func (a *App) WaitForShutdown() {
	<-a.Shutdown.Done()
}
