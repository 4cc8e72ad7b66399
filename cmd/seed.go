// Package cmd provides command-line interface commands for ngsa-app.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pragmatical/ngsa-app/api"
	"github.com/pragmatical/ngsa-app/config"
	"github.com/pragmatical/ngsa-app/core"
	"github.com/pragmatical/ngsa-app/storage"
)

// CLI output formatters
var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	infoColor    = color.New(color.FgCyan)
)

// Flags for the seed command
var (
	noColor bool
	quiet   bool
)

// NewSeedCmd creates the 'seed' command, which loads the sample movie catalog
// into the configured database. With database.in_memory set the command only
// verifies the fixture, since the in-memory store is seeded at startup.
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample movie catalog into the database",
		Long: `Load the sample movie catalog into the configured Cosmos DB collection.

The command reads the same configuration and secret volume as the server, so a
deployment that can start the server can also be seeded. Movies that already
exist are skipped.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed()
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "Suppress non-essential output")

	return cmd
}

func runSeed() error {
	logger := zap.NewNop().Sugar()

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	movies := storage.SampleMovies()

	if cfg.Database.InMemory {
		infoColor.Println("In-memory mode: the store is seeded at startup, nothing to do")
		successColor.Printf("✓ %d sample movies available\n", len(movies))
		return nil
	}

	bundle, err := config.LoadSecretBundle(cfg.Database.SecretsVolume)
	if err != nil {
		errorColor.Fprintf(os.Stderr, "✗ failed to load secrets\n")
		return err
	}

	cosmos, err := storage.NewCosmos(bundle, cfg.Database.MaxPoolSize, logger)
	if err != nil {
		return err
	}

	store, err := storage.NewMovieStorage(cosmos, bundle.Collection, cfg, logger)
	if err != nil {
		return err
	}

	if !quiet {
		infoColor.Printf("Seeding %d movies into %s/%s on %s\n",
			len(movies), bundle.Database, bundle.Collection,
			config.ServerDisplayName(bundle.ServerURL))
	}

	var s *spinner.Spinner
	if !quiet {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond)
		s.Suffix = " inserting movies..."
		s.Start()
	}

	inserted, skipped := 0, 0
	err = seedMovies(store, movies, &inserted, &skipped)

	if s != nil {
		s.Stop()
	}
	if err != nil {
		errorColor.Fprintf(os.Stderr, "✗ seeding failed after %d inserts\n", inserted)
		return err
	}

	successColor.Printf("✓ seeded %d movies (%d already present)\n", inserted, skipped)
	return nil
}

// seedMovies inserts the catalog through any movie storer, counting inserts
// and duplicates separately so re-seeding an existing database is a no-op.
func seedMovies(store api.MovieStorer, movies []core.Movie, inserted, skipped *int) error {
	for i := range movies {
		if err := store.CreateMovie(&movies[i]); err != nil {
			if errors.Is(err, storage.ErrDuplicateMovie) {
				*skipped++
				continue
			}
			return fmt.Errorf("failed to insert %q: %w", movies[i].Title, err)
		}
		*inserted++
	}
	return nil
}
