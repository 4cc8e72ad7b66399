// Package storage provides the movie catalog persistence layer, backed by
// Azure Cosmos DB through its MongoDB wire API, plus an in-memory variant for
// local development.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/pragmatical/ngsa-app/config"
)

// Cosmos holds the client and database handle for a Cosmos DB account.
type Cosmos struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// ConnectionURI derives the Mongo-API endpoint for a Cosmos account from the
// validated secret bundle. The account name is the server display name; the
// access key doubles as the password.
func ConnectionURI(bundle *config.SecretBundle) string {
	account := config.ServerDisplayName(bundle.ServerURL)
	return fmt.Sprintf(
		"mongodb://%s:%s@%s.mongo.cosmos.azure.com:10255/?ssl=true&replicaSet=globaldb&retrywrites=false&maxIdleTimeMS=120000&appName=@%s@",
		account, url.QueryEscape(bundle.AccessKey), account, account)
}

// NewCosmos connects to the account described by the bundle and verifies the
// connection with a ping.
func NewCosmos(bundle *config.SecretBundle, maxPoolSize uint64, logger *zap.SugaredLogger) (*Cosmos, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(ConnectionURI(bundle)).SetMaxPoolSize(maxPoolSize)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Cosmos DB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping Cosmos DB: %w", err)
	}

	logger.Infow("Connected to Cosmos DB",
		"server", config.ServerDisplayName(bundle.ServerURL),
		"database", bundle.Database)

	return &Cosmos{
		Client:   client,
		Database: client.Database(bundle.Database),
	}, nil
}

// HealthCheck performs a health check on the Cosmos DB connection.
func (c *Cosmos) HealthCheck(ctx context.Context) error {
	if c.Client == nil {
		return ErrDatabaseClosed
	}
	return c.Client.Ping(ctx, nil)
}

// Close closes the Cosmos DB connection. Any later use of the handle reports
// ErrDatabaseClosed.
func (c *Cosmos) Close(ctx context.Context) error {
	if c.Client == nil {
		return ErrDatabaseClosed
	}
	err := c.Client.Disconnect(ctx)
	c.Client = nil
	c.Database = nil
	return err
}
