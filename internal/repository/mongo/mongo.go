package mongo

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iyhunko/product-service/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Connect opens a MongoDB client and verifies the server is reachable.
func Connect(ctx context.Context, conf config.Mongo) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	slog.Info("mongo connection done", slog.String("database", conf.Database))
	return client, nil
}

// Collection returns the products collection named in the configuration.
func Collection(client *mongo.Client, conf config.Mongo) *mongo.Collection {
	return client.Database(conf.Database).Collection(conf.Collection)
}
