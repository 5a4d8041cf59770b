package repository

import (
	"context"
	"fmt"

	"github.com/shelfglow/inventory-backend/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
)

type Repositories struct {
	Product ProductRepository

	client *mongo.Client
}

// New connects to the document store and wires the repositories. The client
// carries the otel command monitor so every query shows up in traces.
func New(cfg *config.Config) (*Repositories, error) {

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Mongo.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMonitor(otelmongo.NewMonitor())

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("pinging mongo: %w", err)
	}

	collection := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)

	return &Repositories{
		Product: NewProductRepo(collection),
		client:  client,
	}, nil
}

func (r *Repositories) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
