package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DB owns the Mongo client and the collection handles the service uses.
// It is constructed once in main and injected into whatever needs it;
// there is no package-level connection state.
type DB struct {
	Client  *mongo.Client
	Recipes *mongo.Collection
}

// Connect dials MongoDB and verifies the connection with a ping before
// returning a usable handle.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetSocketTimeout(30 * time.Second).
		SetMaxPoolSize(50).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	d := client.Database(database)
	return &DB{
		Client:  client,
		Recipes: d.Collection("recipes"),
	}, nil
}

// Ping reports whether the server is still reachable. Used by /health.
func (d *DB) Ping(ctx context.Context) error {
	return d.Client.Ping(ctx, readpref.Primary())
}

func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
