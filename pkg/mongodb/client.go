package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Client represents a MongoDB client
type Client struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewClient connects to MongoDB and verifies the connection
func NewClient(ctx context.Context, uri string) (*Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Client{
		client: client,
	}, nil
}

// Database returns a database
func (c *Client) Database(name string) *mongo.Database {
	if c.db == nil || c.db.Name() != name {
		c.db = c.client.Database(name)
	}
	return c.db
}

// Disconnect disconnects from MongoDB
func (c *Client) Disconnect(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
