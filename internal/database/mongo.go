package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names.
const (
	Users    = "users"
	Products = "products"
	Carts    = "carts"
	Wishlist = "wishlist"
	Blogs    = "blogs"
	Reviews  = "reviews"
	Payments = "payments"
)

// Store owns the client for the lifetime of the process.
type Store struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials uri and pings the primary before returning.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return &Store{Client: client, DB: client.Database(name)}, nil
}

// EnsureIndexes creates the indexes the handlers rely on. The unique email
// index is what makes POST /users safe against concurrent first sign-ins.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := map[string][]mongo.IndexModel{
		Users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		Products: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "sellPrice", Value: 1}}},
		},
		Carts: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		Wishlist: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "productId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		Payments: {
			{Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := s.DB.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.Client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
