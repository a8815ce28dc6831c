package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-backend/internal/apperr"
)

// DefaultTimeout bounds a single store call when none is configured.
const DefaultTimeout = 10 * time.Second

type base struct {
	timeout time.Duration
}

func newBase(timeout time.Duration) base {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return base{timeout: timeout}
}

func (b base) ctx(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, b.timeout)
}

func objectID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed id %q", apperr.ErrValidation, hex)
	}
	return id, nil
}

func objectIDs(hexes []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexes))
	for _, h := range hexes {
		id, err := objectID(h)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func notFound(what string) error {
	return fmt.Errorf("%s %w", what, apperr.ErrNotFound)
}

// TxRunner runs multi-step writes. With transactions disabled the steps
// run back to back and a failure between them leaves the earlier writes
// in place.
type TxRunner struct {
	client  *mongo.Client
	enabled bool
}

func NewTxRunner(client *mongo.Client, enabled bool) *TxRunner {
	return &TxRunner{client: client, enabled: enabled}
}

// Run calls fn, inside a transaction when enabled. fn must use the context
// it is given so its operations join the session.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if r == nil || !r.enabled || r.client == nil {
		return fn(ctx)
	}

	session, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}
