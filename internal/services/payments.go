package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
	"storefront-backend/internal/payments"
)

var ErrNoPaymentProvider = errors.New("payment provider is not configured")

type PaymentService struct {
	base
	coll     *mongo.Collection
	carts    *CartService
	tx       *TxRunner
	provider payments.IntentCreator
	currency string
}

func NewPaymentService(db *mongo.Database, carts *CartService, tx *TxRunner, provider payments.IntentCreator, currency string, timeout time.Duration) *PaymentService {
	return &PaymentService{
		base:     newBase(timeout),
		coll:     db.Collection(database.Payments),
		carts:    carts,
		tx:       tx,
		provider: provider,
		currency: currency,
	}
}

// CreateIntent converts price to minor units (cents) and asks the provider
// for a client secret.
func (s *PaymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	amount := int64(math.Round(price * 100))
	if amount < 1 {
		return "", fmt.Errorf("%w: price must be positive", apperr.ErrValidation)
	}
	if s.provider == nil {
		return "", ErrNoPaymentProvider
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	return s.provider.CreateIntent(ctx, amount, s.currency)
}

// Record stores a completed payment and deletes the cart items it paid for.
// Without transactions the two writes are independent: a crash in between
// leaves the paid items in the cart.
func (s *PaymentService) Record(ctx context.Context, email string, req models.PaymentRequest) (*models.PaymentResult, error) {
	cartIDs, err := objectIDs(req.CartIDs)
	if err != nil {
		return nil, err
	}
	productIDs, err := objectIDs(req.ProductIDs)
	if err != nil {
		return nil, err
	}

	payment := models.Payment{
		Email:         email,
		TransactionID: req.TransactionID,
		Price:         req.Price,
		CartIDs:       cartIDs,
		ProductIDs:    productIDs,
		Status:        models.PaymentStatusPaid,
		Date:          time.Now().UTC(),
	}

	result := &models.PaymentResult{}
	err = s.tx.Run(ctx, func(ctx context.Context) error {
		pctx, cancel := s.ctx(ctx)
		defer cancel()

		res, err := s.coll.InsertOne(pctx, payment)
		if err != nil {
			return fmt.Errorf("insert payment: %w", err)
		}
		if id, ok := res.InsertedID.(primitive.ObjectID); ok {
			result.PaymentID = id
		}

		deleted, err := s.carts.removeMany(ctx, email, cartIDs)
		if err != nil {
			return err
		}
		result.DeletedCarts = deleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PaymentService) History(ctx context.Context, email string) ([]models.Payment, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{"email": email}, options.Find().SetSort(bson.D{{Key: "date", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find payments: %w", err)
	}
	history := []models.Payment{}
	if err := cur.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("decode payments: %w", err)
	}
	return history, nil
}
