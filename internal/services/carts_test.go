package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/models"
)

const owner = "ada@example.com"

func TestCartAdd(t *testing.T) {
	mt := newMock(t)

	mt.Run("quantity defaults to one", func(mt *mtest.T) {
		svc := NewCartService(mt.DB, 0)
		mt.AddMockResponses(writeAck(1))

		req := models.CartRequest{ProductID: primitive.NewObjectID().Hex(), Name: "Runner", Price: 20}
		item, err := svc.Add(context.Background(), owner, req)
		require.NoError(t, err)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, owner, item.Email)
		assert.False(t, item.ID.IsZero())
	})

	mt.Run("malformed product id", func(mt *mtest.T) {
		svc := NewCartService(mt.DB, 0)

		_, err := svc.Add(context.Background(), owner, models.CartRequest{ProductID: "shoe", Name: "Runner"})
		assert.ErrorIs(t, err, apperr.ErrValidation)
	})
}

func TestCartListAndRemove(t *testing.T) {
	mt := newMock(t)

	mt.Run("list", func(mt *mtest.T) {
		svc := NewCartService(mt.DB, 0)
		mt.AddMockResponses(cursor(
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: owner}, {Key: "name", Value: "Runner"}, {Key: "quantity", Value: int32(2)}},
		))

		items, err := svc.List(context.Background(), owner)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	mt.Run("remove someone else's item", func(mt *mtest.T) {
		svc := NewCartService(mt.DB, 0)
		mt.AddMockResponses(writeAck(0))

		err := svc.Remove(context.Background(), owner, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	mt.Run("remove", func(mt *mtest.T) {
		svc := NewCartService(mt.DB, 0)
		mt.AddMockResponses(writeAck(1))

		assert.NoError(t, svc.Remove(context.Background(), owner, primitive.NewObjectID().Hex()))
	})
}

func TestWishlistAdd(t *testing.T) {
	mt := newMock(t)
	productID := primitive.NewObjectID()
	req := models.WishlistRequest{ProductID: productID.Hex(), Name: "Runner", Price: 20}

	mt.Run("new entry", func(mt *mtest.T) {
		svc := NewWishlistService(mt.DB, NewCartService(mt.DB, 0), NewTxRunner(nil, false), 0)
		mt.AddMockResponses(cursor(), writeAck(1))

		item, created, err := svc.Add(context.Background(), owner, req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, productID, item.ProductID)
	})

	mt.Run("duplicate returns existing", func(mt *mtest.T) {
		svc := NewWishlistService(mt.DB, NewCartService(mt.DB, 0), NewTxRunner(nil, false), 0)
		existing := primitive.NewObjectID()
		mt.AddMockResponses(cursor(bson.D{
			{Key: "_id", Value: existing},
			{Key: "productId", Value: productID},
			{Key: "email", Value: owner},
		}))

		item, created, err := svc.Add(context.Background(), owner, req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, existing, item.ID)
	})
}

func TestWishlistAddLosesInsertRace(t *testing.T) {
	mt := newMock(t)
	productID := primitive.NewObjectID()
	req := models.WishlistRequest{ProductID: productID.Hex(), Name: "Runner", Price: 20}

	mt.Run("returns the winning entry", func(mt *mtest.T) {
		svc := NewWishlistService(mt.DB, NewCartService(mt.DB, 0), NewTxRunner(nil, false), 0)
		winner := primitive.NewObjectID()
		mt.AddMockResponses(
			cursor(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			cursor(bson.D{
				{Key: "_id", Value: winner},
				{Key: "productId", Value: productID},
				{Key: "email", Value: owner},
			}),
		)

		item, created, err := svc.Add(context.Background(), owner, req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, winner, item.ID)
	})
}

func TestWishlistMoveToCart(t *testing.T) {
	mt := newMock(t)

	mt.Run("moves entry with quantity one", func(mt *mtest.T) {
		svc := NewWishlistService(mt.DB, NewCartService(mt.DB, 0), NewTxRunner(nil, false), 0)
		productID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "productId", Value: productID},
				{Key: "email", Value: owner},
				{Key: "name", Value: "Runner"},
				{Key: "price", Value: 20.0},
			}}),
			writeAck(1),
		)

		item, err := svc.MoveToCart(context.Background(), owner, primitive.NewObjectID().Hex())
		require.NoError(t, err)
		assert.Equal(t, productID, item.ProductID)
		assert.Equal(t, 1, item.Quantity)
		assert.Equal(t, 20.0, item.Price)
		assert.False(t, item.ID.IsZero())
	})

	mt.Run("missing entry", func(mt *mtest.T) {
		svc := NewWishlistService(mt.DB, NewCartService(mt.DB, 0), NewTxRunner(nil, false), 0)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		_, err := svc.MoveToCart(context.Background(), owner, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	mt.Run("cart insert failure is reported", func(mt *mtest.T) {
		svc := NewWishlistService(mt.DB, NewCartService(mt.DB, 0), NewTxRunner(nil, false), 0)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "email", Value: owner},
			}}),
			commandError("bad value"),
		)

		_, err := svc.MoveToCart(context.Background(), owner, primitive.NewObjectID().Hex())
		require.Error(t, err)
		assert.Equal(t, 500, apperr.StatusCode(err))
	})
}
