package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

// CartService manages cart items. Every operation is scoped to the owner's
// email so one user can never touch another user's items.
type CartService struct {
	base
	coll *mongo.Collection
}

func NewCartService(db *mongo.Database, timeout time.Duration) *CartService {
	return &CartService{base: newBase(timeout), coll: db.Collection(database.Carts)}
}

func (s *CartService) List(ctx context.Context, email string) ([]models.CartItem, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("find cart items: %w", err)
	}
	items := []models.CartItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode cart items: %w", err)
	}
	return items, nil
}

func (s *CartService) Add(ctx context.Context, email string, req models.CartRequest) (*models.CartItem, error) {
	productID, err := objectID(req.ProductID)
	if err != nil {
		return nil, err
	}
	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	item := models.CartItem{
		ProductID: productID,
		Email:     email,
		Name:      req.Name,
		Image:     req.Image,
		Price:     req.Price,
		Quantity:  quantity,
		AddedAt:   time.Now().UTC(),
	}
	if err := s.insert(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *CartService) insert(ctx context.Context, item *models.CartItem) error {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("insert cart item: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return nil
}

func (s *CartService) Remove(ctx context.Context, email, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid, "email": email})
	if err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound("cart item")
	}
	return nil
}

// removeMany deletes the owner's items among ids and reports how many went.
func (s *CartService) removeMany(ctx context.Context, email string, ids []primitive.ObjectID) (int64, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}, "email": email})
	if err != nil {
		return 0, fmt.Errorf("delete cart items: %w", err)
	}
	return res.DeletedCount, nil
}

// WishlistService manages wishlist entries and their move into the cart.
type WishlistService struct {
	base
	coll  *mongo.Collection
	carts *CartService
	tx    *TxRunner
}

func NewWishlistService(db *mongo.Database, carts *CartService, tx *TxRunner, timeout time.Duration) *WishlistService {
	return &WishlistService{
		base:  newBase(timeout),
		coll:  db.Collection(database.Wishlist),
		carts: carts,
		tx:    tx,
	}
}

func (s *WishlistService) List(ctx context.Context, email string) ([]models.WishlistItem, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "addedAt", Value: -1}})
	cur, err := s.coll.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("find wishlist: %w", err)
	}
	items := []models.WishlistItem{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode wishlist: %w", err)
	}
	return items, nil
}

// Add stores the product on the wishlist. Adding a product twice returns the
// existing entry with created false.
func (s *WishlistService) Add(ctx context.Context, email string, req models.WishlistRequest) (*models.WishlistItem, bool, error) {
	productID, err := objectID(req.ProductID)
	if err != nil {
		return nil, false, err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	filter := bson.M{"email": email, "productId": productID}
	var existing models.WishlistItem
	err = s.coll.FindOne(ctx, filter).Decode(&existing)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, false, fmt.Errorf("find wishlist item: %w", err)
	}

	item := models.WishlistItem{
		ProductID: productID,
		Email:     email,
		Name:      req.Name,
		Image:     req.Image,
		Price:     req.Price,
		AddedAt:   time.Now().UTC(),
	}
	res, err := s.coll.InsertOne(ctx, item)
	if mongo.IsDuplicateKeyError(err) {
		// a concurrent add of the same product won
		if err := s.coll.FindOne(ctx, filter).Decode(&existing); err != nil {
			return nil, false, fmt.Errorf("find wishlist item: %w", err)
		}
		return &existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("insert wishlist item: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		item.ID = id
	}
	return &item, true, nil
}

func (s *WishlistService) Remove(ctx context.Context, email, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid, "email": email})
	if err != nil {
		return fmt.Errorf("delete wishlist item: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound("wishlist item")
	}
	return nil
}

// MoveToCart deletes the wishlist entry, then inserts the matching cart
// item. Without transactions a failed insert leaves the entry deleted.
func (s *WishlistService) MoveToCart(ctx context.Context, email, id string) (*models.CartItem, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	var item *models.CartItem
	err = s.tx.Run(ctx, func(ctx context.Context) error {
		wctx, cancel := s.ctx(ctx)
		defer cancel()

		var entry models.WishlistItem
		err := s.coll.FindOneAndDelete(wctx, bson.M{"_id": oid, "email": email}).Decode(&entry)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return notFound("wishlist item")
		}
		if err != nil {
			return fmt.Errorf("delete wishlist item: %w", err)
		}

		item = &models.CartItem{
			ProductID: entry.ProductID,
			Email:     email,
			Name:      entry.Name,
			Image:     entry.Image,
			Price:     entry.Price,
			Quantity:  1,
			AddedAt:   time.Now().UTC(),
		}
		return s.carts.insert(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}
