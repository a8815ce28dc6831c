package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
	"storefront-backend/internal/query"
)

// ProductService is the listing service: filtered product retrieval with a
// derived average rating, product detail, reviews and admin maintenance.
type ProductService struct {
	base
	coll *mongo.Collection
}

func NewProductService(db *mongo.Database, timeout time.Duration) *ProductService {
	return &ProductService{base: newBase(timeout), coll: db.Collection(database.Products)}
}

// avgRatingExpr is 0 for a product without reviews; $avg alone yields null.
var avgRatingExpr = bson.D{{Key: "$ifNull", Value: bson.A{
	bson.D{{Key: "$avg", Value: "$reviews.rating"}},
	0,
}}}

func publicProjection() bson.D {
	return bson.D{
		{Key: "name", Value: 1},
		{Key: "category", Value: 1},
		{Key: "basePrice", Value: 1},
		{Key: "sellPrice", Value: 1},
		{Key: "discount", Value: 1},
		{Key: "isNew", Value: 1},
		{Key: "isTrending", Value: 1},
		{Key: "description", Value: 1},
		{Key: "image", Value: 1},
		{Key: "avgRating", Value: avgRatingExpr},
	}
}

func detailProjection() bson.D {
	return append(publicProjection(), bson.E{Key: "reviews", Value: 1})
}

// AverageRating is the mean of the review ratings, 0 when there are none.
func AverageRating(reviews []models.ProductReview) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, r := range reviews {
		sum += r.Rating
	}
	return sum / float64(len(reviews))
}

func (s *ProductService) List(ctx context.Context, spec query.FilterSpec) ([]models.ProductView, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cur, err := s.coll.Aggregate(ctx, spec.Pipeline(publicProjection()))
	if err != nil {
		return nil, fmt.Errorf("aggregate products: %w", err)
	}
	products := []models.ProductView{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// Get returns (nil, nil) when no product has the id.
func (s *ProductService) Get(ctx context.Context, id string) (*models.ProductDetail, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: oid}}}},
		{{Key: "$project", Value: detailProjection()}},
	}
	cur, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate product: %w", err)
	}
	var found []models.ProductDetail
	if err := cur.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	if len(found) == 0 {
		return nil, nil
	}
	product := found[0]
	if product.Reviews == nil {
		product.Reviews = []models.ProductReview{}
	}
	product.AvgRating = AverageRating(product.Reviews)
	return &product, nil
}

func (s *ProductService) Create(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	product := productFromRequest(req)
	product.Reviews = []models.ProductReview{}
	product.CreatedAt = time.Now().UTC()

	res, err := s.coll.InsertOne(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}
	return &product, nil
}

// Replace overwrites every editable field. Reviews and createdAt survive.
func (s *ProductService) Replace(ctx context.Context, id string, req models.ProductRequest) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	p := productFromRequest(req)
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"category":    p.Category,
		"basePrice":   p.BasePrice,
		"sellPrice":   p.SellPrice,
		"discount":    p.Discount,
		"price":       p.Price,
		"isNew":       p.IsNew,
		"isTrending":  p.IsTrending,
		"description": p.Description,
		"image":       p.Image,
	}}
	res, err := s.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("replace product: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("product")
	}
	return nil
}

func (s *ProductService) Patch(ctx context.Context, id string, patch models.ProductPatch) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	if patch.Empty() {
		return fmt.Errorf("%w: nothing to update", apperr.ErrValidation)
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	set := bson.M{}
	if patch.IsNew != nil {
		set["isNew"] = *patch.IsNew
	}
	if patch.IsTrending != nil {
		set["isTrending"] = *patch.IsTrending
	}
	if patch.Discount != nil {
		set["discount"] = *patch.Discount
	}
	if patch.SellPrice != nil {
		set["sellPrice"] = *patch.SellPrice
		set["price"] = *patch.SellPrice
	}

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("patch product: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("product")
	}
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound("product")
	}
	return nil
}

// AddReview appends a review to the product's review sequence.
func (s *ProductService) AddReview(ctx context.Context, productID, email string, in models.ReviewInput) (*models.ProductReview, error) {
	oid, err := objectID(productID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	review := models.ProductReview{
		Name:      in.Name,
		Email:     email,
		Rating:    in.Rating,
		Comment:   in.Comment,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$push": bson.M{"reviews": review}})
	if err != nil {
		return nil, fmt.Errorf("push review: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, notFound("product")
	}
	return &review, nil
}

func productFromRequest(req models.ProductRequest) models.Product {
	price := req.SellPrice
	if req.Price != nil {
		price = *req.Price
	}
	return models.Product{
		Name:        req.Name,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		SellPrice:   req.SellPrice,
		Discount:    req.Discount,
		Price:       price,
		IsNew:       req.IsNew,
		IsTrending:  req.IsTrending,
		Description: req.Description,
		Image:       req.Image,
	}
}
