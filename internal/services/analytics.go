package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

// AnalyticsService computes the admin dashboard figures.
type AnalyticsService struct {
	base
	users    *mongo.Collection
	products *mongo.Collection
	payments *mongo.Collection
}

func NewAnalyticsService(db *mongo.Database, timeout time.Duration) *AnalyticsService {
	return &AnalyticsService{
		base:     newBase(timeout),
		users:    db.Collection(database.Users),
		products: db.Collection(database.Products),
		payments: db.Collection(database.Payments),
	}
}

// AdminStats uses collection metadata counts, which are fast but not exact
// under concurrent writes. Revenue sums the recorded price of payments.
func (s *AnalyticsService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var stats models.AdminStats
	var err error

	if stats.UserCount, err = s.users.EstimatedDocumentCount(ctx); err != nil {
		return stats, fmt.Errorf("count users: %w", err)
	}
	if stats.ProductCount, err = s.products.EstimatedDocumentCount(ctx); err != nil {
		return stats, fmt.Errorf("count products: %w", err)
	}
	if stats.OrderCount, err = s.payments.EstimatedDocumentCount(ctx); err != nil {
		return stats, fmt.Errorf("count payments: %w", err)
	}

	cur, err := s.payments.Aggregate(ctx, revenuePipeline())
	if err != nil {
		return stats, fmt.Errorf("aggregate revenue: %w", err)
	}
	var totals []struct {
		Total float64 `bson:"total"`
	}
	if err := cur.All(ctx, &totals); err != nil {
		return stats, fmt.Errorf("decode revenue: %w", err)
	}
	if len(totals) > 0 {
		stats.Revenue = totals[0].Total
	}
	return stats, nil
}

func revenuePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}}},
	}
}

// OrderStats expands every payment into one line item per purchased product,
// joins the product and rolls up quantity and revenue per category.
// Categories nobody bought from are absent.
func (s *AnalyticsService) OrderStats(ctx context.Context) ([]models.CategoryStat, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cur, err := s.payments.Aggregate(ctx, orderStatsPipeline())
	if err != nil {
		return nil, fmt.Errorf("aggregate order stats: %w", err)
	}
	stats := []models.CategoryStat{}
	if err := cur.All(ctx, &stats); err != nil {
		return nil, fmt.Errorf("decode order stats: %w", err)
	}
	return stats, nil
}

func orderStatsPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$unwind", Value: "$productIds"}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: database.Products},
			{Key: "localField", Value: "productIds"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$product.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$product.price"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "revenue", Value: 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "category", Value: 1}}}},
	}
}
