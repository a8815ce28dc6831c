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

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/database"
	"storefront-backend/internal/models"
)

type BlogService struct {
	base
	coll *mongo.Collection
}

func NewBlogService(db *mongo.Database, timeout time.Duration) *BlogService {
	return &BlogService{base: newBase(timeout), coll: db.Collection(database.Blogs)}
}

func (s *BlogService) List(ctx context.Context) ([]models.Blog, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find blogs: %w", err)
	}
	blogs := []models.Blog{}
	if err := cur.All(ctx, &blogs); err != nil {
		return nil, fmt.Errorf("decode blogs: %w", err)
	}
	return blogs, nil
}

func (s *BlogService) Get(ctx context.Context, id string) (*models.Blog, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var blog models.Blog
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&blog)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound("blog")
	}
	if err != nil {
		return nil, fmt.Errorf("find blog: %w", err)
	}
	return &blog, nil
}

func (s *BlogService) Create(ctx context.Context, req models.BlogRequest) (*models.Blog, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	now := time.Now().UTC()
	blog := models.Blog{
		Title:     req.Title,
		Author:    req.Author,
		Image:     req.Image,
		Content:   req.Content,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if blog.Tags == nil {
		blog.Tags = []string{}
	}
	res, err := s.coll.InsertOne(ctx, blog)
	if err != nil {
		return nil, fmt.Errorf("insert blog: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		blog.ID = id
	}
	return &blog, nil
}

func (s *BlogService) Patch(ctx context.Context, id string, patch models.BlogPatch) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Author != nil {
		set["author"] = *patch.Author
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Tags != nil {
		set["tags"] = *patch.Tags
	}
	if len(set) == 0 {
		return fmt.Errorf("%w: nothing to update", apperr.ErrValidation)
	}
	set["updatedAt"] = time.Now().UTC()

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update blog: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("blog")
	}
	return nil
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete blog: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound("blog")
	}
	return nil
}

// ReviewService stores storefront testimonials.
type ReviewService struct {
	base
	coll *mongo.Collection
}

func NewReviewService(db *mongo.Database, timeout time.Duration) *ReviewService {
	return &ReviewService{base: newBase(timeout), coll: db.Collection(database.Reviews)}
}

func (s *ReviewService) List(ctx context.Context) ([]models.Review, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find reviews: %w", err)
	}
	reviews := []models.Review{}
	if err := cur.All(ctx, &reviews); err != nil {
		return nil, fmt.Errorf("decode reviews: %w", err)
	}
	return reviews, nil
}

func (s *ReviewService) Create(ctx context.Context, email string, req models.SiteReviewRequest) (*models.Review, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	review := models.Review{
		Name:      req.Name,
		Email:     email,
		PhotoURL:  req.PhotoURL,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.coll.InsertOne(ctx, review)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		review.ID = id
	}
	return &review, nil
}
