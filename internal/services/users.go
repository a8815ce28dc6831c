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

type UserService struct {
	base
	coll *mongo.Collection
}

func NewUserService(db *mongo.Database, timeout time.Duration) *UserService {
	return &UserService{base: newBase(timeout), coll: db.Collection(database.Users)}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	cur, err := s.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// FindByEmail returns (nil, nil) when no user has that email.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Create inserts a user unless one with the same email exists, in which
// case the existing record is returned and created is false.
func (s *UserService) Create(ctx context.Context, req models.CreateUserRequest) (user *models.User, created bool, err error) {
	existing, err := s.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	ctx, cancel := s.ctx(ctx)
	defer cancel()

	u := models.User{
		Name:      req.Name,
		Email:     req.Email,
		PhotoURL:  req.PhotoURL,
		CreatedAt: time.Now().UTC(),
	}
	res, err := s.coll.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		// lost a race with a concurrent first sign-in
		existing, findErr := s.FindByEmail(ctx, req.Email)
		if findErr != nil {
			return nil, false, findErr
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("insert user: %w", err)
	}
	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = id
	}
	return &u, true, nil
}

// MakeAdmin sets the admin role on the user with the given id.
func (s *UserService) MakeAdmin(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.UpdateByID(ctx, oid, bson.M{"$set": bson.M{"role": models.RoleAdmin}})
	if err != nil {
		return fmt.Errorf("update user role: %w", err)
	}
	if res.MatchedCount == 0 {
		return notFound("user")
	}
	return nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	ctx, cancel := s.ctx(ctx)
	defer cancel()

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return notFound("user")
	}
	return nil
}
