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

func userDoc(id primitive.ObjectID, email string, role models.Role) bson.D {
	return bson.D{
		{Key: "_id", Value: id},
		{Key: "name", Value: "Ada"},
		{Key: "email", Value: email},
		{Key: "role", Value: string(role)},
	}
}

func TestUserFindByEmail(t *testing.T) {
	mt := newMock(t)

	mt.Run("found", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		id := primitive.NewObjectID()
		mt.AddMockResponses(cursor(userDoc(id, "ada@example.com", models.RoleDemoAdmin)))

		user, err := svc.FindByEmail(context.Background(), "ada@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, id, user.ID)
		assert.Equal(t, models.RoleDemoAdmin, user.Role)
	})

	mt.Run("absent", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		mt.AddMockResponses(cursor())

		user, err := svc.FindByEmail(context.Background(), "ghost@example.com")
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	mt.Run("store failure", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		mt.AddMockResponses(commandError("bad value"))

		_, err := svc.FindByEmail(context.Background(), "ada@example.com")
		assert.Error(t, err)
	})
}

func TestUserCreate(t *testing.T) {
	mt := newMock(t)
	req := models.CreateUserRequest{Name: "Ada", Email: "ada@example.com"}

	mt.Run("first sign-in inserts", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		mt.AddMockResponses(cursor(), writeAck(1))

		user, created, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, user.ID.IsZero())
		assert.Equal(t, models.RoleNone, user.Role)
	})

	mt.Run("existing email is returned", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		id := primitive.NewObjectID()
		mt.AddMockResponses(cursor(userDoc(id, req.Email, models.RoleAdmin)))

		user, created, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, id, user.ID)
	})

	mt.Run("concurrent insert loses on unique index", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		id := primitive.NewObjectID()
		mt.AddMockResponses(
			cursor(),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "E11000 duplicate key error"}),
			cursor(userDoc(id, req.Email, models.RoleNone)),
		)

		user, created, err := svc.Create(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, id, user.ID)
	})
}

func TestUserRoleAndDelete(t *testing.T) {
	mt := newMock(t)

	mt.Run("make admin", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		mt.AddMockResponses(writeAck(1), writeAck(0))

		id := primitive.NewObjectID().Hex()
		assert.NoError(t, svc.MakeAdmin(context.Background(), id))
		assert.ErrorIs(t, svc.MakeAdmin(context.Background(), id), apperr.ErrNotFound)
	})

	mt.Run("make admin with malformed id", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		assert.ErrorIs(t, svc.MakeAdmin(context.Background(), "42"), apperr.ErrValidation)
	})

	mt.Run("delete", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		mt.AddMockResponses(writeAck(0))

		err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	mt.Run("list", func(mt *mtest.T) {
		svc := NewUserService(mt.DB, 0)
		mt.AddMockResponses(cursor(
			userDoc(primitive.NewObjectID(), "a@example.com", models.RoleAdmin),
			userDoc(primitive.NewObjectID(), "b@example.com", models.RoleNone),
		))

		users, err := svc.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}
