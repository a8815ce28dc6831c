package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"storefront-backend/internal/apperr"
)

const ns = "storefront.test"

func newMock(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

// cursor answers a find or aggregate with a single, exhausted batch.
func cursor(docs ...bson.D) bson.D {
	return mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, docs...)
}

func writeAck(n int) bson.D {
	return mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(n)}, bson.E{Key: "nModified", Value: int32(n)})
}

func commandError(msg string) bson.D {
	return mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Name: "BadValue", Message: msg})
}

func TestObjectIDValidation(t *testing.T) {
	_, err := objectID("nope")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	id := primitive.NewObjectID()
	got, err := objectID(id.Hex())
	assert.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = objectIDs([]string{id.Hex(), "bad"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestNewBaseDefaultsTimeout(t *testing.T) {
	assert.Equal(t, DefaultTimeout, newBase(0).timeout)
	assert.Equal(t, time.Second, newBase(time.Second).timeout)
}

func TestTxRunnerDisabledRunsDirectly(t *testing.T) {
	calls := 0
	err := NewTxRunner(nil, true).Run(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}
