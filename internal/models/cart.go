package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CartItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	Quantity  int                `bson:"quantity" json:"quantity"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

// CartRequest adds a product to the caller's cart. The owner is taken from
// the verified token, never from the body.
type CartRequest struct {
	ProductID string  `json:"productId" binding:"required,objectid"`
	Name      string  `json:"name" binding:"required"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" binding:"gte=0"`
	Quantity  int     `json:"quantity" binding:"omitempty,gte=1,lte=100"`
}

type WishlistItem struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductID primitive.ObjectID `bson:"productId" json:"productId"`
	Email     string             `bson:"email" json:"email"`
	Name      string             `bson:"name" json:"name"`
	Image     string             `bson:"image" json:"image"`
	Price     float64            `bson:"price" json:"price"`
	AddedAt   time.Time          `bson:"addedAt" json:"addedAt"`
}

type WishlistRequest struct {
	ProductID string  `json:"productId" binding:"required,objectid"`
	Name      string  `json:"name" binding:"required"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" binding:"gte=0"`
}
