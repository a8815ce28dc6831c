package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const PaymentStatusPaid = "paid"

type Payment struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email         string               `bson:"email" json:"email"`
	TransactionID string               `bson:"transactionId" json:"transactionId"`
	Price         float64              `bson:"price" json:"price"`
	CartIDs       []primitive.ObjectID `bson:"cartIds" json:"cartIds"`
	ProductIDs    []primitive.ObjectID `bson:"productIds" json:"productIds"`
	Status        string               `bson:"status" json:"status"`
	Date          time.Time            `bson:"date" json:"date"`
}

type PaymentRequest struct {
	TransactionID string   `json:"transactionId" binding:"required"`
	Price         float64  `json:"price" binding:"required,gt=0"`
	CartIDs       []string `json:"cartIds" binding:"required,min=1,dive,objectid"`
	ProductIDs    []string `json:"productIds" binding:"required,min=1,dive,objectid"`
}

// PaymentResult reports the payment insert and the cart cleanup it caused.
type PaymentResult struct {
	PaymentID    primitive.ObjectID `json:"insertedId"`
	DeletedCarts int64              `json:"deletedCount"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}
