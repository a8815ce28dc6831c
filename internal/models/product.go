package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ProductReview struct {
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Rating    float64   `bson:"rating" json:"rating"`
	Comment   string    `bson:"comment" json:"comment"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// Product is the stored document. The average rating is never persisted.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	BasePrice   float64            `bson:"basePrice" json:"basePrice"`
	SellPrice   float64            `bson:"sellPrice" json:"sellPrice"`
	Discount    float64            `bson:"discount" json:"discount"`
	Price       float64            `bson:"price" json:"price"`
	IsNew       bool               `bson:"isNew" json:"isNew"`
	IsTrending  bool               `bson:"isTrending" json:"isTrending"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	Reviews     []ProductReview    `bson:"reviews" json:"reviews"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ProductView is the public listing projection.
type ProductView struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	BasePrice   float64            `bson:"basePrice" json:"basePrice"`
	SellPrice   float64            `bson:"sellPrice" json:"sellPrice"`
	Discount    float64            `bson:"discount" json:"discount"`
	IsNew       bool               `bson:"isNew" json:"isNew"`
	IsTrending  bool               `bson:"isTrending" json:"isTrending"`
	Description string             `bson:"description" json:"description"`
	Image       string             `bson:"image" json:"image"`
	AvgRating   float64            `bson:"avgRating" json:"avgRating"`
}

type ProductDetail struct {
	ProductView `bson:",inline"`
	Reviews     []ProductReview `bson:"reviews" json:"reviews"`
}

// ProductRequest is the body of POST and PUT /products. Price defaults to
// SellPrice when omitted.
type ProductRequest struct {
	Name        string   `json:"name" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	BasePrice   float64  `json:"basePrice" binding:"gte=0"`
	SellPrice   float64  `json:"sellPrice" binding:"required,gt=0"`
	Discount    float64  `json:"discount" binding:"gte=0,lte=100"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	IsNew       bool     `json:"isNew"`
	IsTrending  bool     `json:"isTrending"`
	Description string   `json:"description"`
	Image       string   `json:"image" binding:"omitempty,url"`
}

// ProductPatch carries the fields PATCH /products/:id may change.
type ProductPatch struct {
	IsNew      *bool    `json:"isNew"`
	IsTrending *bool    `json:"isTrending"`
	Discount   *float64 `json:"discount" binding:"omitempty,gte=0,lte=100"`
	SellPrice  *float64 `json:"sellPrice" binding:"omitempty,gt=0"`
}

// Empty reports whether the patch changes nothing.
func (p ProductPatch) Empty() bool {
	return p.IsNew == nil && p.IsTrending == nil && p.Discount == nil && p.SellPrice == nil
}

type ReviewInput struct {
	Name    string  `json:"name" binding:"required"`
	Rating  float64 `json:"rating" binding:"required,gte=1,lte=5"`
	Comment string  `json:"comment" binding:"max=2000"`
}
