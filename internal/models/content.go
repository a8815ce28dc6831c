package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Blog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Author    string             `bson:"author" json:"author"`
	Image     string             `bson:"image" json:"image"`
	Content   string             `bson:"content" json:"content"`
	Tags      []string           `bson:"tags" json:"tags"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

type BlogRequest struct {
	Title   string   `json:"title" binding:"required,max=200"`
	Author  string   `json:"author" binding:"required"`
	Image   string   `json:"image" binding:"omitempty,url"`
	Content string   `json:"content" binding:"required"`
	Tags    []string `json:"tags" binding:"omitempty,dive,required"`
}

type BlogPatch struct {
	Title   *string   `json:"title" binding:"omitempty,max=200"`
	Author  *string   `json:"author"`
	Image   *string   `json:"image" binding:"omitempty,url"`
	Content *string   `json:"content"`
	Tags    *[]string `json:"tags"`
}

// Review is a storefront testimonial, unrelated to any product.
type Review struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	PhotoURL  string             `bson:"photoURL" json:"photoURL"`
	Rating    float64            `bson:"rating" json:"rating"`
	Comment   string             `bson:"comment" json:"comment"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

type SiteReviewRequest struct {
	Name     string  `json:"name" binding:"required"`
	PhotoURL string  `json:"photoURL" binding:"omitempty,url"`
	Rating   float64 `json:"rating" binding:"required,gte=1,lte=5"`
	Comment  string  `json:"comment" binding:"required,max=2000"`
}
