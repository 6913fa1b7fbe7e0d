package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WishlistEntry is one saved product on a customer's wishlist.
type WishlistEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	ProdID    string             `bson:"prod_ID" json:"prod_ID"`
	ProdName  string             `bson:"prod_Name" json:"prod_Name"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Event is a storefront announcement (offers, festivals).
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Detail    string             `bson:"detail,omitempty" json:"detail,omitempty"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
	Date      string             `bson:"date,omitempty" json:"date,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Video is an embedded promotional video link.
type Video struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	URL       string             `bson:"url" json:"url"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Comment is customer feedback attached to a product.
type Comment struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProdID    string             `bson:"prod_ID" json:"prod_ID"`
	UserID    string             `bson:"user_id" json:"user_id"`
	UserName  string             `bson:"userName,omitempty" json:"userName,omitempty"`
	Text      string             `bson:"text" json:"text"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
