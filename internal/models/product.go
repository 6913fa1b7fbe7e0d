package models

import "time"

// Product is a catalog entry. Rates maps a size label ("1kg", "500g") to its
// price; prod_Stock is kept in the canonical base unit of the product and is
// never allowed below zero.
type Product struct {
	ProdID      string             `bson:"prod_ID" json:"prod_ID"`
	Name        string             `bson:"prod_Name" json:"prod_Name"`
	Image       string             `bson:"image,omitempty" json:"image,omitempty"`
	Rates       map[string]float64 `bson:"rates" json:"rates"`
	Stock       float64            `bson:"prod_Stock" json:"prod_Stock"`
	InStock     bool               `bson:"-" json:"inStock"`
	Category    StringList         `bson:"category" json:"category"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	IsActive    bool               `bson:"isActive" json:"isActive"`
	IsDeleted   bool               `bson:"isDeleted" json:"isDeleted,omitempty"`
	DeletedAt   *time.Time         `bson:"deletedAt,omitempty" json:"deletedAt,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
