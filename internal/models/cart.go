package models

import "time"

// CartItem mirrors OrderItem for the pre-checkout cart.
type CartItem struct {
	ProdID       string       `bson:"prod_ID" json:"prod_ID"`
	ProdName     string       `bson:"prod_Name" json:"prod_Name"`
	Image        string       `bson:"image" json:"image"`
	SelectedRate SelectedRate `bson:"selectedRate" json:"selectedRate"`
	Quantity     float64      `bson:"quantity" json:"quantity"`
	Subtotal     float64      `bson:"subtotal" json:"subtotal"`
}

// Cart holds one customer's pending items. There is exactly one cart per
// user_id; it is created lazily on first access and emptied after checkout.
// The financial fields are always recomputed from Items, never trusted from
// the client.
type Cart struct {
	UserID         string     `bson:"user_id" json:"user_id"`
	Items          []CartItem `bson:"items" json:"items"`
	Total          float64    `bson:"total" json:"total"`
	GST            float64    `bson:"gst" json:"gst"`
	DeliveryCharge float64    `bson:"deliveryCharge" json:"deliveryCharge"`
	Discount       float64    `bson:"discount" json:"discount"`
	GrandTotal     float64    `bson:"grandTotal" json:"grandTotal"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}
