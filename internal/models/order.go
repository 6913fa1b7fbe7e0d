package models

// SelectedRate is the unit/price pair a customer picked for a line item,
// e.g. key "500g" with value 40.
type SelectedRate struct {
	Key   string  `bson:"key" json:"key"`
	Value float64 `bson:"value" json:"value"`
}

// OrderItem represents a single product entry within an order. The actual_*
// fields are filled in by the delivery centre when the delivered quantity
// differs from the ordered one.
type OrderItem struct {
	ProdID         string       `bson:"prod_ID" json:"prod_ID"`
	ProdName       string       `bson:"prod_Name" json:"prod_Name"`
	Image          string       `bson:"image" json:"image"`
	SelectedRate   SelectedRate `bson:"selectedRate" json:"selectedRate"`
	OrderQuantity  float64      `bson:"order_quantity" json:"order_quantity"`
	Subtotal       float64      `bson:"subtotal" json:"subtotal"`
	ActualQuantity float64      `bson:"actual_quantity,omitempty" json:"actual_quantity,omitempty"`
	ActualSubtotal float64      `bson:"actual_subtotal,omitempty" json:"actual_subtotal,omitempty"`
}

// OrderAddress is the delivery address snapshot stored on the order. UserID
// must always match the order's owning customer.
type OrderAddress struct {
	ID     string `bson:"id" json:"id"`
	UserID string `bson:"userID" json:"userID"`
	Title  string `bson:"title,omitempty" json:"title,omitempty"`
	Detail string `bson:"detail,omitempty" json:"detail,omitempty"`
}

// Order lifecycle states for the deliveryProcess field.
const (
	StatusPlaced     = "Order Placed"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
	StatusCancelled  = "Cancelled"
)

// Order defines the persisted order document. order_ID is the domain key
// (YYYYMMDD + centre sequence + "O" + daily sequence), not the Mongo _id.
type Order struct {
	OrderID          string       `bson:"order_ID" json:"order_ID"`
	UserID           string       `bson:"userID" json:"userID"`
	Items            []OrderItem  `bson:"order_items" json:"order_items"`
	Total            float64      `bson:"total" json:"total"`
	GST              float64      `bson:"gst" json:"gst"`
	DeliveryCharge   float64      `bson:"deliveryCharge" json:"deliveryCharge"`
	Discount         float64      `bson:"discount" json:"discount"`
	GrandTotal       float64      `bson:"grandTotal" json:"grandTotal"`
	ActualGrandTotal float64      `bson:"actual_grandTotal,omitempty" json:"actual_grandTotal,omitempty"`
	DeliveryDay      string       `bson:"order_deliveryDay" json:"order_deliveryDay"`
	DeliveryTime     string       `bson:"order_deliveryTime" json:"order_deliveryTime"`
	Direction        string       `bson:"order_direction" json:"order_direction"`
	SelectedAddress  OrderAddress `bson:"order_selectedAddress" json:"order_selectedAddress"`
	DeliveryProcess  string       `bson:"deliveryProcess" json:"deliveryProcess"`
	CurrentDate      string       `bson:"currentDate" json:"currentDate"`
	CurrentTime      string       `bson:"currentTime" json:"currentTime"`
}

// IsTerminal reports whether the order reached a final state.
func (o Order) IsTerminal() bool {
	return o.DeliveryProcess == StatusDelivered || o.DeliveryProcess == StatusCancelled
}
