package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gromart/internal/middleware"
	"gromart/internal/models"
)

type cartItemRequest struct {
	ProdID   string  `json:"prod_ID" binding:"required"`
	RateKey  string  `json:"rateKey" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
}

// recomputeCart rebuilds subtotals and totals from the items. An empty cart
// zeroes every financial field instead of charging delivery on nothing.
func recomputeCart(cart *models.Cart) {
	if len(cart.Items) == 0 {
		cart.Items = []models.CartItem{}
		cart.Total = 0
		cart.GST = 0
		cart.DeliveryCharge = 0
		cart.Discount = 0
		cart.GrandTotal = 0
		return
	}

	sum := 0.0
	for i := range cart.Items {
		cart.Items[i].Subtotal = cart.Items[i].Quantity * cart.Items[i].SelectedRate.Value
		sum += cart.Items[i].Subtotal
	}
	totals := computeTotals(sum)
	cart.Total = totals.Total
	cart.GST = totals.GST
	cart.DeliveryCharge = totals.DeliveryCharge
	cart.Discount = totals.Discount
	cart.GrandTotal = totals.GrandTotal
}

// loadOrCreateCart fetches the customer's cart, creating an empty one on
// first access.
func loadOrCreateCart(ctx context.Context, db *mongo.Database, userID string) (models.Cart, error) {
	var cart models.Cart
	err := db.Collection("carts").FindOne(ctx, bson.M{"user_id": userID}).Decode(&cart)
	if err == nil {
		return cart, nil
	}
	if err != mongo.ErrNoDocuments {
		return models.Cart{}, err
	}

	cart = models.Cart{UserID: userID, Items: []models.CartItem{}, UpdatedAt: time.Now()}
	if err := saveCart(ctx, db, cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func saveCart(ctx context.Context, db *mongo.Database, cart models.Cart) error {
	cart.UpdatedAt = time.Now()
	_, err := db.Collection("carts").ReplaceOne(
		ctx,
		bson.M{"user_id": cart.UserID},
		cart,
		options.Replace().SetUpsert(true),
	)
	return err
}

// clearCart empties the customer's cart after a successful checkout.
func clearCart(ctx context.Context, db *mongo.Database, userID string) error {
	cart := models.Cart{UserID: userID, Items: []models.CartItem{}}
	recomputeCart(&cart)
	return saveCart(ctx, db, cart)
}

// GetCart handles GET /cart.
func GetCart(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		actor, ok := middleware.ActorFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadOrCreateCart(ctx, db, actor.UserID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// AddCartItem handles POST /cart/items. The product's name, image and rate
// price come from the catalog, not the client; adding the same product and
// rate again merges quantities.
func AddCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		actor, ok := middleware.ActorFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req cartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.Quantity <= 0 {
			respondWithError(c, http.StatusBadRequest, route, "quantity must be greater than zero")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{
			"prod_ID":   req.ProdID,
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		rateKey := strings.TrimSpace(req.RateKey)
		price, ok := product.Rates[rateKey]
		if !ok {
			respondWithError(c, http.StatusBadRequest, route, "unknown rate "+rateKey)
			return
		}

		cart, err := loadOrCreateCart(ctx, db, actor.UserID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		merged := false
		for i := range cart.Items {
			if cart.Items[i].ProdID == product.ProdID && cart.Items[i].SelectedRate.Key == rateKey {
				cart.Items[i].Quantity += req.Quantity
				merged = true
				break
			}
		}
		if !merged {
			cart.Items = append(cart.Items, models.CartItem{
				ProdID:       product.ProdID,
				ProdName:     product.Name,
				Image:        product.Image,
				SelectedRate: models.SelectedRate{Key: rateKey, Value: price},
				Quantity:     req.Quantity,
			})
		}

		recomputeCart(&cart)
		if err := saveCart(ctx, db, cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// UpdateCartItem handles PUT /cart/items/:prod_ID. A non-positive quantity
// removes the line item.
func UpdateCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /cart/items"
		defer handlePanic(c, route)

		actor, ok := middleware.ActorFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		var req struct {
			RateKey  string  `json:"rateKey" binding:"required"`
			Quantity float64 `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		prodID := strings.TrimSpace(c.Param("prod_ID"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadOrCreateCart(ctx, db, actor.UserID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		found := false
		items := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProdID == prodID && item.SelectedRate.Key == req.RateKey {
				found = true
				if req.Quantity <= 0 {
					continue
				}
				item.Quantity = req.Quantity
			}
			items = append(items, item)
		}
		if !found {
			respondWithError(c, http.StatusNotFound, route, "item not in cart")
			return
		}
		cart.Items = items

		recomputeCart(&cart)
		if err := saveCart(ctx, db, cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}

// RemoveCartItem handles DELETE /cart/items/:prod_ID. Drops every rate line
// of the product.
func RemoveCartItem(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items"
		defer handlePanic(c, route)

		actor, ok := middleware.ActorFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		prodID := strings.TrimSpace(c.Param("prod_ID"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cart, err := loadOrCreateCart(ctx, db, actor.UserID)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		items := cart.Items[:0]
		for _, item := range cart.Items {
			if item.ProdID != prodID {
				items = append(items, item)
			}
		}
		cart.Items = items

		recomputeCart(&cart)
		if err := saveCart(ctx, db, cart); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, cart)
	}
}
