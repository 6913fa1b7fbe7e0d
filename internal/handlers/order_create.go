package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"gromart/internal/config"
	"gromart/internal/middleware"
	"gromart/internal/models"
)

type orderEnvelope struct {
	OrderDetails struct {
		Order json.RawMessage `json:"order" binding:"required"`
	} `json:"orderdetails" binding:"required"`
}

// CreateOrder handles POST /createorder. The order is persisted, stock is
// deducted and the customer's cart is cleared in a single transaction; the
// generated order_ID encodes date, delivery centre and daily sequence.
func CreateOrder(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /createorder"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		actor, ok := middleware.ActorFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		if actor.Role != middleware.RoleCustomer {
			respondWithError(c, http.StatusForbidden, route, "only customers can place orders")
			return
		}

		var envelope orderEnvelope
		if err := c.ShouldBindJSON(&envelope); err != nil {
			respondValidationError(c, err)
			return
		}

		var order models.Order
		if err := json.Unmarshal(envelope.OrderDetails.Order, &order); err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid order payload")
			return
		}

		if err := validateOrderItems(order.Items); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}
		var missing []string
		if strings.TrimSpace(order.DeliveryDay) == "" {
			missing = append(missing, "order_deliveryDay")
		}
		if strings.TrimSpace(order.DeliveryTime) == "" {
			missing = append(missing, "order_deliveryTime")
		}
		if strings.TrimSpace(order.Direction) == "" {
			missing = append(missing, "order_direction")
		}
		if strings.TrimSpace(order.SelectedAddress.ID) == "" || strings.TrimSpace(order.SelectedAddress.UserID) == "" {
			missing = append(missing, "order_selectedAddress")
		}
		if len(missing) > 0 {
			respondWithError(c, http.StatusBadRequest, route, "missing "+strings.Join(missing, ", "))
			return
		}

		if order.SelectedAddress.UserID != actor.UserID {
			respondWithError(c, http.StatusForbidden, route, "address does not belong to this user")
			return
		}

		now := time.Now()
		order.UserID = actor.UserID
		order.DeliveryProcess = models.StatusPlaced
		order.CurrentDate = now.Format("2006-01-02")
		order.CurrentTime = now.Format("15:04:05")
		order.ActualGrandTotal = 0

		items, totals := orderItemsTotals(order.Items)
		order.Items = items
		applyTotals(&order, totals)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		session, err := db.Client().StartSession()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer session.EndSession(ctx)

		var warnings []stockWarning
		_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
			orderID, err := generateOrderID(sessCtx, db, order.Direction, now)
			if err != nil {
				return nil, err
			}
			order.OrderID = orderID

			warnings, err = deductOrderStock(sessCtx, db, order.Items, cfg.StockPolicy)
			if err != nil {
				return nil, err
			}

			if _, err := db.Collection("orders").InsertOne(sessCtx, order); err != nil {
				return nil, err
			}

			return nil, clearCart(sessCtx, db, actor.UserID)
		})
		if err != nil {
			var exhausted idExhaustedError
			if errors.As(err, &exhausted) {
				respondWithError(c, http.StatusInternalServerError, route, "could not allocate an order id")
				return
			}
			var stockErr stockAdjustError
			if errors.As(err, &stockErr) {
				respondWithError(c, http.StatusBadRequest, route, stockErr.Error())
				return
			}
			log.Printf("[%s] transaction failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[ORDER] [INFO] order %s created for user %s", order.OrderID, order.UserID)
		response := gin.H{
			"message": "order created",
			"order":   order,
		}
		if len(warnings) > 0 {
			response["warnings"] = warnings
		}
		c.JSON(http.StatusCreated, response)
	}
}
