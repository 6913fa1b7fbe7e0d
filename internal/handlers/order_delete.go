package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"gromart/internal/middleware"
	"gromart/internal/models"
)

// DeleteOrder handles DELETE /orders/:order_ID. Only the owning customer may
// delete, and only once the order is terminal; an in-flight order has to be
// cancelled first so its stock restoration runs. Deleting never touches stock.
func DeleteOrder(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /orders"
		defer handlePanic(c, route)

		actor, ok := middleware.ActorFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}

		orderID := strings.TrimSpace(c.Param("order_ID"))
		if orderID == "" {
			respondWithError(c, http.StatusBadRequest, route, "order_ID is required")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var order models.Order
		if err := db.Collection("orders").FindOne(ctx, bson.M{"order_ID": orderID}).Decode(&order); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "order not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if actor.Role != middleware.RoleCustomer || order.UserID != actor.UserID {
			respondWithError(c, http.StatusForbidden, route, "forbidden")
			return
		}

		if !order.IsTerminal() {
			respondWithError(c, http.StatusConflict, route,
				fmt.Sprintf("order is %s; cancel it before deleting", order.DeliveryProcess))
			return
		}

		if _, err := db.Collection("orders").DeleteOne(ctx, bson.M{"order_ID": orderID}); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[ORDER] [INFO] order %s deleted by %s", orderID, actor.UserID)
		c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
	}
}
