package handlers

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"gromart/internal/config"
	"gromart/internal/middleware"
	"gromart/internal/models"
)

// Fields a delivery centre may patch on an assigned order.
var deliveryPatchFields = []string{"deliveryProcess", "order_items", "actual_grandTotal"}

// UpdateOrderByDelivery handles PUT /delivery/updateorder/:order_ID. The body
// is the patch itself (no orderdetails envelope). When the patched items carry
// delivered quantities, actual_grandTotal is recomputed server-side from the
// actual subtotals plus the order's existing gst, delivery charge and
// discount.
//
// With StrictAssignmentCheck off, a nickname mismatch against the order's
// direction is logged and the update proceeds, reproducing the legacy
// behaviour.
func UpdateOrderByDelivery(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /delivery/updateorder"
		defer handlePanic(c, route)

		actor, ok := middleware.ActorFrom(c)
		if !ok {
			respondWithError(c, http.StatusUnauthorized, route, "unauthorized")
			return
		}
		if actor.Role != middleware.RoleDelivery {
			respondWithError(c, http.StatusForbidden, route, "delivery accounts only")
			return
		}

		orderID := strings.TrimSpace(c.Param("order_ID"))
		if orderID == "" {
			respondWithError(c, http.StatusBadRequest, route, "order_ID is required")
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid body")
			return
		}
		patch, err := parseOrderPatch(body)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		if bad := patch.disallowedFields(deliveryPatchFields...); len(bad) > 0 {
			respondWithError(c, http.StatusBadRequest, route,
				fmt.Sprintf("fields not allowed for delivery updates: %s", strings.Join(bad, ", ")))
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
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

		if order.IsTerminal() && !patch.terminalNoOp(order.DeliveryProcess) {
			respondWithError(c, http.StatusConflict, route,
				fmt.Sprintf("order is already %s", order.DeliveryProcess))
			return
		}

		if !isAssignedTo(actor.NickName, order.Direction) {
			if cfg.StrictAssignmentCheck {
				respondWithError(c, http.StatusForbidden, route,
					fmt.Sprintf("order %s is not assigned to %s", order.OrderID, actor.NickName))
				return
			}
			log.Printf("[ORDER] [WARN] delivery %s updating order %s assigned to %q",
				actor.NickName, order.OrderID, order.Direction)
		}

		set := bson.M{}

		if patch.has("order_items") {
			if err := validateOrderItems(patch.Items); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			set["order_items"] = patch.Items

			if actual, ok := actualGrandTotal(patch.Items, order.GST, order.DeliveryCharge, order.Discount); ok {
				set["actual_grandTotal"] = actual
			}
		}

		if patch.ActualGrandTotal != nil {
			// Server-side recomputation from delivered quantities wins over
			// the client-supplied figure.
			if _, computed := set["actual_grandTotal"]; !computed {
				set["actual_grandTotal"] = *patch.ActualGrandTotal
			}
		}

		cancelling := false
		if patch.DeliveryProcess != nil {
			next := strings.TrimSpace(*patch.DeliveryProcess)
			set["deliveryProcess"] = next
			cancelling = next == models.StatusCancelled && order.DeliveryProcess != models.StatusCancelled
		}

		if len(set) == 0 {
			c.JSON(http.StatusOK, gin.H{"message": "order updated", "order": order})
			return
		}

		updated, err := applyOrderUpdate(ctx, db, order, set, cancelling)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[ORDER] [INFO] order %s updated by delivery %s", order.OrderID, actor.UserID)
		c.JSON(http.StatusOK, gin.H{"message": "order updated", "order": updated})
	}
}
