package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gromart/internal/config"
	"gromart/internal/middleware"
	"gromart/internal/models"
)

// Fields the owning customer may patch. Everything else is either immutable
// or derived.
var customerPatchFields = []string{
	"deliveryProcess", "order_items", "order_selectedAddress",
	"order_deliveryDay", "order_deliveryTime", "order_direction",
}

// UpdateOrder handles PUT /updateorder/:order_ID. The owning customer may
// patch items, address, schedule and status; a delivery actor assigned to the
// order's direction may only patch deliveryProcess. A transition into
// Cancelled restores the deducted stock.
func UpdateOrder(db *mongo.Database, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /updateorder"
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

		var envelope orderEnvelope
		if err := c.ShouldBindJSON(&envelope); err != nil {
			respondValidationError(c, err)
			return
		}
		patch, err := parseOrderPatch(envelope.OrderDetails.Order)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
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

		isOwner := actor.Role == middleware.RoleCustomer && order.UserID == actor.UserID
		isAssigned := actor.Role == middleware.RoleDelivery && isAssignedTo(actor.NickName, order.Direction)
		if !isOwner && !isAssigned {
			respondWithError(c, http.StatusForbidden, route, "forbidden")
			return
		}

		if order.IsTerminal() && !patch.terminalNoOp(order.DeliveryProcess) {
			respondWithError(c, http.StatusConflict, route,
				fmt.Sprintf("order is already %s", order.DeliveryProcess))
			return
		}

		if bad := patch.immutableFields(); len(bad) > 0 {
			respondWithError(c, http.StatusBadRequest, route,
				fmt.Sprintf("fields cannot be updated: %s", strings.Join(bad, ", ")))
			return
		}

		allowed := customerPatchFields
		if isAssigned && !isOwner {
			allowed = []string{"deliveryProcess"}
		}
		if bad := patch.disallowedFields(allowed...); len(bad) > 0 {
			respondWithError(c, http.StatusBadRequest, route,
				fmt.Sprintf("fields not allowed for this actor: %s", strings.Join(bad, ", ")))
			return
		}

		set := bson.M{}

		if patch.has("order_items") {
			if err := validateOrderItems(patch.Items); err != nil {
				respondWithError(c, http.StatusBadRequest, route, err.Error())
				return
			}
			items, totals := orderItemsTotals(patch.Items)
			set["order_items"] = items
			set["total"] = totals.Total
			set["gst"] = totals.GST
			set["deliveryCharge"] = totals.DeliveryCharge
			set["discount"] = totals.Discount
			set["grandTotal"] = totals.GrandTotal
		}

		if patch.has("order_selectedAddress") {
			addr := patch.SelectedAddress
			if addr == nil || strings.TrimSpace(addr.ID) == "" || strings.TrimSpace(addr.UserID) == "" {
				respondWithError(c, http.StatusBadRequest, route, "order_selectedAddress requires id and userID")
				return
			}
			if addr.UserID != actor.UserID {
				respondWithError(c, http.StatusForbidden, route, "address does not belong to this user")
				return
			}
			set["order_selectedAddress"] = addr
		}

		if patch.DeliveryDay != nil {
			set["order_deliveryDay"] = *patch.DeliveryDay
		}
		if patch.DeliveryTime != nil {
			set["order_deliveryTime"] = *patch.DeliveryTime
		}
		if patch.Direction != nil {
			set["order_direction"] = *patch.Direction
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

		c.JSON(http.StatusOK, gin.H{"message": "order updated", "order": updated})
	}
}

// applyOrderUpdate persists the patch and, when the order is being cancelled,
// restores stock for the original items in the same transaction.
func applyOrderUpdate(ctx context.Context, db *mongo.Database, order models.Order, set bson.M, cancelling bool) (models.Order, error) {
	session, err := db.Client().StartSession()
	if err != nil {
		return models.Order{}, err
	}
	defer session.EndSession(ctx)

	var updated models.Order
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if cancelling {
			restoreOrderStock(sessCtx, db, order.Items)
		}

		res := db.Collection("orders").FindOneAndUpdate(
			sessCtx,
			bson.M{"order_ID": order.OrderID},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)
		return nil, res.Decode(&updated)
	})
	if err != nil {
		return models.Order{}, err
	}
	return updated, nil
}
