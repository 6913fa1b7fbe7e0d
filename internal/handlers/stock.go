package handlers

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"gromart/internal/config"
	"gromart/internal/models"
)

// stockWarning records a line item whose stock adjustment was skipped under
// the best-effort policy. Warnings are returned to the caller alongside the
// successful result.
type stockWarning struct {
	ProdID string `json:"prod_ID"`
	Reason string `json:"reason"`
}

type stockAdjustError struct {
	ProdID string
	Reason string
}

func (e stockAdjustError) Error() string {
	return fmt.Sprintf("stock adjustment failed for %s: %s", e.ProdID, e.Reason)
}

// deductOrderStock removes the unit-converted amount of every line item from
// product stock, clamping at zero. Missing products and unrecognized units
// are skipped with a warning under the best-effort policy, or abort the
// enclosing transaction under the strict policy.
func deductOrderStock(ctx context.Context, db *mongo.Database, items []models.OrderItem, policy string) ([]stockWarning, error) {
	var warnings []stockWarning

	for _, item := range items {
		amount, ok := stockDelta(item.SelectedRate.Key, item.OrderQuantity)
		if !ok {
			if policy == config.StockPolicyStrict {
				return nil, stockAdjustError{ProdID: item.ProdID, Reason: "unrecognized unit " + item.SelectedRate.Key}
			}
			log.Printf("[STOCK] [WARN] unrecognized unit %q for %s, skipping deduction", item.SelectedRate.Key, item.ProdID)
			warnings = append(warnings, stockWarning{ProdID: item.ProdID, Reason: "unrecognized unit " + item.SelectedRate.Key})
			continue
		}

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{"prod_ID": item.ProdID}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			if policy == config.StockPolicyStrict {
				return nil, stockAdjustError{ProdID: item.ProdID, Reason: "product not found"}
			}
			log.Printf("[STOCK] [WARN] product %s not found, skipping deduction", item.ProdID)
			warnings = append(warnings, stockWarning{ProdID: item.ProdID, Reason: "product not found"})
			continue
		}
		if err != nil {
			return nil, err
		}

		next := deductStock(product.Stock, amount)
		if next == 0 && product.Stock < amount {
			log.Printf("[STOCK] [WARN] product %s stock clamped to zero (had %.3f, deducting %.3f)", item.ProdID, product.Stock, amount)
		}

		_, err = db.Collection("products").UpdateOne(
			ctx,
			bson.M{"prod_ID": item.ProdID},
			bson.M{"$set": bson.M{"prod_Stock": next}},
		)
		if err != nil {
			return nil, err
		}
	}

	return warnings, nil
}

// restoreOrderStock adds back the unit-converted amount of every line item.
// Restoration is always best-effort and never clamps, so a deduction that was
// clamped at zero will overshoot its pre-order value when restored.
func restoreOrderStock(ctx context.Context, db *mongo.Database, items []models.OrderItem) []stockWarning {
	var warnings []stockWarning

	for _, item := range items {
		amount, ok := stockDelta(item.SelectedRate.Key, item.OrderQuantity)
		if !ok {
			log.Printf("[STOCK] [WARN] unrecognized unit %q for %s, skipping restore", item.SelectedRate.Key, item.ProdID)
			warnings = append(warnings, stockWarning{ProdID: item.ProdID, Reason: "unrecognized unit " + item.SelectedRate.Key})
			continue
		}

		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"prod_ID": item.ProdID},
			bson.M{"$inc": bson.M{"prod_Stock": amount}},
		)
		if err != nil {
			log.Printf("[STOCK] [ERROR] restore failed for %s: %v", item.ProdID, err)
			warnings = append(warnings, stockWarning{ProdID: item.ProdID, Reason: "restore failed"})
			continue
		}
		if res.MatchedCount == 0 {
			log.Printf("[STOCK] [WARN] product %s not found, skipping restore", item.ProdID)
			warnings = append(warnings, stockWarning{ProdID: item.ProdID, Reason: "product not found"})
		}
	}

	return warnings
}
