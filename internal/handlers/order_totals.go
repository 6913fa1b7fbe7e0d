package handlers

import "gromart/internal/models"

// Financial constants shared by cart and order totals.
const (
	gstRate            = 0.18
	deliveryChargeFlat = 50.0
	discountFlat       = 50.0
)

type orderTotals struct {
	Total          float64
	GST            float64
	DeliveryCharge float64
	Discount       float64
	GrandTotal     float64
}

// computeTotals derives every financial field from the item sum. Client
// supplied totals are never trusted.
func computeTotals(itemSum float64) orderTotals {
	total := itemSum
	gst := total * gstRate
	return orderTotals{
		Total:          total,
		GST:            gst,
		DeliveryCharge: deliveryChargeFlat,
		Discount:       discountFlat,
		GrandTotal:     total + gst + deliveryChargeFlat - discountFlat,
	}
}

// itemSubtotal prefers the stored subtotal and falls back to quantity times
// the selected rate when it is absent.
func itemSubtotal(item models.OrderItem) float64 {
	if item.Subtotal > 0 {
		return item.Subtotal
	}
	return item.OrderQuantity * item.SelectedRate.Value
}

// orderItemsTotals recomputes per-item subtotals from quantity and rate, then
// the order-level totals.
func orderItemsTotals(items []models.OrderItem) ([]models.OrderItem, orderTotals) {
	sum := 0.0
	out := make([]models.OrderItem, len(items))
	for i, item := range items {
		item.Subtotal = item.OrderQuantity * item.SelectedRate.Value
		out[i] = item
		sum += item.Subtotal
	}
	return out, computeTotals(sum)
}

// actualGrandTotal recomputes the delivery-confirmed grand total: each item
// contributes its actual_subtotal when positive, otherwise the ordered
// subtotal. The order's existing gst, delivery charge and discount are reused
// as-is rather than recomputed from actual quantities.
func actualGrandTotal(items []models.OrderItem, gst, deliveryCharge, discount float64) (float64, bool) {
	anyActual := false
	sum := 0.0
	for _, item := range items {
		if item.ActualQuantity > 0 {
			anyActual = true
		}
		if item.ActualSubtotal > 0 {
			sum += item.ActualSubtotal
		} else {
			sum += itemSubtotal(item)
		}
	}
	if !anyActual {
		return 0, false
	}
	return sum + gst + deliveryCharge - discount, true
}

func applyTotals(o *models.Order, t orderTotals) {
	o.Total = t.Total
	o.GST = t.GST
	o.DeliveryCharge = t.DeliveryCharge
	o.Discount = t.Discount
	o.GrandTotal = t.GrandTotal
}
