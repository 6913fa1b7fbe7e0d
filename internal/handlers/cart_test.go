package handlers

import (
	"testing"

	"gromart/internal/models"
)

func TestRecomputeCartTotals(t *testing.T) {
	cart := models.Cart{
		UserID: "U0001",
		Items: []models.CartItem{
			{ProdID: "P0001", SelectedRate: models.SelectedRate{Key: "1kg", Value: 60}, Quantity: 2},
			{ProdID: "P0002", SelectedRate: models.SelectedRate{Key: "500g", Value: 25}, Quantity: 4},
		},
	}

	recomputeCart(&cart)

	if cart.Items[0].Subtotal != 120 || cart.Items[1].Subtotal != 100 {
		t.Fatalf("subtotals = %v/%v, want 120/100", cart.Items[0].Subtotal, cart.Items[1].Subtotal)
	}
	if cart.Total != 220 {
		t.Fatalf("total = %v, want 220", cart.Total)
	}
	if !almostEqual(cart.GST, 39.6) {
		t.Fatalf("gst = %v, want 39.6", cart.GST)
	}
	if cart.DeliveryCharge != 50 || cart.Discount != 50 {
		t.Fatalf("delivery/discount = %v/%v, want 50/50", cart.DeliveryCharge, cart.Discount)
	}
	if !almostEqual(cart.GrandTotal, 259.6) {
		t.Fatalf("grandTotal = %v, want 259.6", cart.GrandTotal)
	}
}

func TestRecomputeCartEmptyZeroesEverything(t *testing.T) {
	cart := models.Cart{
		UserID:     "U0001",
		Total:      220,
		GST:        39.6,
		GrandTotal: 259.6,
	}

	recomputeCart(&cart)

	if cart.Items == nil {
		t.Fatal("items must be an empty slice, not nil")
	}
	if cart.Total != 0 || cart.GST != 0 || cart.DeliveryCharge != 0 || cart.Discount != 0 || cart.GrandTotal != 0 {
		t.Fatalf("expected zeroed totals, got %+v", cart)
	}
}

func TestRecomputeCartMatchesOrderFormula(t *testing.T) {
	cart := models.Cart{
		Items: []models.CartItem{
			{SelectedRate: models.SelectedRate{Value: 10}, Quantity: 5},
		},
	}
	recomputeCart(&cart)

	totals := computeTotals(50)
	if cart.GrandTotal != totals.GrandTotal || cart.GST != totals.GST {
		t.Fatalf("cart totals %+v diverge from order totals %+v", cart, totals)
	}
}
