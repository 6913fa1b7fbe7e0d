package handlers

import (
	"math"
	"testing"

	"gromart/internal/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeTotalsFormula(t *testing.T) {
	totals := computeTotals(200)

	if totals.Total != 200 {
		t.Fatalf("total = %v, want 200", totals.Total)
	}
	if !almostEqual(totals.GST, 36) {
		t.Fatalf("gst = %v, want 36", totals.GST)
	}
	if totals.DeliveryCharge != 50 || totals.Discount != 50 {
		t.Fatalf("deliveryCharge/discount = %v/%v, want 50/50", totals.DeliveryCharge, totals.Discount)
	}
	if !almostEqual(totals.GrandTotal, 236) {
		t.Fatalf("grandTotal = %v, want 236", totals.GrandTotal)
	}
}

func TestComputeTotalsInvariant(t *testing.T) {
	for _, sum := range []float64{0, 1, 99.5, 1234.56} {
		totals := computeTotals(sum)
		want := totals.Total + totals.GST + totals.DeliveryCharge - totals.Discount
		if !almostEqual(totals.GrandTotal, want) {
			t.Fatalf("sum %v: grandTotal %v != total+gst+delivery-discount %v", sum, totals.GrandTotal, want)
		}
		if !almostEqual(totals.GST, totals.Total*0.18) {
			t.Fatalf("sum %v: gst %v != total*0.18", sum, totals.GST)
		}
	}
}

func TestOrderItemsTotalsRecomputesSubtotals(t *testing.T) {
	items := []models.OrderItem{
		{
			ProdID:        "P0001",
			SelectedRate:  models.SelectedRate{Key: "1kg", Value: 60},
			OrderQuantity: 2,
			Subtotal:      999, // client lies; must be overridden
		},
		{
			ProdID:        "P0002",
			SelectedRate:  models.SelectedRate{Key: "500g", Value: 25},
			OrderQuantity: 4,
		},
	}

	recomputed, totals := orderItemsTotals(items)

	if recomputed[0].Subtotal != 120 {
		t.Fatalf("item 0 subtotal = %v, want 120", recomputed[0].Subtotal)
	}
	if recomputed[1].Subtotal != 100 {
		t.Fatalf("item 1 subtotal = %v, want 100", recomputed[1].Subtotal)
	}
	if totals.Total != 220 {
		t.Fatalf("total = %v, want 220", totals.Total)
	}
}

func TestOrderItemsTotalsIdempotent(t *testing.T) {
	items := []models.OrderItem{
		{SelectedRate: models.SelectedRate{Key: "1kg", Value: 40}, OrderQuantity: 3},
	}

	first, firstTotals := orderItemsTotals(items)
	second, secondTotals := orderItemsTotals(first)

	if first[0].Subtotal != second[0].Subtotal {
		t.Fatalf("subtotal changed on recompute: %v vs %v", first[0].Subtotal, second[0].Subtotal)
	}
	if firstTotals != secondTotals {
		t.Fatalf("totals changed on recompute: %+v vs %+v", firstTotals, secondTotals)
	}
}

func TestActualGrandTotalFallsBackToOrderedSubtotal(t *testing.T) {
	items := []models.OrderItem{
		{Subtotal: 100, ActualQuantity: 2, ActualSubtotal: 80},
		{Subtotal: 50}, // not reweighed, ordered subtotal counts
	}

	got, ok := actualGrandTotal(items, 27, 50, 50)
	if !ok {
		t.Fatal("expected actual grand total to be computed")
	}
	// 80 + 50 + gst 27 + delivery 50 - discount 50
	if !almostEqual(got, 157) {
		t.Fatalf("actualGrandTotal = %v, want 157", got)
	}
}

func TestActualGrandTotalRequiresActualQuantity(t *testing.T) {
	items := []models.OrderItem{
		{Subtotal: 100},
		{Subtotal: 50},
	}

	if _, ok := actualGrandTotal(items, 27, 50, 50); ok {
		t.Fatal("expected no actual grand total without delivered quantities")
	}
}

func TestApplyTotals(t *testing.T) {
	var order models.Order
	applyTotals(&order, computeTotals(100))

	if order.Total != 100 || !almostEqual(order.GST, 18) || !almostEqual(order.GrandTotal, 118) {
		t.Fatalf("unexpected order totals: %+v", order)
	}
}
