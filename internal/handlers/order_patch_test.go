package handlers

import (
	"reflect"
	"strings"
	"testing"

	"gromart/internal/models"
)

func mustParsePatch(t *testing.T, body string) orderPatch {
	t.Helper()
	patch, err := parseOrderPatch([]byte(body))
	if err != nil {
		t.Fatalf("parseOrderPatch failed: %v", err)
	}
	return patch
}

func TestDeliveryPatchStatusOnlyIsAllowed(t *testing.T) {
	patch := mustParsePatch(t, `{"deliveryProcess":"Processing"}`)

	if bad := patch.disallowedFields("deliveryProcess"); len(bad) != 0 {
		t.Fatalf("expected no disallowed fields, got %v", bad)
	}
	if patch.DeliveryProcess == nil || *patch.DeliveryProcess != "Processing" {
		t.Fatalf("deliveryProcess not decoded: %+v", patch.DeliveryProcess)
	}
}

func TestDeliveryPatchRejectsOtherFields(t *testing.T) {
	patch := mustParsePatch(t, `{"deliveryProcess":"Processing","order_direction":"X"}`)

	bad := patch.disallowedFields("deliveryProcess")
	if !reflect.DeepEqual(bad, []string{"order_direction"}) {
		t.Fatalf("disallowedFields = %v, want [order_direction]", bad)
	}
}

func TestDisallowedFieldsAreSortedAndComplete(t *testing.T) {
	patch := mustParsePatch(t, `{"order_direction":"X","actual_grandTotal":10,"deliveryProcess":"Shipped"}`)

	bad := patch.disallowedFields("deliveryProcess")
	if !reflect.DeepEqual(bad, []string{"actual_grandTotal", "order_direction"}) {
		t.Fatalf("disallowedFields = %v", bad)
	}
}

func TestImmutableFieldsDetected(t *testing.T) {
	patch := mustParsePatch(t, `{"order_ID":"x","userID":"y","grandTotal":1,"deliveryProcess":"Shipped"}`)

	bad := patch.immutableFields()
	want := []string{"order_ID", "userID", "grandTotal"}
	if !reflect.DeepEqual(bad, want) {
		t.Fatalf("immutableFields = %v, want %v", bad, want)
	}
}

func TestParseOrderPatchDecodesItems(t *testing.T) {
	patch := mustParsePatch(t, `{"order_items":[{"prod_ID":"P0001","prod_Name":"Rice","image":"rice.jpg","selectedRate":{"key":"1kg","value":60},"order_quantity":2,"subtotal":120}]}`)

	if !patch.has("order_items") {
		t.Fatal("order_items should be present")
	}
	if len(patch.Items) != 1 || patch.Items[0].ProdID != "P0001" {
		t.Fatalf("items not decoded: %+v", patch.Items)
	}
}

func TestParseOrderPatchRejectsInvalidJSON(t *testing.T) {
	if _, err := parseOrderPatch([]byte(`{"deliveryProcess":`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if _, err := parseOrderPatch([]byte(`{"order_items":"not-a-list"}`)); err == nil {
		t.Fatal("expected error for mistyped order_items")
	}
}

func TestValidateOrderItems(t *testing.T) {
	valid := models.OrderItem{
		ProdID:        "P0001",
		ProdName:      "Rice",
		Image:         "rice.jpg",
		SelectedRate:  models.SelectedRate{Key: "1kg", Value: 60},
		OrderQuantity: 2,
	}

	if err := validateOrderItems([]models.OrderItem{valid}); err != nil {
		t.Fatalf("valid item rejected: %v", err)
	}
	if err := validateOrderItems(nil); err == nil {
		t.Fatal("empty item list must be rejected")
	}

	broken := valid
	broken.SelectedRate.Key = ""
	broken.Image = ""
	err := validateOrderItems([]models.OrderItem{valid, broken})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"order_items[1]", "image", "selectedRate.key"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err.Error(), want)
		}
	}
}

func TestIsAssignedTo(t *testing.T) {
	tests := []struct {
		nickName  string
		direction string
		want      bool
	}{
		{"North", "North", true},
		{"north", "NORTH", true},
		{" North ", "North", true},
		{"North", "South", false},
		{"", "North", false},
	}

	for _, tt := range tests {
		if got := isAssignedTo(tt.nickName, tt.direction); got != tt.want {
			t.Fatalf("isAssignedTo(%q, %q) = %v, want %v", tt.nickName, tt.direction, got, tt.want)
		}
	}
}

func TestTerminalNoOp(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		current string
		want    bool
	}{
		{"empty patch", `{}`, "Delivered", true},
		{"same status", `{"deliveryProcess":"Delivered"}`, "Delivered", true},
		{"new status", `{"deliveryProcess":"Cancelled"}`, "Delivered", false},
		{"items on finished order", `{"order_items":[]}`, "Delivered", false},
		{"same status plus items", `{"deliveryProcess":"Delivered","order_items":[]}`, "Delivered", false},
	}

	for _, tt := range tests {
		patch, err := parseOrderPatch([]byte(tt.body))
		if err != nil {
			t.Fatalf("%s: parse: %v", tt.name, err)
		}
		if got := patch.terminalNoOp(tt.current); got != tt.want {
			t.Fatalf("%s: terminalNoOp = %v, want %v", tt.name, got, tt.want)
		}
	}
}
