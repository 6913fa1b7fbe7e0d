package handlers

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gromart/internal/models"
)

// orderPatch is a partial order update. The raw field set is kept so
// role-scoped validation can name every offending field instead of silently
// dropping it.
type orderPatch struct {
	present map[string]json.RawMessage

	DeliveryProcess  *string
	Items            []models.OrderItem
	SelectedAddress  *models.OrderAddress
	ActualGrandTotal *float64
	DeliveryDay      *string
	DeliveryTime     *string
	Direction        *string
}

// Fields the server owns; a patch naming any of them is rejected. Financial
// fields are recomputed rather than patched.
var immutableOrderFields = []string{
	"order_ID", "userID", "currentDate", "currentTime",
	"total", "gst", "deliveryCharge", "discount", "grandTotal",
}

func parseOrderPatch(data []byte) (orderPatch, error) {
	patch := orderPatch{present: map[string]json.RawMessage{}}
	if err := json.Unmarshal(data, &patch.present); err != nil {
		return orderPatch{}, fmt.Errorf("invalid patch body: %w", err)
	}

	decode := func(key string, dst interface{}) error {
		raw, ok := patch.present[key]
		if !ok {
			return nil
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return fmt.Errorf("invalid value for %s", key)
		}
		return nil
	}

	if err := decode("deliveryProcess", &patch.DeliveryProcess); err != nil {
		return orderPatch{}, err
	}
	if err := decode("order_items", &patch.Items); err != nil {
		return orderPatch{}, err
	}
	if err := decode("order_selectedAddress", &patch.SelectedAddress); err != nil {
		return orderPatch{}, err
	}
	if err := decode("actual_grandTotal", &patch.ActualGrandTotal); err != nil {
		return orderPatch{}, err
	}
	if err := decode("order_deliveryDay", &patch.DeliveryDay); err != nil {
		return orderPatch{}, err
	}
	if err := decode("order_deliveryTime", &patch.DeliveryTime); err != nil {
		return orderPatch{}, err
	}
	if err := decode("order_direction", &patch.Direction); err != nil {
		return orderPatch{}, err
	}
	return patch, nil
}

func (p orderPatch) has(field string) bool {
	_, ok := p.present[field]
	return ok
}

func (p orderPatch) fieldNames() []string {
	names := make([]string, 0, len(p.present))
	for name := range p.present {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// disallowedFields returns, sorted, every patched field outside the allowed
// set.
func (p orderPatch) disallowedFields(allowed ...string) []string {
	allowedSet := make(map[string]bool, len(allowed))
	for _, name := range allowed {
		allowedSet[name] = true
	}

	var bad []string
	for _, name := range p.fieldNames() {
		if !allowedSet[name] {
			bad = append(bad, name)
		}
	}
	return bad
}

// terminalNoOp reports whether the patch leaves a finished order untouched.
// Only a deliveryProcess restating the current status qualifies.
func (p orderPatch) terminalNoOp(current string) bool {
	for _, name := range p.fieldNames() {
		if name != "deliveryProcess" {
			return false
		}
	}
	if p.DeliveryProcess != nil && strings.TrimSpace(*p.DeliveryProcess) != current {
		return false
	}
	return true
}

func (p orderPatch) immutableFields() []string {
	var bad []string
	for _, name := range immutableOrderFields {
		if p.has(name) {
			bad = append(bad, name)
		}
	}
	return bad
}

// validateOrderItems enforces the item shape required at create and on any
// update that replaces order_items.
func validateOrderItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("order_items must not be empty")
	}
	for i, item := range items {
		var missing []string
		if strings.TrimSpace(item.ProdID) == "" {
			missing = append(missing, "prod_ID")
		}
		if strings.TrimSpace(item.ProdName) == "" {
			missing = append(missing, "prod_Name")
		}
		if strings.TrimSpace(item.Image) == "" {
			missing = append(missing, "image")
		}
		if strings.TrimSpace(item.SelectedRate.Key) == "" {
			missing = append(missing, "selectedRate.key")
		}
		if item.SelectedRate.Value <= 0 {
			missing = append(missing, "selectedRate.value")
		}
		if item.OrderQuantity <= 0 {
			missing = append(missing, "order_quantity")
		}
		if len(missing) > 0 {
			return fmt.Errorf("order_items[%d]: missing or invalid %s", i, strings.Join(missing, ", "))
		}
	}
	return nil
}

// isAssignedTo reports whether a delivery nickname matches the order's
// direction, case-insensitively.
func isAssignedTo(nickName, direction string) bool {
	return strings.TrimSpace(nickName) != "" &&
		strings.EqualFold(strings.TrimSpace(nickName), strings.TrimSpace(direction))
}
