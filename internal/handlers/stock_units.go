package handlers

import (
	"strconv"
	"strings"
)

// unitBaseAmount parses a rate label like "500g", "1kg" or "1 piece" into the
// stock amount one ordered quantity consumes, expressed in the product's base
// unit. Grams and millilitres are divided by 1000; kilograms, litres, pieces
// and dozens use the magnitude as-is. A dozen is deliberately not multiplied
// by 12: the stock ledger counts dozens as single units.
//
// Returns false when no leading number is present or the unit suffix is not
// recognized; callers skip the stock adjustment for such items.
func unitBaseAmount(rateKey string) (float64, bool) {
	label := strings.ToLower(strings.TrimSpace(rateKey))

	magnitude, rest, ok := leadingNumber(label)
	if !ok {
		return 0, false
	}

	unit := strings.TrimSpace(rest)
	switch {
	case strings.HasPrefix(unit, "kg"):
		return magnitude, true
	case strings.HasPrefix(unit, "gm"), strings.HasPrefix(unit, "g"):
		return magnitude / 1000, true
	case strings.HasPrefix(unit, "ml"):
		return magnitude / 1000, true
	case strings.HasPrefix(unit, "ltr"), strings.HasPrefix(unit, "litre"), strings.HasPrefix(unit, "l"):
		return magnitude, true
	case strings.HasPrefix(unit, "piece"), strings.HasPrefix(unit, "pc"):
		return magnitude, true
	case strings.HasPrefix(unit, "dozen"), strings.HasPrefix(unit, "doz"):
		return magnitude, true
	default:
		return 0, false
	}
}

// stockDelta is the total stock movement for one line item.
func stockDelta(rateKey string, quantity float64) (float64, bool) {
	amount, ok := unitBaseAmount(rateKey)
	if !ok {
		return 0, false
	}
	return amount * quantity, true
}

// deductStock clamps at zero; restoration always adds the full amount back,
// which can overshoot after a clamped deduction.
func deductStock(stock, amount float64) float64 {
	next := stock - amount
	if next < 0 {
		return 0
	}
	return next
}

func leadingNumber(s string) (float64, string, bool) {
	end := 0
	dotSeen := false
	for end < len(s) {
		ch := s[end]
		if ch >= '0' && ch <= '9' {
			end++
			continue
		}
		if ch == '.' && !dotSeen {
			dotSeen = true
			end++
			continue
		}
		break
	}
	if end == 0 || (end == 1 && dotSeen) {
		return 0, s, false
	}

	value, err := strconv.ParseFloat(s[:end], 64)
	if err != nil {
		return 0, s, false
	}
	return value, s[end:], true
}
