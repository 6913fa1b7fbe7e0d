package handlers

import "testing"

func TestUnitBaseAmountKnownUnits(t *testing.T) {
	tests := []struct {
		rateKey string
		want    float64
	}{
		{"1kg", 1},
		{"2kg", 2},
		{"1.5kg", 1.5},
		{"500g", 0.5},
		{"250gm", 0.25},
		{"1l", 1},
		{"1ltr", 1},
		{"2 litre", 2},
		{"500ml", 0.5},
		{"1 piece", 1},
		{"2pc", 2},
		{"1 dozen", 1},
		{"1KG", 1},
		{" 500G ", 0.5},
	}

	for _, tt := range tests {
		got, ok := unitBaseAmount(tt.rateKey)
		if !ok {
			t.Fatalf("unitBaseAmount(%q) not recognized", tt.rateKey)
		}
		if got != tt.want {
			t.Fatalf("unitBaseAmount(%q) = %v, want %v", tt.rateKey, got, tt.want)
		}
	}
}

func TestUnitBaseAmountDozenIsNotTwelve(t *testing.T) {
	// A dozen counts as one stock unit, not twelve.
	got, ok := unitBaseAmount("2 dozen")
	if !ok || got != 2 {
		t.Fatalf("unitBaseAmount(2 dozen) = %v ok=%v, want 2", got, ok)
	}
}

func TestUnitBaseAmountUnrecognized(t *testing.T) {
	for _, rateKey := range []string{"", "kg", "piece", "1 packet", "one kg", "."} {
		if _, ok := unitBaseAmount(rateKey); ok {
			t.Fatalf("unitBaseAmount(%q) unexpectedly recognized", rateKey)
		}
	}
}

func TestStockDeltaWholeKilograms(t *testing.T) {
	// 3 x 1kg against a stock of 10 leaves 7.
	delta, ok := stockDelta("1kg", 3)
	if !ok || delta != 3 {
		t.Fatalf("stockDelta(1kg, 3) = %v ok=%v, want 3", delta, ok)
	}
	if got := deductStock(10, delta); got != 7 {
		t.Fatalf("deductStock(10, %v) = %v, want 7", delta, got)
	}
}

func TestStockDeltaGramConversion(t *testing.T) {
	// 4 x 500g deducts 2 from a stock of 10.
	delta, ok := stockDelta("500g", 4)
	if !ok || delta != 2 {
		t.Fatalf("stockDelta(500g, 4) = %v ok=%v, want 2", delta, ok)
	}
	if got := deductStock(10, delta); got != 8 {
		t.Fatalf("deductStock(10, %v) = %v, want 8", delta, got)
	}
}

func TestDeductStockClampsAtZero(t *testing.T) {
	if got := deductStock(1, 3); got != 0 {
		t.Fatalf("deductStock(1, 3) = %v, want 0", got)
	}
	if got := deductStock(2, 2); got != 0 {
		t.Fatalf("deductStock(2, 2) = %v, want 0", got)
	}
}

func TestDeductThenRestoreRoundTrip(t *testing.T) {
	rateKeys := []string{"1kg", "500g", "1l", "250ml", "1 piece", "1 dozen"}

	for _, rateKey := range rateKeys {
		start := 10.0
		delta, ok := stockDelta(rateKey, 3)
		if !ok {
			t.Fatalf("stockDelta(%q) not recognized", rateKey)
		}
		after := deductStock(start, delta)
		restored := after + delta
		if restored != start {
			t.Fatalf("round trip for %q: start %v, restored %v", rateKey, start, restored)
		}
	}
}

func TestRestoreOvershootsAfterClamp(t *testing.T) {
	// Deduction clamps at zero but restoration adds the full amount back, so
	// a clamped deduction overshoots the pre-order stock.
	start := 1.0
	delta := 3.0
	after := deductStock(start, delta)
	if after != 0 {
		t.Fatalf("deductStock(%v, %v) = %v, want 0", start, delta, after)
	}
	restored := after + delta
	if restored <= start {
		t.Fatalf("expected overshoot, got restored=%v start=%v", restored, start)
	}
	if restored < 0 {
		t.Fatalf("restoration must never leave stock negative, got %v", restored)
	}
}

func TestLeadingNumber(t *testing.T) {
	value, rest, ok := leadingNumber("1.5kg")
	if !ok || value != 1.5 || rest != "kg" {
		t.Fatalf("leadingNumber(1.5kg) = %v %q %v", value, rest, ok)
	}
	if _, _, ok := leadingNumber("kg"); ok {
		t.Fatal("leadingNumber(kg) unexpectedly ok")
	}
}
