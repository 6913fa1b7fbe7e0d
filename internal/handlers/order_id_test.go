package handlers

import (
	"regexp"
	"testing"
	"time"
)

func TestFormatOrderIDPattern(t *testing.T) {
	day := time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)
	id := formatOrderID(day, "02", 17)

	if id != "2025090102O017" {
		t.Fatalf("formatOrderID = %q, want 2025090102O017", id)
	}

	pattern := regexp.MustCompile(`^\d{8}\d{2}O\d{3}$`)
	if !pattern.MatchString(id) {
		t.Fatalf("order id %q does not match the expected pattern", id)
	}
}

func TestCentreSequence(t *testing.T) {
	tests := []struct {
		centreID string
		want     string
	}{
		{"DC07", "07"},
		{"DC12", "12"},
		{"DC3", "03"},
		{"DC123", "23"},
		{"", "01"},
		{"DC", "01"},
		{"nodigits", "01"},
	}

	for _, tt := range tests {
		if got := centreSequence(tt.centreID); got != tt.want {
			t.Fatalf("centreSequence(%q) = %q, want %q", tt.centreID, got, tt.want)
		}
	}
}

func TestNextDailySequence(t *testing.T) {
	tests := []struct {
		lastOrderID string
		want        int
	}{
		{"", 1},
		{"2025090102O001", 2},
		{"2025090102O017", 18},
		{"2025090102O999", 1000},
		{"no-digits-O", 1},
	}

	for _, tt := range tests {
		if got := nextDailySequence(tt.lastOrderID); got != tt.want {
			t.Fatalf("nextDailySequence(%q) = %d, want %d", tt.lastOrderID, got, tt.want)
		}
	}
}

func TestFormatOrderIDSortsByDayAndSequence(t *testing.T) {
	day := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	earlier := formatOrderID(day, "01", 5)
	later := formatOrderID(day, "01", 6)
	nextDay := formatOrderID(day.AddDate(0, 0, 1), "01", 1)

	if !(earlier < later) {
		t.Fatalf("expected %q < %q", earlier, later)
	}
	if !(later < nextDay) {
		t.Fatalf("expected %q < %q", later, nextDay)
	}
}

func TestIDExhaustedErrorMessage(t *testing.T) {
	err := idExhaustedError{}
	if err.Error() == "" {
		t.Fatal("expected a non-empty error message")
	}
}
