package handlers

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Order IDs look like 20250901 02 O 017: order date, two-digit delivery
// centre sequence, a literal O, three-digit daily sequence.
const maxOrderIDAttempts = 100

type idExhaustedError struct{}

func (idExhaustedError) Error() string {
	return "order id generation exhausted retries"
}

// centreSequence extracts the 2-digit sequence from a delivery centre ID such
// as "DC07". Falls back to "01" when the centre is unknown or carries no
// trailing digits.
func centreSequence(centreID string) string {
	digits := trailingDigits(centreID)
	if digits == "" {
		return "01"
	}
	if len(digits) > 2 {
		digits = digits[len(digits)-2:]
	}
	if len(digits) == 1 {
		digits = "0" + digits
	}
	return digits
}

// nextDailySequence derives the next sequence number from the highest
// existing order ID's trailing 3 digits. Starts at 1 when there is no prior
// order or the ID does not end in digits.
func nextDailySequence(lastOrderID string) int {
	digits := trailingDigits(lastOrderID)
	if digits == "" {
		return 1
	}
	if len(digits) > 3 {
		digits = digits[len(digits)-3:]
	}
	n := 0
	for i := 0; i < len(digits); i++ {
		n = n*10 + int(digits[i]-'0')
	}
	return n + 1
}

func formatOrderID(day time.Time, centreSeq string, seq int) string {
	return fmt.Sprintf("%s%sO%03d", day.Format("20060102"), centreSeq, seq)
}

func trailingDigits(s string) string {
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	return s[start:end]
}

// generateOrderID builds a candidate order ID and re-checks it for collisions,
// bumping the sequence up to maxOrderIDAttempts times. Run inside the order
// transaction; the unique order_ID index backstops the re-check.
func generateOrderID(ctx context.Context, db *mongo.Database, direction string, now time.Time) (string, error) {
	centreSeq := "01"
	var centre struct {
		CentreID string `bson:"centre_ID"`
	}
	err := db.Collection("deliverycentres").FindOne(
		ctx,
		bson.M{"nickName": bson.M{"$regex": "^" + regexp.QuoteMeta(direction) + "$", "$options": "i"}},
	).Decode(&centre)
	if err == nil {
		centreSeq = centreSequence(centre.CentreID)
	} else if err == mongo.ErrNoDocuments {
		log.Printf("[ORDER] [WARN] no delivery centre for direction %q, using centre seq 01", direction)
	} else {
		return "", err
	}

	var last struct {
		OrderID string `bson:"order_ID"`
	}
	seq := 1
	err = db.Collection("orders").FindOne(
		ctx,
		bson.M{},
		options.FindOne().SetSort(bson.D{{Key: "order_ID", Value: -1}}),
	).Decode(&last)
	if err == nil {
		seq = nextDailySequence(last.OrderID)
	} else if err != mongo.ErrNoDocuments {
		return "", err
	}

	for attempt := 0; attempt < maxOrderIDAttempts; attempt++ {
		candidate := formatOrderID(now, centreSeq, seq)
		count, err := db.Collection("orders").CountDocuments(ctx, bson.M{"order_ID": candidate})
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		seq++
	}
	return "", idExhaustedError{}
}
