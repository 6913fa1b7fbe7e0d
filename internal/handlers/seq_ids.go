package handlers

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nextSequence increments and returns the named counter atomically. Entity ID
// generation (prod_ID, centre_ID, user_id) goes through here instead of
// scanning for the current maximum, which loses increments under concurrent
// writers.
func nextSequence(ctx context.Context, db *mongo.Database, name string) (int, error) {
	res := db.Collection("counters").FindOneAndUpdate(
		ctx,
		bson.M{"_id": name},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	)

	var doc struct {
		Seq int `bson:"seq"`
	}
	if err := res.Decode(&doc); err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func nextUserID(ctx context.Context, db *mongo.Database) (string, error) {
	seq, err := nextSequence(ctx, db, "users")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("U%04d", seq), nil
}

func nextProductID(ctx context.Context, db *mongo.Database) (string, error) {
	seq, err := nextSequence(ctx, db, "products")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("P%04d", seq), nil
}

func nextCentreID(ctx context.Context, db *mongo.Database) (string, error) {
	seq, err := nextSequence(ctx, db, "deliverycentres")
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DC%02d", seq), nil
}
