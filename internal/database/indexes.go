package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureOrderIndexes creates the unique order_ID index the collision-retry
// loop in order creation relies on, plus the userID lookup index.
func EnsureOrderIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("orders").Indexes()

	orderIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "order_ID", Value: 1}},
		Options: options.Index().
			SetName("order_ID_unique").
			SetUnique(true),
	}
	userIDIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userID", Value: 1}},
		Options: options.Index().SetName("userID_index"),
	}

	log.Println("EnsureOrderIndexes: creating order indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{orderIDIndex, userIDIndex})
	if err != nil {
		log.Println("EnsureOrderIndexes: index error:", err)
		return err
	}
	return nil
}

// EnsureProductIndexes enforces prod_ID uniqueness.
func EnsureProductIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("products").Indexes()

	prodIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "prod_ID", Value: 1}},
		Options: options.Index().
			SetName("prod_ID_unique").
			SetUnique(true),
	}

	log.Println("EnsureProductIndexes: creating prod_ID_unique index")
	_, err := indexes.CreateOne(ctx, prodIDIndex)
	if err != nil {
		log.Println("EnsureProductIndexes: prod_ID index error:", err)
		return err
	}
	return nil
}

// EnsureCartIndexes enforces one cart per customer.
func EnsureCartIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("carts").Indexes()

	userIDIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
		Options: options.Index().
			SetName("user_id_unique").
			SetUnique(true),
	}

	log.Println("EnsureCartIndexes: creating user_id_unique index")
	_, err := indexes.CreateOne(ctx, userIDIndex)
	if err != nil {
		log.Println("EnsureCartIndexes: user_id index error:", err)
		return err
	}
	return nil
}

// EnsureUserIndexes enforces unique emails for customers and delivery
// centres, and unique delivery nicknames.
func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emailIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetName("email_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating email_unique index")
	if _, err := db.Collection("users").Indexes().CreateOne(ctx, emailIndex); err != nil {
		log.Println("EnsureUserIndexes: users email index error:", err)
		return err
	}

	centreIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetName("email_unique").
				SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "nickName", Value: 1}},
			Options: options.Index().
				SetName("nickName_unique").
				SetUnique(true).
				SetCollation(&options.Collation{Locale: "en", Strength: 2}),
		},
	}

	log.Println("EnsureUserIndexes: creating delivery centre indexes")
	if _, err := db.Collection("deliverycentres").Indexes().CreateMany(ctx, centreIndexes); err != nil {
		log.Println("EnsureUserIndexes: deliverycentres index error:", err)
		return err
	}
	return nil
}
