package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gromart/internal/middleware"
	"gromart/internal/models"
)

/* =========================
   WISHLIST
========================= */

// GetWishlist handles GET /wishlist.
func GetWishlist(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("wishlists").Find(ctx, bson.M{"user_id": actor.UserID}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		entries := make([]models.WishlistEntry, 0)
		if err := cursor.All(ctx, &entries); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, entries)
	}
}

// AddWishlistEntry handles POST /wishlist; adding the same product twice is a
// no-op.
func AddWishlistEntry(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req struct {
			ProdID string `json:"prod_ID" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{
			"prod_ID":   strings.TrimSpace(req.ProdID),
			"isDeleted": bson.M{"$ne": true},
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		entry := models.WishlistEntry{
			UserID:    actor.UserID,
			ProdID:    product.ProdID,
			ProdName:  product.Name,
			Image:     product.Image,
			CreatedAt: time.Now(),
		}

		_, err = db.Collection("wishlists").UpdateOne(
			ctx,
			bson.M{"user_id": actor.UserID, "prod_ID": product.ProdID},
			bson.M{"$setOnInsert": entry},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.JSON(http.StatusCreated, entry)
	}
}

// RemoveWishlistEntry handles DELETE /wishlist/:prod_ID.
func RemoveWishlistEntry(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("wishlists").DeleteOne(ctx, bson.M{
			"user_id": actor.UserID,
			"prod_ID": strings.TrimSpace(c.Param("prod_ID")),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "entry removed"})
	}
}

/* =========================
   EVENTS / VIDEOS
========================= */

// GetEvents handles GET /events: active announcements, newest first.
func GetEvents(db *mongo.Database) gin.HandlerFunc {
	return listActive[models.Event](db, "events")
}

// GetVideos handles GET /videos.
func GetVideos(db *mongo.Database) gin.HandlerFunc {
	return listActive[models.Video](db, "videos")
}

func listActive[T any](db *mongo.Database, collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection(collection).Find(ctx, bson.M{"isActive": true}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		docs := make([]T, 0)
		if err := cursor.All(ctx, &docs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, docs)
	}
}

// CreateEvent handles POST /admin/api/events.
func CreateEvent(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title  string `json:"title" binding:"required"`
			Detail string `json:"detail"`
			Image  string `json:"image"`
			Date   string `json:"date"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		event := models.Event{
			Title:     strings.TrimSpace(req.Title),
			Detail:    strings.TrimSpace(req.Detail),
			Image:     strings.TrimSpace(req.Image),
			Date:      strings.TrimSpace(req.Date),
			IsActive:  true,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("events").InsertOne(ctx, event)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		event.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, event)
	}
}

// CreateVideo handles POST /admin/api/videos.
func CreateVideo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Title string `json:"title" binding:"required"`
			URL   string `json:"url" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		video := models.Video{
			Title:     strings.TrimSpace(req.Title),
			URL:       strings.TrimSpace(req.URL),
			IsActive:  true,
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("videos").InsertOne(ctx, video)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		video.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, video)
	}
}

// DeleteContent soft-disables an event or video by id.
func DeleteContent(db *mongo.Database, collection string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection(collection).UpdateOne(ctx,
			bson.M{"_id": id},
			bson.M{"$set": bson.M{"isActive": false}},
		)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if res.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "deleted"})
	}
}

/* =========================
   COMMENTS
========================= */

// GetComments handles GET /products/:prod_ID/comments.
func GetComments(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("comments").Find(ctx, bson.M{
			"prod_ID": strings.TrimSpace(c.Param("prod_ID")),
		}, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		defer cursor.Close(ctx)

		comments := make([]models.Comment, 0)
		if err := cursor.All(ctx, &comments); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "decode error"})
			return
		}

		c.JSON(http.StatusOK, comments)
	}
}

// CreateComment handles POST /products/:prod_ID/comments.
func CreateComment(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.ActorFrom(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var req struct {
			Text string `json:"text" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		_ = db.Collection("users").FindOne(ctx, bson.M{"user_id": actor.UserID}).Decode(&user)

		comment := models.Comment{
			ProdID:    strings.TrimSpace(c.Param("prod_ID")),
			UserID:    actor.UserID,
			UserName:  user.Name,
			Text:      strings.TrimSpace(req.Text),
			CreatedAt: time.Now(),
		}

		res, err := db.Collection("comments").InsertOne(ctx, comment)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		comment.ID = res.InsertedID.(primitive.ObjectID)
		c.JSON(http.StatusCreated, comment)
	}
}
