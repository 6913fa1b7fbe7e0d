package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gromart/internal/models"
)

type ProductCreateRequest struct {
	Name        string             `json:"prod_Name" binding:"required"`
	Image       string             `json:"image"`
	Rates       map[string]float64 `json:"rates" binding:"required"`
	Stock       float64            `json:"prod_Stock"`
	Category    []string           `json:"category"`
	Description string             `json:"description"`
	IsActive    *bool              `json:"isActive"`
}

type ProductUpdateRequest struct {
	Name        *string             `json:"prod_Name"`
	Image       *string             `json:"image"`
	Rates       *map[string]float64 `json:"rates"`
	Stock       *float64            `json:"prod_Stock"`
	Category    *[]string           `json:"category"`
	Description *string             `json:"description"`
	IsActive    *bool               `json:"isActive"`
}

// GetAllProducts handles GET /admin/api/products: everything, including
// inactive and soft-deleted entries.
func GetAllProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /admin/api/products"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("products").Find(ctx, bson.M{}, opts)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products, err := decodeProducts(ctx, cursor)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"data": products})
	}
}

// CreateProduct handles POST /admin/api/products with a generated sequential
// prod_ID.
func CreateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /admin/api/products"
		defer handlePanic(c, route)

		var req ProductCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		if len(req.Rates) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "at least one rate is required")
			return
		}
		for key, price := range req.Rates {
			if strings.TrimSpace(key) == "" || price <= 0 {
				respondWithError(c, http.StatusBadRequest, route, "rates must map a size label to a positive price")
				return
			}
		}
		if req.Stock < 0 {
			respondWithError(c, http.StatusBadRequest, route, "prod_Stock cannot be negative")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		prodID, err := nextProductID(ctx, db)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		isActive := true
		if req.IsActive != nil {
			isActive = *req.IsActive
		}

		product := models.Product{
			ProdID:      prodID,
			Name:        strings.TrimSpace(req.Name),
			Image:       strings.TrimSpace(req.Image),
			Rates:       req.Rates,
			Stock:       req.Stock,
			Category:    models.StringList(req.Category),
			Description: strings.TrimSpace(req.Description),
			IsActive:    isActive,
			CreatedAt:   time.Now(),
		}

		if _, err := db.Collection("products").InsertOne(ctx, product); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product.InStock = product.Stock > 0
		c.JSON(http.StatusCreated, product)
	}
}

// UpdateProduct handles PUT /admin/api/products/:prod_ID. Stock writes clamp
// at zero.
func UpdateProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "PUT /admin/api/products"
		defer handlePanic(c, route)

		var req ProductUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		set := bson.M{}
		if req.Name != nil {
			set["prod_Name"] = strings.TrimSpace(*req.Name)
		}
		if req.Image != nil {
			set["image"] = strings.TrimSpace(*req.Image)
		}
		if req.Rates != nil {
			if len(*req.Rates) == 0 {
				respondWithError(c, http.StatusBadRequest, route, "rates must not be empty")
				return
			}
			set["rates"] = *req.Rates
		}
		if req.Stock != nil {
			stock := *req.Stock
			if stock < 0 {
				stock = 0
			}
			set["prod_Stock"] = stock
		}
		if req.Category != nil {
			set["category"] = models.StringList(*req.Category)
		}
		if req.Description != nil {
			set["description"] = strings.TrimSpace(*req.Description)
		}
		if req.IsActive != nil {
			set["isActive"] = *req.IsActive
		}

		if len(set) == 0 {
			respondWithError(c, http.StatusBadRequest, route, "no fields to update")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res := db.Collection("products").FindOneAndUpdate(
			ctx,
			bson.M{"prod_ID": strings.TrimSpace(c.Param("prod_ID"))},
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		)

		var product models.Product
		if err := res.Decode(&product); err != nil {
			if err == mongo.ErrNoDocuments {
				respondWithError(c, http.StatusNotFound, route, "product not found")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		product.InStock = product.Stock > 0
		c.JSON(http.StatusOK, product)
	}
}

// DeleteProduct handles DELETE /admin/api/products/:prod_ID as a soft delete,
// keeping references from existing orders resolvable.
func DeleteProduct(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /admin/api/products"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		now := time.Now()
		res, err := db.Collection("products").UpdateOne(
			ctx,
			bson.M{"prod_ID": strings.TrimSpace(c.Param("prod_ID")), "isDeleted": bson.M{"$ne": true}},
			bson.M{"$set": bson.M{"isDeleted": true, "isActive": false, "deletedAt": now}},
		)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if res.MatchedCount == 0 {
			respondWithError(c, http.StatusNotFound, route, "product not found")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
	}
}
