package handlers

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"gromart/internal/models"
)

type DeliveryRegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	NickName string `json:"nickName" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
	Area     string `json:"area"`
}

// RegisterDeliveryCentre handles POST /delivery/register. The nickname names
// the delivery area orders are routed by; it must be unique regardless of
// case. The centre_ID sequence feeds order ID generation.
func RegisterDeliveryCentre(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeliveryRegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		nickName := strings.TrimSpace(req.NickName)
		password := strings.TrimSpace(req.Password)
		if email == "" || nickName == "" || password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nickName, email and password are required"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		centres := db.Collection("deliverycentres")

		count, err := centres.CountDocuments(ctx, bson.M{"$or": []bson.M{
			{"email": email},
			{"nickName": bson.M{"$regex": "^" + regexp.QuoteMeta(nickName) + "$", "$options": "i"}},
		}})
		if err != nil {
			log.Println("[AUTH] [ERROR] delivery register db error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "email or nickname already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] delivery register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "password hash failed"})
			return
		}

		centreID, err := nextCentreID(ctx, db)
		if err != nil {
			log.Println("[AUTH] [ERROR] delivery register centre id generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		centre := models.DeliveryCentre{
			CentreID:     centreID,
			NickName:     nickName,
			Name:         strings.TrimSpace(req.Name),
			Email:        email,
			PasswordHash: string(hash),
			Phone:        strings.TrimSpace(req.Phone),
			Area:         strings.TrimSpace(req.Area),
			IsActive:     true,
			CreatedAt:    time.Now(),
		}

		if _, err := centres.InsertOne(ctx, centre); err != nil {
			log.Println("[AUTH] [ERROR] delivery register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		log.Println("[AUTH] [INFO] delivery centre registered:", nickName)
		c.JSON(http.StatusCreated, gin.H{
			"message": "delivery centre registered",
			"centre": gin.H{
				"centre_ID": centreID,
				"nickName":  nickName,
				"email":     email,
			},
		})
	}
}

// LoginDeliveryCentre handles POST /delivery/login.
func LoginDeliveryCentre(db *mongo.Database, jwtSecret string, accessTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var centre models.DeliveryCentre
		if err := db.Collection("deliverycentres").FindOne(ctx, bson.M{"email": email}).Decode(&centre); err != nil {
			log.Println("[AUTH] [ERROR] delivery login invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		if !centre.IsActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "centre is inactive"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(centre.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] delivery login invalid credentials")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		accessToken, err := issueAccessToken(centre.CentreID, centre.Email, "delivery", jwtSecret, accessTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] delivery login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token generation failed"})
			return
		}

		log.Println("[AUTH] [INFO] delivery login succeeded:", centre.NickName)
		c.JSON(http.StatusOK, gin.H{
			"accessToken": accessToken,
			"centre": gin.H{
				"centre_ID": centre.CentreID,
				"nickName":  centre.NickName,
				"email":     centre.Email,
			},
		})
	}
}
