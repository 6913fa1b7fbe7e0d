package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"gromart/internal/models"
)

// Role tags the kind of actor a bearer token resolved to.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleDelivery Role = "delivery"
)

// Actor is the resolved identity behind a request. For delivery actors
// NickName carries the centre's delivery-area nickname used for order
// assignment checks.
type Actor struct {
	Role     Role
	UserID   string
	NickName string
}

const actorKey = "actor"

// ResolveActor validates the bearer token and resolves the caller to a
// customer or delivery actor. The lookup tries the delivery centres first,
// then customers, and the result is attached to the request context so
// handlers never re-derive it.
func ResolveActor(db *mongo.Database, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c.GetHeader("Authorization"), secret)
		if !ok {
			log.Println("[AUTH] [ERROR] token validation failed")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		userID, _ := claims["userId"].(string)
		if strings.TrimSpace(userID) == "" {
			log.Println("[AUTH] [ERROR] userId claim missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var centre models.DeliveryCentre
		err := db.Collection("deliverycentres").
			FindOne(ctx, bson.M{"centre_ID": userID}).
			Decode(&centre)
		if err == nil {
			c.Set(actorKey, Actor{
				Role:     RoleDelivery,
				UserID:   centre.CentreID,
				NickName: centre.NickName,
			})
			c.Next()
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] delivery centre lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		var user models.User
		err = db.Collection("users").
			FindOne(ctx, bson.M{"user_id": userID}).
			Decode(&user)
		if err == mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] no account for token subject")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] user lookup failed:", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "db error"})
			return
		}

		c.Set(actorKey, Actor{Role: RoleCustomer, UserID: user.UserID})
		c.Next()
	}
}

// RequireRole aborts with 403 unless the resolved actor carries the role.
// Must run after ResolveActor.
func RequireRole(role Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || actor.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

// ActorFrom returns the actor resolved by ResolveActor.
func ActorFrom(c *gin.Context) (Actor, bool) {
	value, ok := c.Get(actorKey)
	if !ok {
		return Actor{}, false
	}
	actor, ok := value.(Actor)
	return actor, ok
}
