package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"gromart/internal/config"
	"gromart/internal/database"
	"gromart/internal/handlers"
	"gromart/internal/middleware"
)

func main() {
	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.Printf("order index warning: %v", err)
	}
	if err := database.EnsureCartIndexes(db); err != nil {
		log.Printf("cart index warning: %v", err)
	}

	r := gin.Default()

	secret := config.AppEnv.JWTSecret
	actor := middleware.ResolveActor(db, secret)

	// auth
	r.POST("/auth/register", handlers.Register(db, secret, config.AppEnv.AccessTokenTTL))
	r.POST("/auth/login", handlers.Login(db, secret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/refresh", handlers.Refresh(db, secret, config.AppEnv.AccessTokenTTL, config.AppEnv.RefreshTokenTTL))
	r.POST("/auth/logout", handlers.Logout(db))
	r.GET("/auth/me", actor, handlers.GetMe(db))
	r.POST("/admin/login", handlers.AdminLogin(db, secret, config.AppEnv.AccessTokenTTL))
	r.POST("/delivery/register", handlers.RegisterDeliveryCentre(db))
	r.POST("/delivery/login", handlers.LoginDeliveryCentre(db, secret, config.AppEnv.AccessTokenTTL))

	// catalog
	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/:prod_ID", handlers.GetProduct(db))
	r.GET("/products/:prod_ID/comments", handlers.GetComments(db))
	r.POST("/products/:prod_ID/comments", actor, handlers.CreateComment(db))
	r.GET("/categories", handlers.GetCategories(db))
	r.GET("/events", handlers.GetEvents(db))
	r.GET("/videos", handlers.GetVideos(db))

	// orders (core)
	r.GET("/admin/orders", middleware.AdminAuth(secret), handlers.GetAllOrders(db))
	r.POST("/createorder", actor, handlers.CreateOrder(db, config.AppEnv))
	r.GET("/orders", actor, handlers.GetOrders(db))
	r.PUT("/updateorder/:order_ID", actor, handlers.UpdateOrder(db, config.AppEnv))
	r.DELETE("/orders/:order_ID", actor, handlers.DeleteOrder(db))

	// cart
	r.GET("/cart", actor, handlers.GetCart(db))
	r.POST("/cart/items", actor, handlers.AddCartItem(db))
	r.PUT("/cart/items/:prod_ID", actor, handlers.UpdateCartItem(db))
	r.DELETE("/cart/items/:prod_ID", actor, handlers.RemoveCartItem(db))

	user := r.Group("/user")
	user.Use(actor)
	{
		user.GET("/addresses", handlers.GetUserAddresses(db))
		user.POST("/addresses", handlers.CreateUserAddress(db))
		user.PUT("/addresses/:id", handlers.UpdateUserAddress(db))
		user.DELETE("/addresses/:id", handlers.DeleteUserAddress(db))

		user.GET("/wishlist", handlers.GetWishlist(db))
		user.POST("/wishlist", handlers.AddWishlistEntry(db))
		user.DELETE("/wishlist/:prod_ID", handlers.RemoveWishlistEntry(db))
	}

	delivery := r.Group("/delivery")
	delivery.Use(actor, middleware.RequireRole(middleware.RoleDelivery))
	{
		delivery.GET("/orders", handlers.GetAllOrders(db))
		delivery.PUT("/updateorder/:order_ID", handlers.UpdateOrderByDelivery(db, config.AppEnv))
	}

	admin := r.Group("/admin/api")
	admin.Use(middleware.AdminAuth(secret))
	{
		admin.GET("/me", func(c *gin.Context) {
			c.JSON(200, gin.H{"ok": true})
		})

		admin.GET("/products", handlers.GetAllProducts(db))
		admin.POST("/products", handlers.CreateProduct(db))
		admin.PUT("/products/:prod_ID", handlers.UpdateProduct(db))
		admin.DELETE("/products/:prod_ID", handlers.DeleteProduct(db))

		admin.GET("/categories", handlers.GetAllCategories(db))
		admin.POST("/categories", handlers.CreateCategory(db))
		admin.PUT("/categories/:id", handlers.UpdateCategory(db))
		admin.DELETE("/categories/:id", handlers.DeleteCategory(db))

		admin.POST("/events", handlers.CreateEvent(db))
		admin.DELETE("/events/:id", handlers.DeleteContent(db, "events"))
		admin.POST("/videos", handlers.CreateVideo(db))
		admin.DELETE("/videos/:id", handlers.DeleteContent(db, "videos"))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
