package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/dailycare/internal/config"
	"github.com/example/dailycare/internal/handlers"
	"github.com/example/dailycare/internal/middleware"
	"github.com/example/dailycare/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	sms := services.NewSMSSender(cfg.SMSAPIURL, cfg.SMSAPIToken, cfg.SMSSender)
	telegram := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	uploader := services.NewImageUploader(cfg.ImgBBAPIKey)

	authService := services.NewAuthService(db, cfg, sms)
	checkoutService := services.NewCheckoutService(db, telegram)

	authHandler := handlers.NewAuthHandler(db, authService)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db)
	wishlistHandler := handlers.NewWishlistHandler(db)
	orderHandler := handlers.NewOrderHandler(db, checkoutService)
	adminHandler := handlers.NewAdminHandler(db, checkoutService)
	uploadHandler := handlers.NewUploadHandler(uploader)

	authRequired := middleware.AuthMiddleware(authService)
	adminRequired := middleware.AdminOnly()

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/send-otp", authHandler.SendOTP)
	auth.Post("/verify-otp", authHandler.VerifyOTP)
	auth.Get("/me", authRequired, authHandler.Me)
	auth.Put("/me", authRequired, authHandler.UpdateMe)

	// Public catalog
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", authRequired, adminRequired, catalogHandler.CreateCategory)
	categories.Put("/:id", authRequired, adminRequired, catalogHandler.UpdateCategory)
	categories.Delete("/:id", authRequired, adminRequired, catalogHandler.DeleteCategory)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/bestsellers", productHandler.ListBestsellers)
	products.Get("/new-arrivals", productHandler.ListNewArrivals)
	products.Get("/slug/:slug", productHandler.GetProductBySlug)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", authRequired, adminRequired, productHandler.CreateProduct)
	products.Put("/:id", authRequired, adminRequired, productHandler.UpdateProduct)
	products.Delete("/:id", authRequired, adminRequired, productHandler.DeleteProduct)

	// Cart
	cart := api.Group("/cart", authRequired)
	cart.Get("/", cartHandler.ListCart)
	cart.Post("/", cartHandler.AddToCart)
	cart.Put("/:id", cartHandler.UpdateCartItem)
	cart.Delete("/:id", cartHandler.RemoveFromCart)
	cart.Delete("/", cartHandler.ClearCart)

	// Wishlist
	wishlist := api.Group("/wishlist", authRequired)
	wishlist.Get("/", wishlistHandler.ListWishlist)
	wishlist.Post("/", wishlistHandler.AddToWishlist)
	wishlist.Delete("/:productId", wishlistHandler.RemoveFromWishlist)

	// Orders
	orders := api.Group("/orders", authRequired)
	orders.Post("/", orderHandler.Checkout)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)

	// Admin
	admin := api.Group("/admin", authRequired, adminRequired)
	admin.Get("/stats", adminHandler.Stats)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:id/toggle-admin", adminHandler.ToggleUserAdmin)
	admin.Put("/users/:id/toggle-active", adminHandler.ToggleUserActive)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Put("/orders/:id/status", adminHandler.UpdateOrderStatus)

	// Upload
	api.Post("/upload/image", authRequired, adminRequired, uploadHandler.UploadImage)
}
