package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/oknastroy/internal/config"
	"github.com/example/oknastroy/internal/handlers"
	"github.com/example/oknastroy/internal/middleware"
	"github.com/example/oknastroy/internal/models"
	"github.com/example/oknastroy/internal/orders"
	"github.com/example/oknastroy/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramManagerChat)
	orderEngine := orders.NewEngine(orders.NewStore(db))

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db)
	productHandler := handlers.NewProductHandler(db)
	reviewHandler := handlers.NewReviewHandler(db)
	userHandler := handlers.NewUserHandler(db)
	orderHandler := handlers.NewOrderHandler(orderEngine, telegramService)
	adminHandler := handlers.NewAdminHandler(db)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Catalog
	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/:id", catalogHandler.GetCategory)
	categories.Post("/", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin, models.RoleManager), catalogHandler.CreateCategory)
	categories.Put("/:id", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin, models.RoleManager), catalogHandler.UpdateCategory)
	categories.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin), catalogHandler.DeleteCategory)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Get("/:id", productHandler.GetProduct)
	products.Post("/", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin, models.RoleManager), productHandler.CreateProduct)
	products.Put("/:id", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin, models.RoleManager), productHandler.UpdateProduct)
	products.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin), productHandler.DeleteProduct)

	// Reviews
	reviews := api.Group("/reviews")
	reviews.Get("/", reviewHandler.ListReviews)
	reviews.Post("/", middleware.AuthMiddleware(cfg), reviewHandler.CreateReview)
	reviews.Put("/:id", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin, models.RoleManager), reviewHandler.ReplyReview)
	reviews.Delete("/:id", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin, models.RoleManager), reviewHandler.DeleteReview)

	// Users (staff administration)
	users := api.Group("/users", middleware.AuthMiddleware(cfg))
	users.Get("/", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), userHandler.ListUsers)
	users.Post("/", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), userHandler.CreateUser)
	users.Put("/:id", middleware.RequireRoles(models.RoleAdmin, models.RoleManager), userHandler.UpdateUser)
	users.Delete("/:id", middleware.RequireRoles(models.RoleAdmin), userHandler.DeleteUser)

	// Orders. Creation allows guest checkout; every other operation is
	// permission-checked inside the lifecycle engine.
	ordersGroup := api.Group("/orders")
	ordersGroup.Post("/", middleware.OptionalAuth(cfg), orderHandler.CreateOrder)
	ordersGroup.Get("/", middleware.AuthMiddleware(cfg), orderHandler.ListOrders)
	ordersGroup.Get("/:id", middleware.AuthMiddleware(cfg), orderHandler.GetOrder)
	ordersGroup.Put("/:id/assembler", middleware.AuthMiddleware(cfg), orderHandler.AssignAssembler)
	ordersGroup.Put("/:id/acceptance", middleware.AuthMiddleware(cfg), orderHandler.SetAcceptance)
	ordersGroup.Put("/:id/status", middleware.AuthMiddleware(cfg), orderHandler.UpdateStatus)
	ordersGroup.Put("/:id/items/:itemId", middleware.AuthMiddleware(cfg), orderHandler.UpdateItemQuantity)
	ordersGroup.Put("/:id/total", middleware.AuthMiddleware(cfg), orderHandler.SetManualTotal)
	ordersGroup.Put("/:id/completion-date", middleware.AuthMiddleware(cfg), orderHandler.SetCompletionDate)
	ordersGroup.Post("/:id/comments", middleware.AuthMiddleware(cfg), orderHandler.AddComment)

	// Admin dashboard
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.RequireRoles(models.RoleAdmin, models.RoleManager))
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/recent-orders", adminHandler.RecentOrders)
}
