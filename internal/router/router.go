package router

import (
	"time"

	"go-inventory-api/internal/config"
	"go-inventory-api/internal/handler"
	"go-inventory-api/internal/middleware"
	"go-inventory-api/internal/payment"
	"go-inventory-api/internal/repository"
	"go-inventory-api/internal/service"
	"go-inventory-api/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// New wires repositories, services and handlers onto a fiber app.
func New(cfg config.Config, db *gorm.DB, hub *ws.Hub, payments payment.Provider, log *zap.Logger) *fiber.App {
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	secret := []byte(cfg.JWTSecret)
	tokenExpiry := time.Duration(cfg.AccessTokenExpireMinutes) * time.Minute

	productService := service.NewProductService(productRepo, supplierRepo, hub)
	supplierService := service.NewSupplierService(supplierRepo, productRepo)
	inventoryService := service.NewInventoryService(inventoryRepo)
	transactionService := service.NewTransactionService(transactionRepo)
	authService := service.NewAuthService(userRepo, secret, tokenExpiry)

	productHandler := handler.NewProductHandler(productService)
	supplierHandler := handler.NewSupplierHandler(supplierService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	transactionHandler := handler.NewTransactionHandler(transactionService, payments, log)
	authHandler := handler.NewAuthHandler(authService)

	app := fiber.New(fiber.Config{
		AppName: cfg.AppName,
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	api := app.Group("/api/v1")

	// Auth
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/token", authHandler.Token)
	auth.Get("/me", middleware.RequireAuth(secret), authHandler.Me)

	// Live-update channel; registered before /products/:id so "ws" is not
	// captured as an id.
	api.Use("/products/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	api.Get("/products/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			// Inbound text is echoed to every connection.
			hub.BroadcastMessage(string(msg))
		}
	}))

	// Products
	api.Get("/products", productHandler.GetProducts)
	api.Post("/products", productHandler.CreateProduct)
	api.Get("/products/:id", productHandler.GetProduct)
	api.Put("/products/:id", productHandler.UpdateProduct)
	api.Delete("/products/:id", productHandler.DeleteProduct)

	// Suppliers
	api.Get("/suppliers", supplierHandler.GetSuppliers)
	api.Post("/suppliers", supplierHandler.CreateSupplier)
	api.Get("/suppliers/:id", supplierHandler.GetSupplier)
	api.Put("/suppliers/:id", supplierHandler.UpdateSupplier)
	api.Delete("/suppliers/:id", supplierHandler.DeleteSupplier)

	// Inventory
	api.Get("/inventory", inventoryHandler.GetInventoryItems)
	api.Post("/inventory", inventoryHandler.CreateInventoryItem)
	api.Get("/inventory/:id", inventoryHandler.GetInventoryItem)
	api.Put("/inventory/:id", inventoryHandler.UpdateInventoryItem)
	api.Delete("/inventory/:id", inventoryHandler.DeleteInventoryItem)

	// Transactions
	api.Get("/transactions", transactionHandler.GetTransactions)
	api.Post("/transactions", transactionHandler.CreateTransaction)
	api.Post("/transactions/webhook", transactionHandler.PaymentWebhook)
	api.Get("/transactions/:id", transactionHandler.GetTransaction)
	api.Put("/transactions/:id", transactionHandler.UpdateTransaction)

	return app
}
