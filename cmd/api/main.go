package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-backoffice/internal/cache"
	"go-pos-backoffice/internal/handler"
	"go-pos-backoffice/internal/middleware"
	"go-pos-backoffice/internal/model"
	"go-pos-backoffice/internal/repository"
	"go-pos-backoffice/internal/service"
	"go-pos-backoffice/internal/ws"
	"go-pos-backoffice/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Customer{},
		&model.Supplier{},
		&model.Account{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Purchase{},
		&model.PurchaseItem{},
		&model.PurchasePlan{},
		&model.PurchasePlanItem{},
		&model.Expense{},
		&model.Recipe{},
		&model.StockMovement{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Reference data cache
	refCache := cache.NewStore()

	// 6. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	customerRepo := repository.NewCustomerRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	accountRepo := repository.NewAccountRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	planRepo := repository.NewPurchasePlanRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	movementRepo := repository.NewStockMovementRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, recipeRepo, db, refCache, wsHub)
	salesService := service.NewSalesService(saleRepo, productRepo, accountRepo, customerRepo, movementRepo, db, wsHub)
	purchaseService := service.NewPurchaseService(purchaseRepo, planRepo, productRepo, accountRepo, supplierRepo, movementRepo, db, wsHub)
	expenseService := service.NewExpenseService(expenseRepo, accountRepo, db)
	recipeService := service.NewRecipeService(recipeRepo, productRepo, movementRepo, db, wsHub)
	ledgerService := service.NewLedgerService(saleRepo, purchaseRepo, expenseRepo)
	reportService := service.NewReportService(saleRepo, purchaseRepo, expenseRepo, customerRepo, supplierRepo, productRepo, movementRepo, refCache)
	backupService := service.NewBackupService(db)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	partnerHandler := handler.NewPartnerHandler(customerRepo, supplierRepo, refCache)
	accountHandler := handler.NewAccountHandler(accountRepo)
	salesHandler := handler.NewSalesHandler(salesService)
	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	expenseHandler := handler.NewExpenseHandler(expenseService)
	recipeHandler := handler.NewRecipeHandler(recipeService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	reportHandler := handler.NewReportHandler(reportService)
	movementHandler := handler.NewStockMovementHandler(movementRepo)
	backupHandler := handler.NewBackupHandler(backupService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Back Office v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// User management
	protected.Get("/users", authHandler.ListUsers)
	protected.Post("/users", authHandler.CreateUser)

	// Catalog
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Get("/products/low-stock", catalogHandler.GetLowStock)
	protected.Get("/products/:id", catalogHandler.GetProduct)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", catalogHandler.UpdateProduct)
	protected.Delete("/products/:id", catalogHandler.DeleteProduct)

	// Customers
	protected.Get("/customers", partnerHandler.GetCustomers)
	protected.Get("/customers/:id", partnerHandler.GetCustomer)
	protected.Post("/customers", partnerHandler.CreateCustomer)
	protected.Put("/customers/:id", partnerHandler.UpdateCustomer)
	protected.Delete("/customers/:id", partnerHandler.DeleteCustomer)

	// Suppliers
	protected.Get("/suppliers", partnerHandler.GetSuppliers)
	protected.Get("/suppliers/:id", partnerHandler.GetSupplier)
	protected.Post("/suppliers", partnerHandler.CreateSupplier)
	protected.Put("/suppliers/:id", partnerHandler.UpdateSupplier)
	protected.Delete("/suppliers/:id", partnerHandler.DeleteSupplier)

	// Accounts
	protected.Get("/accounts", accountHandler.GetAccounts)
	protected.Get("/accounts/:id", accountHandler.GetAccount)
	protected.Post("/accounts", accountHandler.CreateAccount)
	protected.Put("/accounts/:id", accountHandler.UpdateAccount)
	protected.Delete("/accounts/:id", accountHandler.DeleteAccount)

	// Sales
	protected.Get("/sales", salesHandler.GetSales)
	protected.Get("/sales/:id", salesHandler.GetSale)
	protected.Post("/sales", salesHandler.CreateSale)
	protected.Delete("/sales/:id", salesHandler.DeleteSale)

	// Purchases and purchase plans
	protected.Get("/purchases", purchaseHandler.GetPurchases)
	protected.Get("/purchases/:id", purchaseHandler.GetPurchase)
	protected.Post("/purchases", purchaseHandler.CreatePurchase)
	protected.Delete("/purchases/:id", purchaseHandler.DeletePurchase)
	protected.Get("/purchase-plans", purchaseHandler.GetPlans)
	protected.Get("/purchase-plans/:id", purchaseHandler.GetPlan)
	protected.Get("/purchase-plans/:id/receipts", purchaseHandler.GetPlanReceipts)
	protected.Post("/purchase-plans", purchaseHandler.CreatePlan)
	protected.Post("/purchase-plans/:id/receive", purchaseHandler.ReceivePlan)

	// Expenses
	protected.Get("/expenses", expenseHandler.GetExpenses)
	protected.Get("/expenses/:id", expenseHandler.GetExpense)
	protected.Post("/expenses", expenseHandler.CreateExpense)
	protected.Put("/expenses/:id", expenseHandler.UpdateExpense)
	protected.Delete("/expenses/:id", expenseHandler.DeleteExpense)

	// Recipes and builds
	protected.Get("/recipes/:productId", recipeHandler.GetRecipe)
	protected.Post("/recipes", recipeHandler.SetRecipe)
	protected.Post("/recipes/build", recipeHandler.Build)

	// Cash ledger
	protected.Get("/cash-ledger", ledgerHandler.GetLedger)
	protected.Get("/cash-ledger/export", ledgerHandler.ExportCSV)

	// Stock movements
	protected.Get("/stock-movements", movementHandler.GetMovements)

	// Reports and dashboard
	protected.Get("/reports/range", reportHandler.GetRangeSummary)
	protected.Get("/reports/customers-by-channel", reportHandler.GetCustomersByChannel)
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	protected.Get("/dashboard/top-products", reportHandler.GetTopProducts)
	protected.Get("/dashboard/stock-movement", reportHandler.GetStockMovementChart)
	protected.Get("/reference-data", reportHandler.GetReferenceData)

	// Backup and restore
	protected.Get("/admin/backup", backupHandler.Export)
	protected.Post("/admin/restore", backupHandler.Restore)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if no users exist yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Administrator",
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword("admin123"); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("✅ Admin user created: admin@example.com / admin123")
	}
}
