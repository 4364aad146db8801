package http

import (
	"github.com/gofiber/fiber/v2"
	appanalytics "github.com/jhoicas/warehouse-api/internal/application/analytics"
	"github.com/jhoicas/warehouse-api/internal/application/auth"
	"github.com/jhoicas/warehouse-api/internal/application/inventory"
	"github.com/jhoicas/warehouse-api/internal/application/report"
	"github.com/jhoicas/warehouse-api/internal/application/usecase"
	"github.com/jhoicas/warehouse-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	CategoryUC      *usecase.CategoryUseCase
	ProductUC       *usecase.ProductUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	Ledger          *inventory.StockLedger
	MovementQueries *inventory.MovementQueryUseCase
	MovementStats   *appanalytics.MovementStatsUseCase
	Replenishment   *inventory.ReplenishmentUseCase
	DashboardUC     *appanalytics.DashboardUseCase
	ReportUC        *report.ReportUseCase
	JWTSecret       string
	ServiceName     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK", "service": deps.ServiceName})
	})

	api := app.Group("/api")

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users: las reglas propio/admin las aplica el caso de uso
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	adminOnly := RequireRole(entity.RoleAdmin)
	users.Get("/", adminOnly, userHandler.List)
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", adminOnly, userHandler.Delete)
	users.Put("/:id/password", userHandler.ChangePassword)

	// Categories
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Ledger)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/balance", productHandler.Balance)
	products.Post("/:id/stock", productHandler.RecordStock)

	// Stock movements (libro de stock). /stats y /product/:productId antes de /:id.
	movements := protected.Group("/stock-movements")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.MovementQueries, deps.MovementStats, deps.Replenishment)
	movements.Get("/", inventoryHandler.List)
	movements.Post("/", inventoryHandler.RecordMovement)
	movements.Get("/stats", inventoryHandler.Stats)
	movements.Get("/product/:productId", inventoryHandler.ListByProduct)
	movements.Delete("/:id", inventoryHandler.ReverseMovement)

	// Inventory
	invGroup := protected.Group("/inventory")
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Warehouse layout
	warehouse := protected.Group("/warehouse")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouse.Get("/areas", warehouseHandler.ListAreas)
	warehouse.Post("/areas", warehouseHandler.CreateArea)
	warehouse.Put("/areas/:id", warehouseHandler.UpdateArea)
	warehouse.Delete("/areas/:id", warehouseHandler.DeleteArea)
	warehouse.Get("/locations", warehouseHandler.ListLocations)
	warehouse.Post("/locations", warehouseHandler.CreateLocation)
	warehouse.Put("/locations/:id", warehouseHandler.UpdateLocation)
	warehouse.Delete("/locations/:id", warehouseHandler.DeleteLocation)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/stats", dashboardHandler.GetStats)

	// Reports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/types", reportHandler.Types)
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/near-expiry", reportHandler.NearExpiry)
	reports.Get("/warehouse-layout", reportHandler.WarehouseLayout)
}
