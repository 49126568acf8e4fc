package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	ProductUC *usecase.ProductUseCase
	Ledger    *inventory.RegisterMovementUseCase
	Reports   *inventory.StockReportUseCase
	JWTSecret string
	Metrics   *metrics.Metrics            // opcional: /metrics y métricas HTTP
	Health    func(context.Context) error // opcional: ping a la BD / Redis
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "API de libro de stock", "service": deps.AppName, "docs": "/docs"})
	})
	app.Get("/health", healthHandler(deps))

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api/v1", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	sales := RequireRole(entity.RoleAdmin, entity.RoleBodeguero, entity.RoleVendedor)

	productHandler := NewProductHandler(deps.ProductUC)
	stockHandler := NewStockHandler(deps.Ledger)
	reportHandler := NewReportHandler(deps.Reports)

	// Products. below-minimum antes de /:id
	products := api.Group("/products")
	products.Get("/below-minimum", reportHandler.BelowMinimum)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Stock ledger
	stock := api.Group("/stock")
	stock.Post("/movements", warehouse, stockHandler.CreateMovement)
	stock.Post("/sale", sales, stockHandler.Sell)
	stock.Post("/return", sales, stockHandler.Return)
	stock.Post("/adjustment", warehouse, stockHandler.Adjust)
	stock.Get("/balance/:product_id", stockHandler.Balance)
	stock.Get("/statement/:product_id", stockHandler.Statement)
	stock.Get("/statement/:product_id/xlsx", reportHandler.StatementXLSX)
	stock.Get("/summary", reportHandler.Summary)
	stock.Get("/summary/pdf", reportHandler.SummaryPDF)
}

func healthHandler(deps RouterDeps) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if deps.Health != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := deps.Health(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"status": "degraded", "service": deps.AppName, "error": err.Error(),
				})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	}
}
