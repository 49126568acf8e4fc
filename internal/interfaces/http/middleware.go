package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

// AppConfig opciones del servidor Fiber.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// NewApp crea la aplicación Fiber con el manejador de errores, recover y request id.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	return app
}

// MetricsMiddleware registra conteo y latencia por ruta (plantilla, no URL).
// Resuelve el error aquí para observar el status final.
func MetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		path := "unmatched"
		// Sin ruta coincidente queda la del middleware ("/").
		if r := c.Route(); r != nil && r.Path != "" && (r.Path != "/" || c.Path() == "/") {
			path = r.Path
		}
		m.ObserveHTTP(c.Method(), path, c.Response().StatusCode(), time.Since(start))
		return nil
	}
}
