package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/swaggo/swag"

	"github.com/jhoicas/stock-ledger-api/docs"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain/ledger"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/cache"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/stock-ledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stock-ledger-api/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/stock-ledger-api/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/stock-ledger-api/internal/interfaces/http"
	"github.com/jhoicas/stock-ledger-api/pkg/config"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
	"github.com/jhoicas/stock-ledger-api/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

// storage repositorios y runner de la implementación elegida.
type storage struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	txRunner  inventory.TxRunner
	ping      func(context.Context) error
	close     func()
}

// @title                      Stock Ledger API
// @version                    1.0
// @description                Libro de movimientos de stock con saldo derivado (entradas menos salidas).
// @BasePath                   /api/v1
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Bool("allow_negative_stock", cfg.Stock.AllowNegative).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	m := metrics.New(cfg.Metrics.Prefix)
	hooks := []inventory.MovementHook{inventory.NewMetricsHook(m)}
	health := store.ping

	// Caché de saldos (solo lecturas); la admisión siempre lee el libro.
	var balances inventory.BalanceReader
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer rdb.Close()
		balanceCache := cache.NewBalanceCache(rdb, store.movements, cfg.Redis.TTL, log)
		balances = balanceCache
		hooks = append(hooks, balanceCache)
		health = withRedisPing(store.ping, rdb)
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.TTL).Msg("caché de saldos habilitada")
	}

	ledgerUC := inventory.NewRegisterMovementUseCase(
		store.txRunner, store.products, store.movements, balances,
		ledger.NewAdmissionPolicy(cfg.Stock.AllowNegative), log, hooks...,
	)
	reportUC := inventory.NewStockReportUseCase(
		store.products, store.movements, balances,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name), infraxlsx.NewStatementExporter(),
	)
	productUC := usecase.NewProductUseCase(store.products)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	}, log)

	mountDocs(app, cfg.App.Name, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		ProductUC: productUC,
		Ledger:    ledgerUC,
		Reports:   reportUC,
		JWTSecret: cfg.JWT.Secret,
		Metrics:   m,
		Health:    health,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			products:  memory.NewProductRepository(s),
			movements: memory.NewStockMovementRepository(s),
			txRunner:  memory.NewTxRunner(s),
			ping:      func(context.Context) error { return nil },
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		applied, err := postgres.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
	}
	return &storage{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		ping:      pingPool(pool),
		close:     pool.Close,
	}, nil
}

func pingPool(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error { return pool.Ping(ctx) }
}

func withRedisPing(next func(context.Context) error, rdb *redis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := next(ctx); err != nil {
			return err
		}
		if err := rdb.Ping(ctx).Err(); err != nil {
			return errors.New("redis: " + err.Error())
		}
		return nil
	}
}

// mountDocs sirve Swagger UI en /docs. Sin docs/swagger.json en disco se expone
// solo el documento registrado por el paquete docs.
func mountDocs(app *fiber.App, appName string, log *logger.Logger) {
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    appName,
		}))
		return
	}
	log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado; solo /docs/doc.json")
	app.Get("/docs/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})
}
