package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/zapasoft/calzado-api/internal/application/auth"
	appcatalog "github.com/zapasoft/calzado-api/internal/application/catalog"
	"github.com/zapasoft/calzado-api/internal/application/customers"
	"github.com/zapasoft/calzado-api/internal/application/inventory"
	"github.com/zapasoft/calzado-api/internal/application/sales"
	"github.com/zapasoft/calzado-api/internal/application/stock"
	"github.com/zapasoft/calzado-api/internal/infrastructure/postgres"
	httpRouter "github.com/zapasoft/calzado-api/internal/interfaces/http"
	"github.com/zapasoft/calzado-api/pkg/config"
	"github.com/zapasoft/calzado-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	brandRepo := postgres.NewBrandRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	variantRepo := postgres.NewVariantRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	inventoryQueryRepo := postgres.NewInventoryQueryRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	processSaleUC := sales.NewProcessSaleUseCase(txRunner, customerRepo)
	listSalesUC := sales.NewListSalesUseCase(saleRepo)
	intakeUC := stock.NewIntakeUseCase(txRunner)
	variantUC := stock.NewVariantUseCase(variantRepo)
	inventoryUC := inventory.NewQueryUseCase(inventoryQueryRepo)
	catalogResolver := appcatalog.NewResolver(brandRepo, productRepo)
	customerUC := customers.NewCustomerUseCase(customerRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Calzado API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get("/metrics", httpRouter.MetricsHandler())
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProcessSale: processSaleUC,
		ListSales:   listSalesUC,
		Intake:      intakeUC,
		Variants:    variantUC,
		Inventory:   inventoryUC,
		Catalog:     catalogResolver,
		Customers:   customerUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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
