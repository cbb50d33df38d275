package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zapasoft/calzado-api/internal/application/auth"
	"github.com/zapasoft/calzado-api/internal/application/catalog"
	"github.com/zapasoft/calzado-api/internal/application/customers"
	"github.com/zapasoft/calzado-api/internal/application/inventory"
	"github.com/zapasoft/calzado-api/internal/application/sales"
	"github.com/zapasoft/calzado-api/internal/application/stock"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProcessSale *sales.ProcessSaleUseCase
	ListSales   *sales.ListSalesUseCase
	Intake      *stock.IntakeUseCase
	Variants    *stock.VariantUseCase
	Inventory   *inventory.QueryUseCase
	Catalog     *catalog.Resolver
	Customers   *customers.CustomerUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Punto de venta (público: la caja opera sin sesión)
	saleHandler := NewSaleHandler(deps.ProcessSale, deps.ListSales)
	api.Post("/sales", saleHandler.Create)

	// Catálogo para autocompletado (público)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	api.Get("/catalog/brands", catalogHandler.ListBrands)
	api.Get("/catalog/models", catalogHandler.ListModels)

	// Consulta de variante por clave natural (público: la usa la terminal de
	// venta antes de agregar al carrito)
	stockHandler := NewStockHandler(deps.Intake, deps.Variants)
	api.Get("/variants/lookup", stockHandler.LookupVariant)

	// Inventario público (catálogo para clientes, solo con existencias)
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	api.Get("/inventory/public", inventoryHandler.PublicQuery)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventario completo con totales valorizados (protegido)
	protected.Get("/inventory", inventoryHandler.Query)

	// Lotes de entrada y edición de variantes (protegido)
	protected.Post("/stock/batches", stockHandler.CreateBatch)
	protected.Put("/variants/:id", stockHandler.SetVariant)
	protected.Delete("/variants/:id", RequireRole(entity.RoleAdmin), stockHandler.DeleteVariant)

	// Historial de ventas (protegido)
	protected.Get("/sales", saleHandler.List)
	protected.Get("/sales/:id", saleHandler.GetByID)

	// Clientes (protegido)
	customerHandler := NewCustomerHandler(deps.Customers)
	protected.Post("/customers", customerHandler.Create)
	protected.Get("/customers", customerHandler.List)
}
