package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// InventoryFilters filtros opcionales del inventario; nil = sin restricción en
// esa dimensión. Los presentes se combinan con AND.
type InventoryFilters struct {
	BrandID  *string
	Color    *string
	Category *string
	SizeMin  *decimal.Decimal
	SizeMax  *decimal.Decimal
	PriceMin *decimal.Decimal
	PriceMax *decimal.Decimal
}

// InventoryRow fila del inventario con etiquetas de marca/modelo resueltas.
type InventoryRow struct {
	ID        string
	BrandName string
	Model     string
	Color     string
	Size      decimal.Decimal
	Category  string
	Price     decimal.Decimal
	SKU       string
	Stock     int64
	CreatedAt time.Time
}

// InventorySummary totales del inventario filtrado:
// TotalPairs = Σ stock; TotalValue = Σ stock × precio.
type InventorySummary struct {
	TotalPairs int64
	TotalValue decimal.Decimal
}

// InventoryQueryRepository consultas de solo lectura sobre el stock actual.
// Sin coincidencias devuelve lista vacía y resumen en ceros, no error.
type InventoryQueryRepository interface {
	Query(ctx context.Context, filters InventoryFilters) ([]InventoryRow, InventorySummary, error)
}
