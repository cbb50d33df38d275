package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// VariantUpsert parámetros del upsert de una variante.
// Price/SKU en nil conservan el valor almacenado; con valor lo sobreescriben.
// StockDelta se suma al stock existente (o inicializa el stock si la fila es nueva).
type VariantUpsert struct {
	ID         string // usado solo si la fila no existe
	ProductID  string
	Color      string
	Size       decimal.Decimal
	Price      *decimal.Decimal
	SKU        *string
	StockDelta int64
}

// VariantRepository define el puerto de persistencia para Variant.
// GetForUpdate bloquea la fila (SELECT FOR UPDATE) y solo tiene sentido dentro
// de una transacción; UpsertDelta debe ser una sola sentencia atómica para no
// perder incrementos bajo lotes concurrentes sobre la misma variante.
type VariantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Variant, error)
	GetByKey(ctx context.Context, productID, color string, size decimal.Decimal) (*entity.Variant, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Variant, error)
	UpsertDelta(ctx context.Context, in VariantUpsert) (*entity.Variant, error)
	DecrementStock(ctx context.Context, id string, qty int64) error
	Set(ctx context.Context, id string, price *decimal.Decimal, stock *int64) (*entity.Variant, error)
	Delete(ctx context.Context, id string) error
}
