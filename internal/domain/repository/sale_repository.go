package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// SaleItemRow línea validada de venta con las etiquetas de catálogo resueltas
// (join variante → producto → marca) para listados y tickets.
type SaleItemRow struct {
	entity.SaleItem
	BrandName string
	Model     string
	Color     string
	Size      decimal.Decimal
	SKU       string
}

// SaleWithLines venta completa: cabecera, líneas validadas y líneas manuales.
type SaleWithLines struct {
	Sale        entity.Sale
	Items       []SaleItemRow
	ManualLines []entity.ManualSaleLine
}

// SaleRepository define el puerto de persistencia para ventas.
// Los Insert* se usan dentro de la transacción de ProcessSale; las lecturas
// operan sobre el pool.
type SaleRepository interface {
	InsertSale(ctx context.Context, sale *entity.Sale) error
	InsertItem(ctx context.Context, item *entity.SaleItem) error
	InsertManualLine(ctx context.Context, line *entity.ManualSaleLine) error
	GetByID(ctx context.Context, id string) (*SaleWithLines, error)
	ListByPeriod(ctx context.Context, from, to time.Time) ([]*SaleWithLines, error)
}
