package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale cabecera de una nota de venta. Inmutable una vez registrada.
// Para apartados (ventas en abonos) se guarda el anticipo, el restante y la
// fecha de expiración; Restante = TotalAmount - Anticipo al momento de crear.
type Sale struct {
	ID             string
	SaleTimestamp  time.Time
	TotalAmount    decimal.Decimal
	Notes          string
	CustomerID     *string
	IsApartado     bool
	Anticipo       *decimal.Decimal
	Restante       *decimal.Decimal
	ApartadoExpira *time.Time
	CreatedAt      time.Time
}

// SaleItem línea validada de una venta: referencia una variante existente al
// momento de la venta y descuenta su stock dentro de la misma transacción.
type SaleItem struct {
	ID          string
	SaleID      string
	VariantID   string
	Quantity    int
	PriceAtSale decimal.Decimal
	Discount    decimal.Decimal
}

// Subtotal importe de la línea: cantidad × precio - descuento.
func (i SaleItem) Subtotal() decimal.Decimal {
	return i.PriceAtSale.Mul(decimal.NewFromInt(int64(i.Quantity))).Sub(i.Discount)
}

// ManualSaleLine línea de venta "vender de todos modos": el artículo no existe
// en el catálogo, se registra como texto libre sin afectar inventario y sin
// referencia a variante. Cuenta para el total de la venta.
type ManualSaleLine struct {
	ID          string
	SaleID      string
	Brand       string
	Model       string
	Color       string
	Size        string
	SKU         string
	Quantity    int
	PriceAtSale decimal.Decimal
}

// Subtotal importe de la línea manual: cantidad × precio.
func (l ManualSaleLine) Subtotal() decimal.Decimal {
	return l.PriceAtSale.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
