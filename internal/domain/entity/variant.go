package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Variant unidad de stock: (producto, color, talla) con precio, SKU y existencias.
// Stock nunca es negativo; una venta jamás debe dejarlo por debajo de cero.
// El SKU es una etiqueta de exhibición derivada de marca/modelo/color/talla,
// sin garantía de unicidad global.
type Variant struct {
	ID        string
	ProductID string
	Color     string
	Size      decimal.Decimal // talla en pasos de 0.5
	Price     decimal.Decimal
	SKU       string
	Stock     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
