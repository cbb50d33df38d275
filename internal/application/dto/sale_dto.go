package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea validada del carrito: referencia una variante del
// inventario y descuenta stock.
type SaleLineRequest struct {
	VariantID   string          `json:"variant_id" validate:"required,uuid"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	PriceAtSale decimal.Decimal `json:"price_at_sale" validate:"min=0"`
	Discount    decimal.Decimal `json:"discount" validate:"min=0"`
}

// ManualLineRequest línea "vender de todos modos": artículo fuera de catálogo,
// registrado como texto libre y sin afectación de inventario.
type ManualLineRequest struct {
	Brand       string          `json:"brand" validate:"required"`
	Model       string          `json:"model" validate:"required"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity" validate:"required,min=1"`
	PriceAtSale decimal.Decimal `json:"price_at_sale" validate:"min=0"`
}

// ProcessSaleRequest body para POST /api/sales.
// SaleDate (YYYY-MM-DD) permite registrar ventas con fecha distinta a hoy;
// la hora se toma del reloj al momento de registrar.
// Para apartados: is_apartado, anticipo y apartado_expira (YYYY-MM-DD);
// el restante se calcula como total - anticipo.
type ProcessSaleRequest struct {
	Items          []SaleLineRequest   `json:"items" validate:"omitempty,dive"`
	ManualItems    []ManualLineRequest `json:"manual_items" validate:"omitempty,dive"`
	SaleDate       string              `json:"sale_date" validate:"omitempty,datetime=2006-01-02"`
	Notes          string              `json:"notes"`
	CustomerID     *string             `json:"customer_id" validate:"omitempty,uuid"`
	IsApartado     bool                `json:"is_apartado"`
	Anticipo       *decimal.Decimal    `json:"anticipo,omitempty" validate:"omitempty,min=0"`
	ApartadoExpira *string             `json:"apartado_expira,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ProcessSaleResponse resultado de una venta registrada.
type ProcessSaleResponse struct {
	SaleID       string           `json:"sale_id"`
	Total        decimal.Decimal  `json:"total"`
	Restante     *decimal.Decimal `json:"restante,omitempty"`
	RegisteredAt time.Time        `json:"registered_at"`
}

// SaleItemDTO línea de venta con etiquetas de catálogo para listados.
type SaleItemDTO struct {
	ID          string          `json:"id"`
	VariantID   string          `json:"variant_id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Color       string          `json:"color"`
	Size        decimal.Decimal `json:"size"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
	Discount    decimal.Decimal `json:"discount"`
}

// ManualLineDTO línea manual en listados.
type ManualLineDTO struct {
	ID          string          `json:"id"`
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
	Color       string          `json:"color"`
	Size        string          `json:"size"`
	SKU         string          `json:"sku"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

// SaleResponse venta completa para GET /api/sales y GET /api/sales/:id.
type SaleResponse struct {
	ID             string           `json:"id"`
	SaleTimestamp  time.Time        `json:"sale_timestamp"`
	TotalAmount    decimal.Decimal  `json:"total_amount"`
	Notes          string           `json:"notes,omitempty"`
	CustomerID     *string          `json:"customer_id,omitempty"`
	IsApartado     bool             `json:"is_apartado"`
	Anticipo       *decimal.Decimal `json:"anticipo,omitempty"`
	Restante       *decimal.Decimal `json:"restante,omitempty"`
	ApartadoExpira *time.Time       `json:"apartado_expira,omitempty"`
	Items          []SaleItemDTO    `json:"items"`
	ManualLines    []ManualLineDTO  `json:"manual_lines,omitempty"`
}

// SaleListResponse listado de ventas de un período.
type SaleListResponse struct {
	From  time.Time       `json:"from"`
	To    time.Time       `json:"to"`
	Total decimal.Decimal `json:"total"`
	Sales []SaleResponse  `json:"sales"`
}
