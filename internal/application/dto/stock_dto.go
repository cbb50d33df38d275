package dto

import "github.com/shopspring/decimal"

// StockLineRequest línea de un lote de entrada de stock.
// Price en nil conserva el precio almacenado de la variante; SKU vacío se
// deriva de marca/modelo/color/talla.
type StockLineRequest struct {
	Color       string           `json:"color" validate:"required"`
	Size        decimal.Decimal  `json:"size" validate:"required"`
	StockChange int64            `json:"stock_change"`
	Price       *decimal.Decimal `json:"price,omitempty" validate:"omitempty,min=0"`
	SKU         string           `json:"sku,omitempty"`
}

// StockBatchRequest body para POST /api/stock/batches.
// DeclaredTotal es el total de pares declarado por el operador; debe coincidir
// con la suma de stock_change de las líneas (se valida antes de tocar la base).
type StockBatchRequest struct {
	Brand          string             `json:"brand" validate:"required"`
	Model          string             `json:"model" validate:"required"`
	Category       string             `json:"category" validate:"required"`
	SKUPrefix      string             `json:"sku_prefix,omitempty"`
	WholesalePrice *decimal.Decimal   `json:"wholesale_price,omitempty" validate:"omitempty,min=0"`
	DeclaredTotal  int64              `json:"declared_total" validate:"required,min=1"`
	Lines          []StockLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// LinesTotal suma de stock_change de las líneas del lote.
func (r StockBatchRequest) LinesTotal() int64 {
	var total int64
	for _, l := range r.Lines {
		total += l.StockChange
	}
	return total
}

// StockBatchResponse resultado de aplicar un lote.
type StockBatchResponse struct {
	BrandID      string `json:"brand_id"`
	ProductID    string `json:"product_id"`
	AppliedLines int    `json:"applied_lines"`
	SkippedLines int    `json:"skipped_lines"`
	TotalPairs   int64  `json:"total_pairs"`
}

// VariantLookupRequest query params de GET /api/variants/lookup: clave
// natural de la variante que la terminal de venta consulta antes de agregar
// la línea al carrito.
type VariantLookupRequest struct {
	ProductID string `query:"product_id" validate:"required,uuid"`
	Color     string `query:"color" validate:"required"`
	Size      string `query:"size" validate:"required,numeric"`
}

// SetVariantRequest body para PUT /api/variants/:id. Sobreescritura completa
// de los campos presentes (no es delta).
type SetVariantRequest struct {
	Price *decimal.Decimal `json:"price,omitempty" validate:"omitempty,min=0"`
	Stock *int64           `json:"stock,omitempty" validate:"omitempty,min=0"`
}

// VariantResponse variante para respuestas HTTP.
type VariantResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Color     string          `json:"color"`
	Size      decimal.Decimal `json:"size"`
	Price     decimal.Decimal `json:"price"`
	SKU       string          `json:"sku"`
	Stock     int64           `json:"stock"`
}
