package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryFilterRequest query params de GET /api/inventory.
// Todos opcionales; los presentes se combinan con AND.
type InventoryFilterRequest struct {
	BrandID  string `query:"brand_id" validate:"omitempty,uuid"`
	Color    string `query:"color"`
	Category string `query:"category"`
	SizeMin  string `query:"size_min" validate:"omitempty,numeric"`
	SizeMax  string `query:"size_max" validate:"omitempty,numeric"`
	PriceMin string `query:"price_min" validate:"omitempty,numeric"`
	PriceMax string `query:"price_max" validate:"omitempty,numeric"`
}

// InventoryRowDTO fila del inventario.
type InventoryRowDTO struct {
	ID        string          `json:"id"`
	BrandName string          `json:"brand_name"`
	Model     string          `json:"model"`
	Color     string          `json:"color"`
	Size      decimal.Decimal `json:"size"`
	Category  string          `json:"category"`
	Price     decimal.Decimal `json:"price"`
	SKU       string          `json:"sku"`
	Stock     int64           `json:"stock"`
	CreatedAt time.Time       `json:"created_at"`
}

// InventorySummaryDTO totales del inventario filtrado.
type InventorySummaryDTO struct {
	TotalPairs int64           `json:"total_pairs"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// InventoryResponse respuesta de GET /api/inventory.
type InventoryResponse struct {
	Results []InventoryRowDTO   `json:"results"`
	Summary InventorySummaryDTO `json:"summary"`
}
