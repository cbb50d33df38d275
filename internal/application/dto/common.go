package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ShortfallDTO faltante de stock de una variante dentro de una venta rechazada.
type ShortfallDTO struct {
	VariantID string `json:"variant_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Shortfall int    `json:"shortfall"`
}

// StockErrorResponse error de stock insuficiente con el detalle por variante.
type StockErrorResponse struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	Shortfalls []ShortfallDTO `json:"shortfalls"`
}
