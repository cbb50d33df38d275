// Package inventory consulta el inventario actual con filtros combinables y
// resumen de totales.
package inventory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// QueryUseCase agrega el inventario filtrado: filas con etiquetas de catálogo
// y resumen total_pairs / total_value. Sin coincidencias devuelve lista vacía
// y resumen en ceros, nunca error.
type QueryUseCase struct {
	queryRepo repository.InventoryQueryRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(queryRepo repository.InventoryQueryRepository) *QueryUseCase {
	return &QueryUseCase{queryRepo: queryRepo}
}

// Query aplica los filtros (AND lógico; ausente = sin restricción) y devuelve
// filas + resumen.
func (uc *QueryUseCase) Query(ctx context.Context, in dto.InventoryFilterRequest) (*dto.InventoryResponse, error) {
	filters, err := toFilters(in)
	if err != nil {
		return nil, err
	}
	rows, summary, err := uc.queryRepo.Query(ctx, filters)
	if err != nil {
		return nil, err
	}
	resp := &dto.InventoryResponse{
		Results: make([]dto.InventoryRowDTO, 0, len(rows)),
		Summary: dto.InventorySummaryDTO{
			TotalPairs: summary.TotalPairs,
			TotalValue: summary.TotalValue,
		},
	}
	for _, r := range rows {
		resp.Results = append(resp.Results, dto.InventoryRowDTO{
			ID:        r.ID,
			BrandName: r.BrandName,
			Model:     r.Model,
			Color:     r.Color,
			Size:      r.Size,
			Category:  r.Category,
			Price:     r.Price,
			SKU:       r.SKU,
			Stock:     r.Stock,
			CreatedAt: r.CreatedAt,
		})
	}
	return resp, nil
}

// toFilters convierte los query params (cadenas) a filtros tipados.
// Cadena vacía = dimensión sin restricción.
func toFilters(in dto.InventoryFilterRequest) (repository.InventoryFilters, error) {
	var f repository.InventoryFilters
	if in.BrandID != "" {
		f.BrandID = &in.BrandID
	}
	if in.Color != "" {
		f.Color = &in.Color
	}
	if in.Category != "" {
		f.Category = &in.Category
	}
	var err error
	if f.SizeMin, err = parseDecimal(in.SizeMin); err != nil {
		return f, err
	}
	if f.SizeMax, err = parseDecimal(in.SizeMax); err != nil {
		return f, err
	}
	if f.PriceMin, err = parseDecimal(in.PriceMin); err != nil {
		return f, err
	}
	if f.PriceMax, err = parseDecimal(in.PriceMax); err != nil {
		return f, err
	}
	return f, nil
}

func parseDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return &d, nil
}
