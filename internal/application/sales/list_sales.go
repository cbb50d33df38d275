package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// ListSalesUseCase lecturas del historial de ventas para el tablero.
type ListSalesUseCase struct {
	saleRepo repository.SaleRepository
}

// NewListSalesUseCase construye el caso de uso.
func NewListSalesUseCase(saleRepo repository.SaleRepository) *ListSalesUseCase {
	return &ListSalesUseCase{saleRepo: saleRepo}
}

// PeriodRange traduce un período preseleccionado a un rango [from, to].
// today = desde la medianoche de hoy; week = desde el domingo de esta semana;
// month = desde el día 1; year = desde el 1 de enero. to siempre es now.
func PeriodRange(period string, now time.Time) (from, to time.Time, err error) {
	start := now
	switch period {
	case "today", "":
	case "week":
		start = now.AddDate(0, 0, -int(now.Weekday()))
	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "year":
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	default:
		return time.Time{}, time.Time{}, domain.ErrInvalidInput
	}
	from = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
	return from, now, nil
}

// ListByPeriod lista las ventas del período con sus líneas (validadas y
// manuales) y el total acumulado.
func (uc *ListSalesUseCase) ListByPeriod(ctx context.Context, period string) (*dto.SaleListResponse, error) {
	from, to, err := PeriodRange(period, time.Now())
	if err != nil {
		return nil, err
	}
	return uc.ListByRange(ctx, from, to)
}

// ListByRange lista las ventas en [from, to].
func (uc *ListSalesUseCase) ListByRange(ctx context.Context, from, to time.Time) (*dto.SaleListResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.saleRepo.ListByPeriod(ctx, from, to)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{
		From:  from,
		To:    to,
		Total: decimal.Zero,
		Sales: make([]dto.SaleResponse, 0, len(list)),
	}
	for _, s := range list {
		resp.Total = resp.Total.Add(s.Sale.TotalAmount)
		resp.Sales = append(resp.Sales, toSaleResponse(s))
	}
	return resp, nil
}

// GetByID devuelve una venta completa.
func (uc *ListSalesUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

func toSaleResponse(s *repository.SaleWithLines) dto.SaleResponse {
	resp := dto.SaleResponse{
		ID:             s.Sale.ID,
		SaleTimestamp:  s.Sale.SaleTimestamp,
		TotalAmount:    s.Sale.TotalAmount,
		Notes:          s.Sale.Notes,
		CustomerID:     s.Sale.CustomerID,
		IsApartado:     s.Sale.IsApartado,
		Anticipo:       s.Sale.Anticipo,
		Restante:       s.Sale.Restante,
		ApartadoExpira: s.Sale.ApartadoExpira,
		Items:          make([]dto.SaleItemDTO, 0, len(s.Items)),
	}
	for _, it := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemDTO{
			ID:          it.ID,
			VariantID:   it.VariantID,
			Brand:       it.BrandName,
			Model:       it.Model,
			Color:       it.Color,
			Size:        it.Size,
			SKU:         it.SKU,
			Quantity:    it.Quantity,
			PriceAtSale: it.PriceAtSale,
			Discount:    it.Discount,
		})
	}
	for _, ml := range s.ManualLines {
		resp.ManualLines = append(resp.ManualLines, dto.ManualLineDTO{
			ID:          ml.ID,
			Brand:       ml.Brand,
			Model:       ml.Model,
			Color:       ml.Color,
			Size:        ml.Size,
			SKU:         ml.SKU,
			Quantity:    ml.Quantity,
			PriceAtSale: ml.PriceAtSale,
		})
	}
	return resp
}
