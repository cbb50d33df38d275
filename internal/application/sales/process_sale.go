package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// ProcessSaleUseCase registra notas de venta de forma transaccional: bloquea
// cada variante (SELECT FOR UPDATE), valida disponibilidad de todo el carrito,
// descuenta stock e inserta cabecera y líneas con Commit/Rollback.
type ProcessSaleUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
}

// NewProcessSaleUseCase construye el caso de uso.
func NewProcessSaleUseCase(txRunner TxRunner, customerRepo repository.CustomerRepository) *ProcessSaleUseCase {
	return &ProcessSaleUseCase{txRunner: txRunner, customerRepo: customerRepo}
}

// ProcessSale valida el carrito y lo registra como una sola unidad atómica.
//
// Líneas validadas: cada variante se bloquea y se verifica disponibilidad; si
// alguna no alcanza, toda la venta se rechaza con InsufficientStockError
// nombrando cada faltante y sin descontar nada. Si alguna variante no existe,
// se rechaza con ErrNotFound.
//
// Líneas manuales ("vender de todos modos"): se registran como texto libre sin
// tocar inventario; cuentan para el total. Una venta puede ser solo manual.
func (uc *ProcessSaleUseCase) ProcessSale(ctx context.Context, in dto.ProcessSaleRequest) (*dto.ProcessSaleResponse, error) {
	if len(in.Items) == 0 && len(in.ManualItems) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.VariantID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if item.PriceAtSale.IsNegative() || item.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}
	for _, line := range in.ManualItems {
		if line.Brand == "" || line.Model == "" || line.Quantity <= 0 || line.PriceAtSale.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	saleTimestamp, err := resolveSaleTimestamp(in.SaleDate, time.Now())
	if err != nil {
		return nil, domain.ErrInvalidInput
	}

	total := computeTotal(in)
	if total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	sale := &entity.Sale{
		ID:            uuid.New().String(),
		SaleTimestamp: saleTimestamp,
		TotalAmount:   total,
		Notes:         in.Notes,
		CustomerID:    in.CustomerID,
		CreatedAt:     time.Now(),
	}

	if in.IsApartado {
		if err := uc.fillApartado(ctx, sale, in, total); err != nil {
			return nil, err
		}
	} else if in.CustomerID != nil {
		// Cliente opcional en venta normal; si viene, debe existir.
		if err := uc.checkCustomer(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
	}

	// Una sola transacción: bloquear, validar, descontar, insertar. Cualquier
	// error revierte todo (ningún descuento parcial queda visible).
	err = uc.txRunner.Run(ctx, func(variantRepo repository.VariantRepository, saleRepo repository.SaleRepository) error {
		if err := decrementCart(ctx, variantRepo, in.Items); err != nil {
			return err
		}
		if err := saleRepo.InsertSale(ctx, sale); err != nil {
			return err
		}
		for _, item := range in.Items {
			saleItem := &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				VariantID:   item.VariantID,
				Quantity:    item.Quantity,
				PriceAtSale: item.PriceAtSale,
				Discount:    item.Discount,
			}
			if err := saleRepo.InsertItem(ctx, saleItem); err != nil {
				return err
			}
		}
		for _, line := range in.ManualItems {
			manual := &entity.ManualSaleLine{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				Brand:       line.Brand,
				Model:       line.Model,
				Color:       line.Color,
				Size:        line.Size,
				SKU:         line.SKU,
				Quantity:    line.Quantity,
				PriceAtSale: line.PriceAtSale,
			}
			if err := saleRepo.InsertManualLine(ctx, manual); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("sale_id", sale.ID).
		Str("total", total.String()).
		Int("items", len(in.Items)).
		Int("manual_lines", len(in.ManualItems)).
		Bool("apartado", sale.IsApartado).
		Msg("venta registrada")

	return &dto.ProcessSaleResponse{
		SaleID:       sale.ID,
		Total:        total,
		Restante:     sale.Restante,
		RegisteredAt: sale.SaleTimestamp,
	}, nil
}

// decrementCart bloquea cada variante distinta en orden lexicográfico de ID,
// verifica disponibilidad del carrito completo y aplica los descuentos. Las cantidades de líneas repetidas
// de la misma variante se acumulan antes de validar.
func decrementCart(ctx context.Context, variantRepo repository.VariantRepository, items []dto.SaleLineRequest) error {
	if len(items) == 0 {
		return nil
	}

	requested := make(map[string]int)
	order := make([]string, 0, len(items))
	for _, item := range items {
		if _, seen := requested[item.VariantID]; !seen {
			order = append(order, item.VariantID)
		}
		requested[item.VariantID] += item.Quantity
	}
	// Orden canónico de bloqueo: dos ventas concurrentes con las mismas
	// variantes en distinto orden no se interbloquean.
	sort.Strings(order)

	var shortfalls []domain.StockShortfall
	for _, variantID := range order {
		variant, err := variantRepo.GetForUpdate(ctx, variantID)
		if err != nil {
			return err
		}
		if variant == nil {
			return fmt.Errorf("variante %s: %w", variantID, domain.ErrNotFound)
		}
		qty := requested[variantID]
		if int64(qty) > variant.Stock {
			shortfalls = append(shortfalls, domain.StockShortfall{
				VariantID: variantID,
				Requested: qty,
				Available: int(variant.Stock),
			})
		}
	}
	if len(shortfalls) > 0 {
		return &domain.InsufficientStockError{Shortfalls: shortfalls}
	}

	for _, variantID := range order {
		if err := variantRepo.DecrementStock(ctx, variantID, int64(requested[variantID])); err != nil {
			return err
		}
	}
	return nil
}

// fillApartado valida y completa los campos de apartado: requiere cliente,
// anticipo entre cero y el total, y calcula el restante.
func (uc *ProcessSaleUseCase) fillApartado(ctx context.Context, sale *entity.Sale, in dto.ProcessSaleRequest, total decimal.Decimal) error {
	if in.CustomerID == nil || in.Anticipo == nil {
		return domain.ErrInvalidInput
	}
	if in.Anticipo.IsNegative() || in.Anticipo.GreaterThan(total) {
		return domain.ErrInvalidInput
	}
	if err := uc.checkCustomer(ctx, *in.CustomerID); err != nil {
		return err
	}
	sale.IsApartado = true
	anticipo := *in.Anticipo
	restante := total.Sub(anticipo)
	sale.Anticipo = &anticipo
	sale.Restante = &restante
	if in.ApartadoExpira != nil {
		expira, err := time.Parse("2006-01-02", *in.ApartadoExpira)
		if err != nil {
			return domain.ErrInvalidInput
		}
		sale.ApartadoExpira = &expira
	}
	return nil
}

func (uc *ProcessSaleUseCase) checkCustomer(ctx context.Context, customerID string) error {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return domain.ErrNotFound
	}
	return nil
}

// resolveSaleTimestamp combina la fecha elegida por el operador (YYYY-MM-DD)
// con la hora actual; sin fecha se usa el instante actual.
func resolveSaleTimestamp(saleDate string, now time.Time) (time.Time, error) {
	if saleDate == "" {
		return now, nil
	}
	d, err := time.Parse("2006-01-02", saleDate)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year(), d.Month(), d.Day(), now.Hour(), now.Minute(), now.Second(), 0, now.Location()), nil
}

// computeTotal suma de subtotales: cantidad × precio - descuento en líneas
// validadas, cantidad × precio en líneas manuales.
func computeTotal(in dto.ProcessSaleRequest) decimal.Decimal {
	total := decimal.Zero
	for _, item := range in.Items {
		sub := item.PriceAtSale.Mul(decimal.NewFromInt(int64(item.Quantity))).Sub(item.Discount)
		total = total.Add(sub)
	}
	for _, line := range in.ManualItems {
		total = total.Add(line.PriceAtSale.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
