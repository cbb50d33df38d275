// Package stock aplica lotes de entrada de inventario y la edición directa de
// variantes.
package stock

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	appcatalog "github.com/zapasoft/calzado-api/internal/application/catalog"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/catalog"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// IntakeUseCase aplica lotes de entrada de stock: resuelve o crea la marca y
// el producto, y hace upsert de cada variante con su delta, todo en una sola
// transacción. Un lote repetido con los mismos deltas suma ambos (no pierde
// actualizaciones bajo lotes concurrentes: el incremento es una sentencia
// atómica en el repositorio).
type IntakeUseCase struct {
	txRunner IntakeTxRunner
}

// NewIntakeUseCase construye el caso de uso.
func NewIntakeUseCase(txRunner IntakeTxRunner) *IntakeUseCase {
	return &IntakeUseCase{txRunner: txRunner}
}

// ApplyStockBatch valida el lote y lo aplica atómicamente.
// Reglas por línea: stock_change > 0 aplica el delta; == 0 se omite (no es
// error); < 0 se rechaza. La talla debe pertenecer al tallaje de la categoría.
// El precio de línea en nil usa el precio sugerido de mayoreo si se indicó
// (mayoreo × 1.7 + 20) y de lo contrario conserva el precio almacenado.
// El SKU vacío se deriva de marca/modelo/color/talla con el prefijo opcional.
func (uc *IntakeUseCase) ApplyStockBatch(ctx context.Context, in dto.StockBatchRequest) (*dto.StockBatchResponse, error) {
	if in.Brand == "" || in.Model == "" || len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidCategory(in.Category) {
		return nil, domain.ErrInvalidInput
	}
	var suggested *decimal.Decimal
	if in.WholesalePrice != nil {
		if in.WholesalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p := catalog.SuggestedRetailPrice(*in.WholesalePrice)
		suggested = &p
	}
	for _, line := range in.Lines {
		if line.StockChange < 0 {
			return nil, domain.ErrInvalidInput
		}
		if line.Color == "" || !catalog.ValidSize(in.Category, line.Size) {
			return nil, domain.ErrInvalidInput
		}
		if line.Price != nil && line.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	resp := &dto.StockBatchResponse{}

	err := uc.txRunner.RunIntake(ctx, func(
		brandRepo repository.BrandRepository,
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
	) error {
		brand, err := appcatalog.ResolveBrand(ctx, brandRepo, in.Brand)
		if err != nil {
			return err
		}
		product, err := appcatalog.ResolveProduct(ctx, productRepo, brand.ID, in.Model, in.Category)
		if err != nil {
			return err
		}
		resp.BrandID = brand.ID
		resp.ProductID = product.ID

		for _, line := range in.Lines {
			if line.StockChange == 0 {
				resp.SkippedLines++
				continue
			}
			price := line.Price
			if price == nil {
				price = suggested
			}
			var sku *string
			if line.SKU != "" {
				s := line.SKU
				sku = &s
			} else if price != nil {
				// variante posiblemente nueva: derivar la etiqueta SKU
				s := catalog.BuildSKU(in.SKUPrefix, brand.Name, product.Model, line.Color, line.Size)
				sku = &s
			}
			upsert := repository.VariantUpsert{
				ID:         uuid.New().String(),
				ProductID:  product.ID,
				Color:      line.Color,
				Size:       line.Size,
				Price:      price,
				SKU:        sku,
				StockDelta: line.StockChange,
			}
			if _, err := variantRepo.UpsertDelta(ctx, upsert); err != nil {
				return err
			}
			resp.AppliedLines++
			resp.TotalPairs += line.StockChange
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("product_id", resp.ProductID).
		Int("lines", resp.AppliedLines).
		Int64("pairs", resp.TotalPairs).
		Msg("lote de stock aplicado")

	return resp, nil
}
