package stock

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// VariantUseCase edición directa de variantes: sobreescritura de precio/stock
// y eliminación. Operan sobre el pool (sin transacción compuesta: cada una es
// una sola sentencia).
type VariantUseCase struct {
	variantRepo repository.VariantRepository
}

// NewVariantUseCase construye el caso de uso.
func NewVariantUseCase(variantRepo repository.VariantRepository) *VariantUseCase {
	return &VariantUseCase{variantRepo: variantRepo}
}

// GetByKey busca una variante por su clave natural (producto, color, talla).
// Es la consulta de la terminal de venta para verificar existencias y precio
// antes de agregar la línea al carrito.
func (uc *VariantUseCase) GetByKey(ctx context.Context, productID, color string, size decimal.Decimal) (*dto.VariantResponse, error) {
	if productID == "" || color == "" {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.GetByKey(ctx, productID, color, size)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return toVariantResponse(variant), nil
}

// Set sobreescribe los campos presentes (precio y/o stock) de la variante.
// No es delta: el valor enviado reemplaza al almacenado.
func (uc *VariantUseCase) Set(ctx context.Context, id string, in dto.SetVariantRequest) (*dto.VariantResponse, error) {
	if id == "" || (in.Price == nil && in.Stock == nil) {
		return nil, domain.ErrInvalidInput
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock != nil && *in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	variant, err := uc.variantRepo.Set(ctx, id, in.Price, in.Stock)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}
	return toVariantResponse(variant), nil
}

// Delete elimina la variante. Irreversible; las líneas de ventas históricas
// conservan su referencia a la fila ya inexistente.
func (uc *VariantUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}
	if err := uc.variantRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("variant_id", id).Msg("variante eliminada del inventario")
	return nil
}

func toVariantResponse(v *entity.Variant) *dto.VariantResponse {
	return &dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		Color:     v.Color,
		Size:      v.Size,
		Price:     v.Price,
		SKU:       v.SKU,
		Stock:     v.Stock,
	}
}
