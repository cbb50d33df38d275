package sales

import (
	"context"

	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el descuento de stock y la
// inserción de la venta sean una sola unidad atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		variantRepo repository.VariantRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
