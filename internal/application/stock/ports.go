package stock

import (
	"context"

	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// IntakeTxRunner ejecuta un lote de entrada dentro de una transacción de BD,
// pasando repositorios atados a esa tx: la resolución de marca/producto y los
// upserts de variantes commitean o se revierten juntos.
type IntakeTxRunner interface {
	RunIntake(ctx context.Context, fn func(
		brandRepo repository.BrandRepository,
		productRepo repository.ProductRepository,
		variantRepo repository.VariantRepository,
	) error) error
}
