package repository

import (
	"context"

	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Insert retorna domain.ErrDuplicate si (brand_id, modelo normalizado) ya existe.
type ProductRepository interface {
	Insert(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBrandAndModel(ctx context.Context, brandID, modelFolded string) (*entity.Product, error)
	ListByBrand(ctx context.Context, brandID string) ([]*entity.Product, error)
}
