package repository

import (
	"context"

	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// BrandRepository define el puerto de persistencia para Brand (DIP).
// Insert retorna domain.ErrDuplicate si la clave normalizada ya existe;
// los Get* retornan (nil, nil) cuando no hay fila.
type BrandRepository interface {
	Insert(ctx context.Context, brand *entity.Brand) error
	GetByID(ctx context.Context, id string) (*entity.Brand, error)
	GetByFoldedName(ctx context.Context, folded string) (*entity.Brand, error)
	List(ctx context.Context) ([]*entity.Brand, error)
}
