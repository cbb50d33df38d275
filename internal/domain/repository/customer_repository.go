package repository

import (
	"context"

	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Create retorna domain.ErrDuplicate si el teléfono ya está registrado.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	List(ctx context.Context) ([]*entity.Customer, error)
}
