// Package customers administra los clientes de la tienda (requeridos para
// apartados, opcionales en ventas de contado).
package customers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
	"github.com/zapasoft/calzado-api/pkg/normalize"
)

// CustomerUseCase altas y listados de clientes. El teléfono se normaliza a
// solo dígitos antes de persistir y es único: dos altas con el mismo teléfono
// (con o sin formato) devuelven el mismo cliente.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo}
}

// Create registra un cliente. Si el teléfono ya existe devuelve el cliente
// existente (alta idempotente por teléfono).
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	name := strings.TrimSpace(in.Name)
	phone := normalize.Digits(in.Phone)
	if name == "" || phone == "" {
		return nil, domain.ErrInvalidInput
	}

	if existing, err := uc.customerRepo.GetByPhone(ctx, phone); err != nil {
		return nil, err
	} else if existing != nil {
		return toCustomerResponse(existing), nil
	}

	customer := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
	err := uc.customerRepo.Create(ctx, customer)
	if errors.Is(err, domain.ErrDuplicate) {
		// carrera con otra alta del mismo teléfono: releer la fila ganadora
		existing, rerr := uc.customerRepo.GetByPhone(ctx, phone)
		if rerr != nil {
			return nil, rerr
		}
		if existing != nil {
			return toCustomerResponse(existing), nil
		}
	}
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// List lista todos los clientes.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
	}
}
