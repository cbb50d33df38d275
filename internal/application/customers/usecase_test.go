package customers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapasoft/calzado-api/internal/application/customers"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

type stubCustomerRepo struct {
	customers map[string]*entity.Customer // por teléfono

	// blindLookups fuerza que las primeras N lecturas por teléfono devuelvan
	// nil aunque la fila exista (simula la carrera entre dos altas).
	blindLookups int
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	if _, ok := r.customers[c.Phone]; ok {
		return domain.ErrDuplicate
	}
	r.customers[c.Phone] = c
	return nil
}

func (r *stubCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (r *stubCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	if r.blindLookups > 0 {
		r.blindLookups--
		return nil, nil
	}
	c, ok := r.customers[phone]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateCustomer_NormalizaTelefono(t *testing.T) {
	repo := newStubCustomerRepo()
	uc := customers.NewCustomerUseCase(repo)

	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
		Name:  "  Ana López ",
		Phone: "(55) 1234-5678",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ana López", resp.Name)
	assert.Equal(t, "5512345678", resp.Phone, "el teléfono se guarda solo con dígitos")
}

func TestCreateCustomer_MismoTelefonoConFormato_DevuelveElExistente(t *testing.T) {
	repo := newStubCustomerRepo()
	uc := customers.NewCustomerUseCase(repo)
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", Phone: "5512345678"})
	require.NoError(t, err)

	second, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana L.", Phone: "55 12 34 56 78"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "alta idempotente por teléfono")
	assert.Len(t, repo.customers, 1)
}

func TestCreateCustomer_CarreraConOtraAlta_ReleeLaFilaGanadora(t *testing.T) {
	repo := newStubCustomerRepo()
	uc := customers.NewCustomerUseCase(repo)

	winner := &entity.Customer{ID: "cli-winner", Name: "Ana", Phone: "5512345678"}
	repo.customers[winner.Phone] = winner
	repo.blindLookups = 1

	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana", Phone: "5512345678"})
	require.NoError(t, err)
	assert.Equal(t, "cli-winner", resp.ID)
}

func TestCreateCustomer_SinNombreOTelefono_Rechazado(t *testing.T) {
	uc := customers.NewCustomerUseCase(newStubCustomerRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateCustomerRequest{Name: "", Phone: "5512345678"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateCustomerRequest{Name: "Ana", Phone: "sin numeros"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "teléfono sin dígitos queda vacío tras normalizar")
}
