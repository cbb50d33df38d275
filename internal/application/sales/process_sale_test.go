package sales_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/application/sales"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubVariantRepo struct {
	variants  map[string]*entity.Variant
	lockOrder []string
}

func newStubVariantRepo() *stubVariantRepo {
	return &stubVariantRepo{variants: make(map[string]*entity.Variant)}
}

func (r *stubVariantRepo) snapshot() map[string]entity.Variant {
	snap := make(map[string]entity.Variant, len(r.variants))
	for id, v := range r.variants {
		snap[id] = *v
	}
	return snap
}

func (r *stubVariantRepo) restore(snap map[string]entity.Variant) {
	r.variants = make(map[string]*entity.Variant, len(snap))
	for id, v := range snap {
		vv := v
		r.variants[id] = &vv
	}
}

func (r *stubVariantRepo) GetByID(_ context.Context, id string) (*entity.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	return v, nil
}

func (r *stubVariantRepo) GetByKey(_ context.Context, productID, color string, size decimal.Decimal) (*entity.Variant, error) {
	for _, v := range r.variants {
		if v.ProductID == productID && v.Color == color && v.Size.Equal(size) {
			return v, nil
		}
	}
	return nil, nil
}

func (r *stubVariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	r.lockOrder = append(r.lockOrder, id)
	return r.GetByID(ctx, id)
}

func (r *stubVariantRepo) UpsertDelta(_ context.Context, in repository.VariantUpsert) (*entity.Variant, error) {
	for _, v := range r.variants {
		if v.ProductID == in.ProductID && v.Color == in.Color && v.Size.Equal(in.Size) {
			v.Stock += in.StockDelta
			if in.Price != nil {
				v.Price = *in.Price
			}
			if in.SKU != nil {
				v.SKU = *in.SKU
			}
			return v, nil
		}
	}
	v := &entity.Variant{ID: in.ID, ProductID: in.ProductID, Color: in.Color, Size: in.Size, Stock: in.StockDelta}
	if in.Price != nil {
		v.Price = *in.Price
	}
	if in.SKU != nil {
		v.SKU = *in.SKU
	}
	r.variants[v.ID] = v
	return v, nil
}

func (r *stubVariantRepo) DecrementStock(_ context.Context, id string, qty int64) error {
	v, ok := r.variants[id]
	if !ok {
		return domain.ErrNotFound
	}
	v.Stock -= qty
	return nil
}

func (r *stubVariantRepo) Set(_ context.Context, id string, price *decimal.Decimal, stock *int64) (*entity.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return nil, nil
	}
	if price != nil {
		v.Price = *price
	}
	if stock != nil {
		v.Stock = *stock
	}
	return v, nil
}

func (r *stubVariantRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.variants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.variants, id)
	return nil
}

type stubSaleRepo struct {
	sales       []entity.Sale
	items       []entity.SaleItem
	manualLines []entity.ManualSaleLine

	failInsertItem bool
}

func (r *stubSaleRepo) snapshot() (int, int, int) {
	return len(r.sales), len(r.items), len(r.manualLines)
}

func (r *stubSaleRepo) restore(nSales, nItems, nManual int) {
	r.sales = r.sales[:nSales]
	r.items = r.items[:nItems]
	r.manualLines = r.manualLines[:nManual]
}

func (r *stubSaleRepo) InsertSale(_ context.Context, sale *entity.Sale) error {
	r.sales = append(r.sales, *sale)
	return nil
}

func (r *stubSaleRepo) InsertItem(_ context.Context, item *entity.SaleItem) error {
	if r.failInsertItem {
		return errors.New("insert sale item: fallo simulado")
	}
	r.items = append(r.items, *item)
	return nil
}

func (r *stubSaleRepo) InsertManualLine(_ context.Context, line *entity.ManualSaleLine) error {
	r.manualLines = append(r.manualLines, *line)
	return nil
}

func (r *stubSaleRepo) GetByID(_ context.Context, id string) (*repository.SaleWithLines, error) {
	for _, s := range r.sales {
		if s.ID == id {
			return r.withLines(s), nil
		}
	}
	return nil, nil
}

func (r *stubSaleRepo) ListByPeriod(_ context.Context, from, to time.Time) ([]*repository.SaleWithLines, error) {
	var out []*repository.SaleWithLines
	for _, s := range r.sales {
		if !s.SaleTimestamp.Before(from) && s.SaleTimestamp.Before(to) {
			out = append(out, r.withLines(s))
		}
	}
	return out, nil
}

func (r *stubSaleRepo) withLines(s entity.Sale) *repository.SaleWithLines {
	sale := &repository.SaleWithLines{Sale: s}
	for _, it := range r.items {
		if it.SaleID == s.ID {
			sale.Items = append(sale.Items, repository.SaleItemRow{SaleItem: it})
		}
	}
	for _, l := range r.manualLines {
		if l.SaleID == s.ID {
			sale.ManualLines = append(sale.ManualLines, l)
		}
	}
	return sale
}

// stubTxRunner simula la semántica transaccional: si fn falla, restaura el
// estado previo de los stubs (rollback).
type stubTxRunner struct {
	variants *stubVariantRepo
	sales    *stubSaleRepo
}

func (r *stubTxRunner) Run(_ context.Context, fn func(repository.VariantRepository, repository.SaleRepository) error) error {
	varSnap := r.variants.snapshot()
	nSales, nItems, nManual := r.sales.snapshot()
	if err := fn(r.variants, r.sales); err != nil {
		r.variants.restore(varSnap)
		r.sales.restore(nSales, nItems, nManual)
		return err
	}
	return nil
}

type stubCustomerRepo struct {
	customers map[string]*entity.Customer
}

func newStubCustomerRepo() *stubCustomerRepo {
	return &stubCustomerRepo{customers: make(map[string]*entity.Customer)}
}

func (r *stubCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	for _, existing := range r.customers {
		if existing.Phone == c.Phone {
			return domain.ErrDuplicate
		}
	}
	r.customers[c.ID] = c
	return nil
}

func (r *stubCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

func (r *stubCustomerRepo) GetByPhone(_ context.Context, phone string) (*entity.Customer, error) {
	for _, c := range r.customers {
		if c.Phone == phone {
			return c, nil
		}
	}
	return nil, nil
}

func (r *stubCustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.customers {
		out = append(out, c)
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func seedVariant(repo *stubVariantRepo, id string, stock int64, price string) {
	repo.variants[id] = &entity.Variant{
		ID:        id,
		ProductID: "prod-1",
		Color:     "negro",
		Size:      dec("27"),
		Price:     dec(price),
		Stock:     stock,
	}
}

func newSaleFixture() (*sales.ProcessSaleUseCase, *stubVariantRepo, *stubSaleRepo, *stubCustomerRepo) {
	variants := newStubVariantRepo()
	saleRepo := &stubSaleRepo{}
	customers := newStubCustomerRepo()
	runner := &stubTxRunner{variants: variants, sales: saleRepo}
	uc := sales.NewProcessSaleUseCase(runner, customers)
	return uc, variants, saleRepo, customers
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: ProcessSale
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessSale_DescuentaStockYRegistra(t *testing.T) {
	uc, variants, saleRepo, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "870")

	resp, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: 3, PriceAtSale: dec("870"), Discount: dec("0")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, int64(7), variants.variants["var-1"].Stock,
		"la venta debe descontar exactamente la cantidad vendida")
	require.Len(t, saleRepo.sales, 1)
	require.Len(t, saleRepo.items, 1)
	assert.True(t, resp.Total.Equal(dec("2610")), "total = 3 × 870")
	assert.Equal(t, saleRepo.sales[0].ID, resp.SaleID)
}

func TestProcessSale_StockInsuficiente_NoDescuentaNada(t *testing.T) {
	uc, variants, saleRepo, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "870")
	variants.variants["var-2"] = &entity.Variant{ID: "var-2", ProductID: "prod-1", Color: "rojo", Size: dec("25"), Price: dec("500"), Stock: 1}

	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: 2, PriceAtSale: dec("870")},
			{VariantID: "var-2", Quantity: 3, PriceAtSale: dec("500")},
		},
	})
	require.Error(t, err)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	require.Len(t, stockErr.Shortfalls, 1, "solo var-2 está corta")
	assert.Equal(t, "var-2", stockErr.Shortfalls[0].VariantID)
	assert.Equal(t, 3, stockErr.Shortfalls[0].Requested)
	assert.Equal(t, 1, stockErr.Shortfalls[0].Available)
	assert.Equal(t, 2, stockErr.Shortfalls[0].Shortfall())

	// Nada se descuenta ni se inserta: la transacción completa se revierte.
	assert.Equal(t, int64(10), variants.variants["var-1"].Stock)
	assert.Equal(t, int64(1), variants.variants["var-2"].Stock)
	assert.Empty(t, saleRepo.sales)
	assert.Empty(t, saleRepo.items)
}

func TestProcessSale_LineasRepetidasMismaVariante_SeAcumulan(t *testing.T) {
	uc, variants, _, _ := newSaleFixture()
	seedVariant(variants, "var-1", 5, "870")

	// 3 + 3 = 6 > 5: debe rechazarse aunque cada línea por separado alcance.
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: 3, PriceAtSale: dec("870")},
			{VariantID: "var-1", Quantity: 3, PriceAtSale: dec("870")},
		},
	})
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	require.Len(t, stockErr.Shortfalls, 1)
	assert.Equal(t, 6, stockErr.Shortfalls[0].Requested)
	assert.Equal(t, int64(5), variants.variants["var-1"].Stock)
}

func TestProcessSale_BloqueaVariantesEnOrdenCanonico(t *testing.T) {
	uc, variants, _, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "870")
	variants.variants["var-2"] = &entity.Variant{ID: "var-2", ProductID: "prod-1", Color: "rojo", Size: dec("25"), Price: dec("500"), Stock: 10}

	// Carrito en orden inverso: el bloqueo debe seguir el orden lexicográfico
	// de ID para que dos ventas concurrentes no se interbloqueen.
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-2", Quantity: 1, PriceAtSale: dec("500")},
			{VariantID: "var-1", Quantity: 1, PriceAtSale: dec("870")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"var-1", "var-2"}, variants.lockOrder)
}

func TestProcessSale_VarianteInexistente_RetornaNotFound(t *testing.T) {
	uc, _, saleRepo, _ := newSaleFixture()

	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "no-existe", Quantity: 1, PriceAtSale: dec("100")},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, saleRepo.sales)
}

func TestProcessSale_SoloLineasManuales_NoTocaInventario(t *testing.T) {
	uc, variants, saleRepo, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "870")

	resp, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		ManualItems: []dto.ManualLineRequest{
			{Brand: "Generica", Model: "Sandalia", Quantity: 2, PriceAtSale: dec("150")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), variants.variants["var-1"].Stock, "las líneas manuales no afectan stock")
	require.Len(t, saleRepo.sales, 1)
	require.Len(t, saleRepo.manualLines, 1)
	assert.Empty(t, saleRepo.items)
	assert.True(t, resp.Total.Equal(dec("300")))
}

func TestProcessSale_TotalConDescuentoYManuales(t *testing.T) {
	uc, variants, _, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "870")

	resp, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: 2, PriceAtSale: dec("870"), Discount: dec("40")},
		},
		ManualItems: []dto.ManualLineRequest{
			{Brand: "Generica", Model: "Agujetas", Quantity: 1, PriceAtSale: dec("30")},
		},
	})
	require.NoError(t, err)
	// (2 × 870 - 40) + (1 × 30) = 1730
	assert.True(t, resp.Total.Equal(dec("1730")), "total = %s", resp.Total)
}

func TestProcessSale_CarritoVacio_Rechazado(t *testing.T) {
	uc, _, _, _ := newSaleFixture()
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessSale_FechaElegida_ConservaHoraActual(t *testing.T) {
	uc, variants, saleRepo, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "870")

	before := time.Now()
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: 1, PriceAtSale: dec("870")},
		},
		SaleDate: "2026-01-15",
	})
	require.NoError(t, err)

	ts := saleRepo.sales[0].SaleTimestamp
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, time.January, ts.Month())
	assert.Equal(t, 15, ts.Day())
	// La hora viene del reloj, no de medianoche.
	assert.Equal(t, before.Hour(), ts.Hour())
}

func TestProcessSale_RollbackSiFallaUnInsert(t *testing.T) {
	uc, variants, saleRepo, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "870")
	saleRepo.failInsertItem = true

	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: 2, PriceAtSale: dec("870")},
		},
	})
	require.Error(t, err)

	assert.Equal(t, int64(10), variants.variants["var-1"].Stock,
		"el rollback debe restaurar el stock descontado")
	assert.Empty(t, saleRepo.sales, "la cabecera insertada también se revierte")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: apartados
// ──────────────────────────────────────────────────────────────────────────────

func TestProcessSale_Apartado_CalculaRestante(t *testing.T) {
	uc, variants, saleRepo, customers := newSaleFixture()
	seedVariant(variants, "var-1", 10, "1000")
	customers.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Ana", Phone: "5512345678"}

	customerID := "cli-1"
	anticipo := dec("400")
	expira := "2026-09-30"
	resp, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items: []dto.SaleLineRequest{
			{VariantID: "var-1", Quantity: 1, PriceAtSale: dec("1000")},
		},
		CustomerID:     &customerID,
		IsApartado:     true,
		Anticipo:       &anticipo,
		ApartadoExpira: &expira,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.Restante)
	assert.True(t, resp.Restante.Equal(dec("600")), "restante = total - anticipo")

	sale := saleRepo.sales[0]
	assert.True(t, sale.IsApartado)
	require.NotNil(t, sale.Anticipo)
	assert.True(t, sale.Anticipo.Equal(dec("400")))
	require.NotNil(t, sale.ApartadoExpira)
	assert.Equal(t, 30, sale.ApartadoExpira.Day())
	// El apartado también descuenta stock: el par queda reservado.
	assert.Equal(t, int64(9), variants.variants["var-1"].Stock)
}

func TestProcessSale_Apartado_SinCliente_Rechazado(t *testing.T) {
	uc, variants, _, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "1000")

	anticipo := dec("400")
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{VariantID: "var-1", Quantity: 1, PriceAtSale: dec("1000")}},
		IsApartado: true,
		Anticipo:   &anticipo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessSale_Apartado_AnticipoMayorAlTotal_Rechazado(t *testing.T) {
	uc, variants, _, customers := newSaleFixture()
	seedVariant(variants, "var-1", 10, "1000")
	customers.customers["cli-1"] = &entity.Customer{ID: "cli-1", Name: "Ana", Phone: "5512345678"}

	customerID := "cli-1"
	anticipo := dec("1500")
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{VariantID: "var-1", Quantity: 1, PriceAtSale: dec("1000")}},
		CustomerID: &customerID,
		IsApartado: true,
		Anticipo:   &anticipo,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProcessSale_ClienteInexistente_Rechazado(t *testing.T) {
	uc, variants, _, _ := newSaleFixture()
	seedVariant(variants, "var-1", 10, "1000")

	customerID := "fantasma"
	_, err := uc.ProcessSale(context.Background(), dto.ProcessSaleRequest{
		Items:      []dto.SaleLineRequest{{VariantID: "var-1", Quantity: 1, PriceAtSale: dec("1000")}},
		CustomerID: &customerID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
