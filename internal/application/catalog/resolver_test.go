package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapasoft/calzado-api/internal/application/catalog"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubBrandRepo struct {
	brands map[string]*entity.Brand // por name_folded

	// blindLookups fuerza que las primeras N lecturas por nombre devuelvan nil
	// aunque la fila exista (simula la carrera lectura → insert → releer).
	blindLookups int
}

func newStubBrandRepo() *stubBrandRepo {
	return &stubBrandRepo{brands: make(map[string]*entity.Brand)}
}

func (r *stubBrandRepo) Insert(_ context.Context, b *entity.Brand) error {
	if _, ok := r.brands[b.NameFolded]; ok {
		return domain.ErrDuplicate
	}
	r.brands[b.NameFolded] = b
	return nil
}

func (r *stubBrandRepo) GetByID(_ context.Context, id string) (*entity.Brand, error) {
	for _, b := range r.brands {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, nil
}

func (r *stubBrandRepo) GetByFoldedName(_ context.Context, folded string) (*entity.Brand, error) {
	if r.blindLookups > 0 {
		r.blindLookups--
		return nil, nil
	}
	b, ok := r.brands[folded]
	if !ok {
		return nil, nil
	}
	return b, nil
}

func (r *stubBrandRepo) List(_ context.Context) ([]*entity.Brand, error) {
	var out []*entity.Brand
	for _, b := range r.brands {
		out = append(out, b)
	}
	return out, nil
}

type productKey struct{ brandID, modelFolded string }

type stubProductRepo struct {
	products map[productKey]*entity.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[productKey]*entity.Product)}
}

func (r *stubProductRepo) Insert(_ context.Context, p *entity.Product) error {
	k := productKey{p.BrandID, p.ModelFolded}
	if _, ok := r.products[k]; ok {
		return domain.ErrDuplicate
	}
	r.products[k] = p
	return nil
}

func (r *stubProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *stubProductRepo) GetByBrandAndModel(_ context.Context, brandID, modelFolded string) (*entity.Product, error) {
	p, ok := r.products[productKey{brandID, modelFolded}]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *stubProductRepo) ListByBrand(_ context.Context, brandID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.products {
		if p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func newResolver() (*catalog.Resolver, *stubBrandRepo, *stubProductRepo) {
	brands := newStubBrandRepo()
	products := newStubProductRepo()
	return catalog.NewResolver(brands, products), brands, products
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: marcas
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveBrand_CreaYLuegoResuelve(t *testing.T) {
	r, brands, _ := newResolver()
	ctx := context.Background()

	first, err := r.ResolveOrCreateBrand(ctx, "Nike")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Nike", first.Name, "se conserva la forma original del nombre")
	assert.Equal(t, "nike", first.NameFolded)

	second, err := r.ResolveOrCreateBrand(ctx, "Nike")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "resolve-or-create es idempotente")
	assert.Len(t, brands.brands, 1)
}

func TestResolveBrand_MayusculasYAcentos_MismaMarca(t *testing.T) {
	r, brands, _ := newResolver()
	ctx := context.Background()

	first, err := r.ResolveOrCreateBrand(ctx, "Niña Bonita")
	require.NoError(t, err)

	for _, variant := range []string{"NIÑA BONITA", "nina bonita", "  Niña  Bonita "} {
		got, err := r.ResolveOrCreateBrand(ctx, variant)
		require.NoError(t, err, "variante %q", variant)
		assert.Equal(t, first.ID, got.ID, "%q debe resolver a la misma marca", variant)
	}
	assert.Len(t, brands.brands, 1)
}

func TestResolveBrand_NombreVacio_Rechazado(t *testing.T) {
	r, _, _ := newResolver()
	_, err := r.ResolveOrCreateBrand(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveBrand_CarreraConOtroLlamador_ReleeLaFilaGanadora(t *testing.T) {
	brands := newStubBrandRepo()
	r := catalog.NewResolver(brands, newStubProductRepo())
	ctx := context.Background()

	// El "otro llamador" ya insertó la marca, pero nuestra primera lectura no
	// la ve todavía: el insert choca con el único y se relee.
	winner := &entity.Brand{ID: "brand-winner", Name: "Nike", NameFolded: "nike"}
	brands.brands["nike"] = winner
	brands.blindLookups = 1

	got, err := r.ResolveOrCreateBrand(ctx, "Nike")
	require.NoError(t, err, "ErrDuplicate nunca debe llegar al caller")
	assert.Equal(t, "brand-winner", got.ID, "debe devolver la fila que ganó la carrera")
	assert.Len(t, brands.brands, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: productos
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveProduct_CreaConCategoria(t *testing.T) {
	r, _, products := newResolver()
	ctx := context.Background()

	p, err := r.ResolveOrCreateProduct(ctx, "brand-1", "Air Max", entity.CategoryCaballero)
	require.NoError(t, err)
	assert.Equal(t, "Air Max", p.Model)
	assert.Equal(t, "air max", p.ModelFolded)
	assert.Equal(t, entity.CategoryCaballero, p.Category)
	assert.Len(t, products.products, 1)
}

func TestResolveProduct_ExistenteNoSobreescribeCategoria(t *testing.T) {
	r, _, _ := newResolver()
	ctx := context.Background()

	first, err := r.ResolveOrCreateProduct(ctx, "brand-1", "Air Max", entity.CategoryCaballero)
	require.NoError(t, err)

	// Mismo modelo llega después con otra categoría: se conserva la original.
	second, err := r.ResolveOrCreateProduct(ctx, "brand-1", "AIR MAX", entity.CategoryDama)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, entity.CategoryCaballero, second.Category)
}

func TestResolveProduct_MismoModeloOtraMarca_SonDistintos(t *testing.T) {
	r, _, products := newResolver()
	ctx := context.Background()

	p1, err := r.ResolveOrCreateProduct(ctx, "brand-1", "Air Max", entity.CategoryCaballero)
	require.NoError(t, err)
	p2, err := r.ResolveOrCreateProduct(ctx, "brand-2", "Air Max", entity.CategoryCaballero)
	require.NoError(t, err)

	assert.NotEqual(t, p1.ID, p2.ID, "el modelo es único por marca, no global")
	assert.Len(t, products.products, 2)
}

func TestResolveProduct_CategoriaInvalida_Rechazada(t *testing.T) {
	r, _, _ := newResolver()
	_, err := r.ResolveOrCreateProduct(context.Background(), "brand-1", "Air Max", "unisex")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListModels_SinMarca_Rechazado(t *testing.T) {
	r, _, _ := newResolver()
	_, err := r.ListModels(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
