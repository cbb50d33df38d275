// Package catalog resuelve o crea marcas y productos por su clave natural,
// sin duplicados aun con llamadores concurrentes.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
	"github.com/zapasoft/calzado-api/pkg/normalize"
)

// Resolver caso de uso del catálogo: resolve-or-create idempotente de Brand y
// Product. La carrera entre dos llamadores creando la misma clave se resuelve
// con el patrón insert-luego-releer: el constraint único decide el ganador y
// el perdedor relee la fila existente; ErrDuplicate nunca llega al caller.
type Resolver struct {
	brandRepo   repository.BrandRepository
	productRepo repository.ProductRepository
}

// NewResolver construye el caso de uso con repos atados al pool.
func NewResolver(brandRepo repository.BrandRepository, productRepo repository.ProductRepository) *Resolver {
	return &Resolver{brandRepo: brandRepo, productRepo: productRepo}
}

// ResolveOrCreateBrand devuelve la marca con ese nombre (ignorando mayúsculas
// y acentos) o la crea si no existe.
func (r *Resolver) ResolveOrCreateBrand(ctx context.Context, name string) (*entity.Brand, error) {
	return ResolveBrand(ctx, r.brandRepo, name)
}

// ResolveOrCreateProduct devuelve el producto (marca, modelo) o lo crea con la
// categoría dada. La categoría de un producto existente NO se sobreescribe.
func (r *Resolver) ResolveOrCreateProduct(ctx context.Context, brandID, model, category string) (*entity.Product, error) {
	return ResolveProduct(ctx, r.productRepo, brandID, model, category)
}

// ListBrands lista las marcas para autocompletado (consulta bajo demanda, sin
// caché del lado del cliente).
func (r *Resolver) ListBrands(ctx context.Context) ([]*entity.Brand, error) {
	return r.brandRepo.List(ctx)
}

// ListModels lista los modelos de una marca para autocompletado.
func (r *Resolver) ListModels(ctx context.Context, brandID string) ([]*entity.Product, error) {
	if brandID == "" {
		return nil, domain.ErrInvalidInput
	}
	return r.productRepo.ListByBrand(ctx, brandID)
}

// ResolveBrand resuelve o crea una marca usando el repositorio indicado.
// Exportada a nivel de función para poder invocarse con repos atados a la
// transacción del lote de stock (misma tx del caller).
func ResolveBrand(ctx context.Context, brandRepo repository.BrandRepository, name string) (*entity.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	folded := normalize.Fold(name)

	if existing, err := brandRepo.GetByFoldedName(ctx, folded); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	brand := &entity.Brand{
		ID:         uuid.New().String(),
		Name:       name,
		NameFolded: folded,
		CreatedAt:  time.Now(),
	}
	err := brandRepo.Insert(ctx, brand)
	if err == nil {
		return brand, nil
	}
	if errors.Is(err, domain.ErrDuplicate) {
		// Otro llamador ganó la carrera entre la lectura y el insert: releer.
		existing, rerr := brandRepo.GetByFoldedName(ctx, folded)
		if rerr != nil {
			return nil, rerr
		}
		if existing != nil {
			return existing, nil
		}
	}
	return nil, err
}

// ResolveProduct resuelve o crea un producto usando el repositorio indicado.
func ResolveProduct(ctx context.Context, productRepo repository.ProductRepository, brandID, model, category string) (*entity.Product, error) {
	model = strings.TrimSpace(model)
	if brandID == "" || model == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidCategory(category) {
		return nil, domain.ErrInvalidInput
	}
	folded := normalize.Fold(model)

	if existing, err := productRepo.GetByBrandAndModel(ctx, brandID, folded); err != nil {
		return nil, err
	} else if existing != nil {
		return existing, nil
	}

	product := &entity.Product{
		ID:          uuid.New().String(),
		BrandID:     brandID,
		Model:       model,
		ModelFolded: folded,
		Category:    category,
		CreatedAt:   time.Now(),
	}
	err := productRepo.Insert(ctx, product)
	if err == nil {
		return product, nil
	}
	if errors.Is(err, domain.ErrDuplicate) {
		existing, rerr := productRepo.GetByBrandAndModel(ctx, brandID, folded)
		if rerr != nil {
			return nil, rerr
		}
		if existing != nil {
			return existing, nil
		}
	}
	return nil, err
}
