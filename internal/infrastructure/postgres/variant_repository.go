package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

var _ repository.VariantRepository = (*VariantRepo)(nil)

// VariantRepo implementación del puerto VariantRepository sobre PostgreSQL (usable con pool o tx).
type VariantRepo struct {
	q Querier
}

// NewVariantRepository construye el adaptador de persistencia para variantes. Pasar pool o tx (Querier).
func NewVariantRepository(q Querier) *VariantRepo {
	return &VariantRepo{q: q}
}

const variantColumns = `id, product_id, color, size, price, sku, stock, created_at, updated_at`

func scanVariant(row pgx.Row) (*entity.Variant, error) {
	var v entity.Variant
	err := row.Scan(&v.ID, &v.ProductID, &v.Color, &v.Size, &v.Price, &v.SKU, &v.Stock, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// GetByID obtiene una variante por ID.
func (r *VariantRepo) GetByID(ctx context.Context, id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1`
	v, err := scanVariant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant: %w", err)
	}
	return v, nil
}

// GetByKey obtiene una variante por su clave natural (producto, color, talla).
func (r *VariantRepo) GetByKey(ctx context.Context, productID, color string, size decimal.Decimal) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE product_id = $1 AND color = $2 AND size = $3`
	v, err := scanVariant(r.q.QueryRow(ctx, query, productID, color, size))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant by key: %w", err)
	}
	return v, nil
}

// GetForUpdate obtiene la variante y bloquea la fila (SELECT FOR UPDATE).
// Solo tiene sentido dentro de una transacción.
func (r *VariantRepo) GetForUpdate(ctx context.Context, id string) (*entity.Variant, error) {
	query := `SELECT ` + variantColumns + ` FROM variants WHERE id = $1 FOR UPDATE`
	v, err := scanVariant(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variant for update: %w", err)
	}
	return v, nil
}

// UpsertDelta inserta la variante o suma StockDelta al stock existente en una
// sola sentencia atómica; dos lotes concurrentes sobre la misma variante no se
// pisan incrementos. Price y SKU en nil conservan el valor almacenado.
func (r *VariantRepo) UpsertDelta(ctx context.Context, in repository.VariantUpsert) (*entity.Variant, error) {
	query := `
		INSERT INTO variants (id, product_id, color, size, price, sku, stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, 0), COALESCE($6, ''), $7, now(), now())
		ON CONFLICT (product_id, color, size)
		DO UPDATE SET
			stock = variants.stock + EXCLUDED.stock,
			price = COALESCE($5, variants.price),
			sku = COALESCE($6, variants.sku),
			updated_at = now()
		RETURNING ` + variantColumns
	v, err := scanVariant(r.q.QueryRow(ctx, query,
		in.ID, in.ProductID, in.Color, in.Size, in.Price, in.SKU, in.StockDelta,
	))
	if err != nil {
		return nil, fmt.Errorf("upsert variant: %w", err)
	}
	return v, nil
}

// DecrementStock descuenta qty del stock de la variante. El caller valida la
// disponibilidad bajo el lock de GetForUpdate; el CHECK stock >= 0 del esquema
// es la última línea de defensa.
func (r *VariantRepo) DecrementStock(ctx context.Context, id string, qty int64) error {
	query := `UPDATE variants SET stock = stock - $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, qty)
	if err != nil {
		return fmt.Errorf("decrement stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Set sobreescribe precio y/o stock de la variante (corrección administrativa).
// Los campos en nil conservan su valor.
func (r *VariantRepo) Set(ctx context.Context, id string, price *decimal.Decimal, stock *int64) (*entity.Variant, error) {
	query := `
		UPDATE variants SET
			price = COALESCE($2, price),
			stock = COALESCE($3, stock),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + variantColumns
	v, err := scanVariant(r.q.QueryRow(ctx, query, id, price, stock))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("set variant: %w", err)
	}
	return v, nil
}

// Delete elimina la variante. Las líneas de venta que la referencian conservan
// sus etiquetas vía join laxo en el repositorio de ventas.
func (r *VariantRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM variants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete variant: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
