package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/zapasoft/calzado-api/internal/domain"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Insert persiste un nuevo producto. Retorna domain.ErrDuplicate si
// (brand_id, modelo normalizado) ya existe, sin abortar la transacción.
func (r *ProductRepo) Insert(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, brand_id, model, model_folded, category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (brand_id, model_folded) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.BrandID, product.Model, product.ModelFolded,
		product.Category, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, brand_id, model, model_folded, category, created_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.BrandID, &p.Model, &p.ModelFolded, &p.Category, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// GetByBrandAndModel obtiene un producto por marca y modelo normalizado.
func (r *ProductRepo) GetByBrandAndModel(ctx context.Context, brandID, modelFolded string) (*entity.Product, error) {
	query := `
		SELECT id, brand_id, model, model_folded, category, created_at
		FROM products WHERE brand_id = $1 AND model_folded = $2`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, brandID, modelFolded).Scan(
		&p.ID, &p.BrandID, &p.Model, &p.ModelFolded, &p.Category, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by model: %w", err)
	}
	return &p, nil
}

// ListByBrand lista los modelos de una marca ordenados por modelo.
func (r *ProductRepo) ListByBrand(ctx context.Context, brandID string) ([]*entity.Product, error) {
	query := `
		SELECT id, brand_id, model, model_folded, category, created_at
		FROM products WHERE brand_id = $1 ORDER BY model`
	rows, err := r.q.Query(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.BrandID, &p.Model, &p.ModelFolded, &p.Category, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, &p)
	}
	return products, rows.Err()
}
