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

var _ repository.BrandRepository = (*BrandRepo)(nil)

// BrandRepo implementación del puerto BrandRepository sobre PostgreSQL (usable con pool o tx).
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador de persistencia para marcas. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

// Insert persiste una nueva marca. Usa ON CONFLICT DO NOTHING para que un
// choque con la clave normalizada no aborte la transacción en curso; en ese
// caso retorna domain.ErrDuplicate y el resolutor relee la fila ganadora.
func (r *BrandRepo) Insert(ctx context.Context, brand *entity.Brand) error {
	query := `
		INSERT INTO brands (id, name, name_folded, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name_folded) DO NOTHING`
	cmd, err := r.q.Exec(ctx, query, brand.ID, brand.Name, brand.NameFolded, brand.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// GetByID obtiene una marca por ID.
func (r *BrandRepo) GetByID(ctx context.Context, id string) (*entity.Brand, error) {
	query := `SELECT id, name, name_folded, created_at FROM brands WHERE id = $1`
	var b entity.Brand
	err := r.q.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.NameFolded, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return &b, nil
}

// GetByFoldedName obtiene una marca por su nombre normalizado.
func (r *BrandRepo) GetByFoldedName(ctx context.Context, folded string) (*entity.Brand, error) {
	query := `SELECT id, name, name_folded, created_at FROM brands WHERE name_folded = $1`
	var b entity.Brand
	err := r.q.QueryRow(ctx, query, folded).Scan(&b.ID, &b.Name, &b.NameFolded, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand by folded name: %w", err)
	}
	return &b, nil
}

// List lista todas las marcas ordenadas por nombre.
func (r *BrandRepo) List(ctx context.Context) ([]*entity.Brand, error) {
	query := `SELECT id, name, name_folded, created_at FROM brands ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var brands []*entity.Brand
	for rows.Next() {
		var b entity.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.NameFolded, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, &b)
	}
	return brands, rows.Err()
}
