package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

var _ repository.InventoryQueryRepository = (*InventoryQueryRepo)(nil)

// InventoryQueryRepo consultas de solo lectura sobre el stock actual.
type InventoryQueryRepo struct {
	pool *pgxpool.Pool
}

// NewInventoryQueryRepository construye el adaptador de consultas de inventario.
func NewInventoryQueryRepository(pool *pgxpool.Pool) *InventoryQueryRepo {
	return &InventoryQueryRepo{pool: pool}
}

// Query lista variantes con etiquetas de catálogo resueltas aplicando los
// filtros presentes (AND) y calcula los totales del mismo conjunto filtrado.
// Sin coincidencias devuelve lista vacía y totales en cero.
func (r *InventoryQueryRepo) Query(ctx context.Context, filters repository.InventoryFilters) ([]repository.InventoryRow, repository.InventorySummary, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT v.id, b.name, p.model, v.color, v.size, p.category, v.price, v.sku, v.stock, v.created_at
		FROM variants v
		JOIN products p ON p.id = v.product_id
		JOIN brands b ON b.id = p.brand_id
		WHERE 1=1`)

	var args []any
	add := func(clause string, value any) {
		args = append(args, value)
		sb.WriteString(fmt.Sprintf(clause, len(args)))
	}
	if filters.BrandID != nil {
		add(" AND p.brand_id = $%d", *filters.BrandID)
	}
	if filters.Color != nil {
		add(" AND v.color ILIKE $%d", *filters.Color)
	}
	if filters.Category != nil {
		add(" AND p.category = $%d", *filters.Category)
	}
	if filters.SizeMin != nil {
		add(" AND v.size >= $%d", *filters.SizeMin)
	}
	if filters.SizeMax != nil {
		add(" AND v.size <= $%d", *filters.SizeMax)
	}
	if filters.PriceMin != nil {
		add(" AND v.price >= $%d", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		add(" AND v.price <= $%d", *filters.PriceMax)
	}
	sb.WriteString(" ORDER BY b.name, p.model, v.color, v.size")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, repository.InventorySummary{}, fmt.Errorf("query inventory: %w", err)
	}
	defer rows.Close()

	list := []repository.InventoryRow{}
	summary := repository.InventorySummary{TotalValue: decimal.Zero}
	for rows.Next() {
		var row repository.InventoryRow
		if err := rows.Scan(
			&row.ID, &row.BrandName, &row.Model, &row.Color, &row.Size,
			&row.Category, &row.Price, &row.SKU, &row.Stock, &row.CreatedAt,
		); err != nil {
			return nil, repository.InventorySummary{}, fmt.Errorf("scan inventory row: %w", err)
		}
		list = append(list, row)
		summary.TotalPairs += row.Stock
		summary.TotalValue = summary.TotalValue.Add(row.Price.Mul(decimal.NewFromInt(row.Stock)))
	}
	if err := rows.Err(); err != nil {
		return nil, repository.InventorySummary{}, err
	}
	return list, summary, nil
}
