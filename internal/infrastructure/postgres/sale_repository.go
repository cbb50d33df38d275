package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// InsertSale persiste la cabecera de la venta.
func (r *SaleRepo) InsertSale(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, sale_timestamp, total_amount, notes, customer_id,
			is_apartado, anticipo, restante, apartado_expira, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.SaleTimestamp, sale.TotalAmount, sale.Notes, sale.CustomerID,
		sale.IsApartado, sale.Anticipo, sale.Restante, sale.ApartadoExpira, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// InsertItem persiste una línea validada de la venta.
func (r *SaleRepo) InsertItem(ctx context.Context, item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, variant_id, quantity, price_at_sale, discount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SaleID, item.VariantID, item.Quantity, item.PriceAtSale, item.Discount,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// InsertManualLine persiste una línea manual ("vender de todos modos").
func (r *SaleRepo) InsertManualLine(ctx context.Context, line *entity.ManualSaleLine) error {
	query := `
		INSERT INTO sale_manual_lines (id, sale_id, brand, model, color, size, sku, quantity, price_at_sale)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		line.ID, line.SaleID, line.Brand, line.Model, line.Color, line.Size,
		line.SKU, line.Quantity, line.PriceAtSale,
	)
	if err != nil {
		return fmt.Errorf("insert manual sale line: %w", err)
	}
	return nil
}

// GetByID obtiene una venta completa con sus líneas.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*repository.SaleWithLines, error) {
	query := `
		SELECT id, sale_timestamp, total_amount, notes, customer_id,
			is_apartado, anticipo, restante, apartado_expira, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.SaleTimestamp, &s.TotalAmount, &s.Notes, &s.CustomerID,
		&s.IsApartado, &s.Anticipo, &s.Restante, &s.ApartadoExpira, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	sale := &repository.SaleWithLines{Sale: s}
	if err := r.loadLines(ctx, map[string]*repository.SaleWithLines{s.ID: sale}); err != nil {
		return nil, err
	}
	return sale, nil
}

// ListByPeriod lista ventas cuyo sale_timestamp cae en [from, to), más recientes primero.
func (r *SaleRepo) ListByPeriod(ctx context.Context, from, to time.Time) ([]*repository.SaleWithLines, error) {
	query := `
		SELECT id, sale_timestamp, total_amount, notes, customer_id,
			is_apartado, anticipo, restante, apartado_expira, created_at
		FROM sales
		WHERE sale_timestamp >= $1 AND sale_timestamp < $2
		ORDER BY sale_timestamp DESC`
	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []*repository.SaleWithLines
	byID := make(map[string]*repository.SaleWithLines)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.SaleTimestamp, &s.TotalAmount, &s.Notes, &s.CustomerID,
			&s.IsApartado, &s.Anticipo, &s.Restante, &s.ApartadoExpira, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sale := &repository.SaleWithLines{Sale: s}
		sales = append(sales, sale)
		byID[s.ID] = sale
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(byID) == 0 {
		return sales, nil
	}
	if err := r.loadLines(ctx, byID); err != nil {
		return nil, err
	}
	return sales, nil
}

// loadLines carga líneas validadas y manuales de las ventas dadas. El join a
// variantes es LEFT (la variante pudo borrarse después de la venta); las
// etiquetas ausentes quedan vacías.
func (r *SaleRepo) loadLines(ctx context.Context, byID map[string]*repository.SaleWithLines) error {
	ids := make([]string, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}

	itemsQuery := `
		SELECT i.id, i.sale_id, i.variant_id, i.quantity, i.price_at_sale, i.discount,
			COALESCE(b.name, ''), COALESCE(p.model, ''), COALESCE(v.color, ''),
			COALESCE(v.size, 0), COALESCE(v.sku, '')
		FROM sale_items i
		LEFT JOIN variants v ON v.id = i.variant_id
		LEFT JOIN products p ON p.id = v.product_id
		LEFT JOIN brands b ON b.id = p.brand_id
		WHERE i.sale_id = ANY($1)
		ORDER BY i.id`
	rows, err := r.q.Query(ctx, itemsQuery, ids)
	if err != nil {
		return fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var it repository.SaleItemRow
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.VariantID, &it.Quantity, &it.PriceAtSale, &it.Discount,
			&it.BrandName, &it.Model, &it.Color, &it.Size, &it.SKU,
		); err != nil {
			return fmt.Errorf("scan sale item: %w", err)
		}
		byID[it.SaleID].Items = append(byID[it.SaleID].Items, it)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	manualQuery := `
		SELECT id, sale_id, brand, model, color, size, sku, quantity, price_at_sale
		FROM sale_manual_lines WHERE sale_id = ANY($1) ORDER BY id`
	mrows, err := r.q.Query(ctx, manualQuery, ids)
	if err != nil {
		return fmt.Errorf("list manual sale lines: %w", err)
	}
	defer mrows.Close()
	for mrows.Next() {
		var l entity.ManualSaleLine
		if err := mrows.Scan(
			&l.ID, &l.SaleID, &l.Brand, &l.Model, &l.Color, &l.Size,
			&l.SKU, &l.Quantity, &l.PriceAtSale,
		); err != nil {
			return fmt.Errorf("scan manual sale line: %w", err)
		}
		byID[l.SaleID].ManualLines = append(byID[l.SaleID].ManualLines, l)
	}
	return mrows.Err()
}
