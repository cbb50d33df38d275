package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/zapasoft/calzado-api/internal/application/sales"
	"github.com/zapasoft/calzado-api/internal/application/stock"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
)

// Ensure TxRunner implements sales.TxRunner and stock.IntakeTxRunner.
var _ sales.TxRunner = (*TxRunner)(nil)
var _ stock.IntakeTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	variantRepo repository.VariantRepository,
	saleRepo repository.SaleRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	variantRepo := NewVariantRepository(tx)
	saleRepo := NewSaleRepository(tx)

	if err := fn(variantRepo, saleRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunIntake inicia una transacción con repos de catálogo y variantes (para lotes de entrada).
func (r *TxRunner) RunIntake(ctx context.Context, fn func(
	brandRepo repository.BrandRepository,
	productRepo repository.ProductRepository,
	variantRepo repository.VariantRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	brandRepo := NewBrandRepository(tx)
	productRepo := NewProductRepository(tx)
	variantRepo := NewVariantRepository(tx)

	if err := fn(brandRepo, productRepo, variantRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
