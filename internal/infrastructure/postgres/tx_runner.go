package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/eventos-api/internal/application/payments"
	"github.com/jhoicas/eventos-api/internal/application/tenant"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// Asegura que TxRunner implementa tenant.TxRunner y payments.TxRunner.
var _ tenant.TxRunner = (*TxRunner)(nil)
var _ payments.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL sobre el
// schema compartido. El aprovisionador de particiones va atado a la misma
// transacción: el DDL de CREATE SCHEMA participa del rollback.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool del schema compartido.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con los repos del directorio y el
// aprovisionador atados a la tx, y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(tx tenant.TxRepos) error) error {
	pgxTx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = pgxTx.Rollback(ctx) }()

	repos := tenant.TxRepos{
		Tenants:      NewTenantRepository(pgxTx),
		Plans:        NewPlanRepository(pgxTx),
		Installments: NewInstallmentRepository(pgxTx),
		CostCenters:  NewCostCenterRepository(pgxTx),
		Partitions:   NewProvisioner(pgxTx),
	}
	if err := fn(repos); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBilling inicia una transacción con los repos de conciliación de pagos.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	tenants repository.TenantRepository,
	plans repository.PlanRepository,
	cuotas repository.InstallmentRepository,
) error) error {
	pgxTx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = pgxTx.Rollback(ctx) }()

	if err := fn(
		NewTenantRepository(pgxTx),
		NewPlanRepository(pgxTx),
		NewInstallmentRepository(pgxTx),
	); err != nil {
		return err
	}
	if err := pgxTx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
