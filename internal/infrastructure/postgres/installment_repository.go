package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

var _ repository.InstallmentRepository = (*InstallmentRepo)(nil)

const installmentColumns = `id, tenant_id, cost_center_id, amount, due_date, status, paid_at, paid_amount, method, created_at, updated_at`

// InstallmentRepo implementación del puerto InstallmentRepository sobre
// PostgreSQL (cuotas en el schema compartido).
type InstallmentRepo struct {
	db Querier
}

// NewInstallmentRepository construye el adaptador de persistencia para cuotas.
func NewInstallmentRepository(db Querier) *InstallmentRepo {
	return &InstallmentRepo{db: db}
}

// CreateBatch inserta las cuotas del ciclo en el orden recibido.
func (r *InstallmentRepo) CreateBatch(ctx context.Context, cuotas []*entity.Installment) error {
	batch := &pgx.Batch{}
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	for _, c := range cuotas {
		batch.Queue(query,
			c.ID, c.TenantID, c.CostCenterID, c.Amount, c.DueDate, c.Status,
			c.PaidAt, c.PaidAmount, c.Method, c.CreatedAt, c.UpdatedAt,
		)
	}
	results := r.db.SendBatch(ctx, batch)
	defer results.Close()
	for range cuotas {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert installment batch: %w", err)
		}
	}
	return nil
}

// Create persiste una cuota individual (saldo de un pago parcial).
func (r *InstallmentRepo) Create(ctx context.Context, c *entity.Installment) error {
	query := `
		INSERT INTO installments (` + installmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.TenantID, c.CostCenterID, c.Amount, c.DueDate, c.Status,
		c.PaidAt, c.PaidAmount, c.Method, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert installment: %w", err)
	}
	return nil
}

// GetByID obtiene una cuota por ID; nil si no existe.
func (r *InstallmentRepo) GetByID(ctx context.Context, id string) (*entity.Installment, error) {
	return r.getOne(ctx, `SELECT `+installmentColumns+` FROM installments WHERE id = $1`, id)
}

// GetByIDForUpdate bloquea la fila de la cuota en la transacción actual.
func (r *InstallmentRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Installment, error) {
	return r.getOne(ctx, `SELECT `+installmentColumns+` FROM installments WHERE id = $1 FOR UPDATE`, id)
}

func (r *InstallmentRepo) getOne(ctx context.Context, query, id string) (*entity.Installment, error) {
	var c entity.Installment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.TenantID, &c.CostCenterID, &c.Amount, &c.DueDate, &c.Status,
		&c.PaidAt, &c.PaidAmount, &c.Method, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get installment: %w", err)
	}
	return &c, nil
}

// ListByTenant devuelve las cuotas del tenant en orden de vencimiento.
func (r *InstallmentRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Installment, error) {
	query := `
		SELECT ` + installmentColumns + `
		FROM installments WHERE tenant_id = $1 ORDER BY due_date ASC, created_at ASC`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list installments: %w", err)
	}
	defer rows.Close()

	var list []*entity.Installment
	for rows.Next() {
		var c entity.Installment
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.CostCenterID, &c.Amount, &c.DueDate, &c.Status,
			&c.PaidAt, &c.PaidAmount, &c.Method, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan installment: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update persiste los cambios de conciliación o reverso de una cuota.
func (r *InstallmentRepo) Update(ctx context.Context, c *entity.Installment) error {
	query := `
		UPDATE installments
		SET status = $2, paid_at = $3, paid_amount = $4, method = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, c.ID, c.Status, c.PaidAt, c.PaidAmount, c.Method, c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update installment: %w", err)
	}
	return nil
}

// DeleteOpenByTenant elimina solo las cuotas abiertas del tenant; las pagadas
// son historia inmutable. Devuelve cuántas eliminó.
func (r *InstallmentRepo) DeleteOpenByTenant(ctx context.Context, tenantID string) (int64, error) {
	cmd, err := r.db.Exec(ctx,
		`DELETE FROM installments WHERE tenant_id = $1 AND status = 'open'`, tenantID)
	if err != nil {
		return 0, fmt.Errorf("delete open installments: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// CountPaidByTenant cuenta las cuotas pagadas del tenant.
func (r *InstallmentRepo) CountPaidByTenant(ctx context.Context, tenantID string) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM installments WHERE tenant_id = $1 AND status = 'paid'`, tenantID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count paid installments: %w", err)
	}
	return n, nil
}
