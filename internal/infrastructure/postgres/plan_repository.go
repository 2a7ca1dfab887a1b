package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

var _ repository.PlanRepository = (*PlanRepo)(nil)

const planColumns = `id, name, duration_months, total_value, monthly_value, grace_days, auto_renew, created_at, updated_at`

// PlanRepo implementación del puerto PlanRepository sobre PostgreSQL.
type PlanRepo struct {
	db Querier
}

// NewPlanRepository construye el adaptador de persistencia para planes.
func NewPlanRepository(db Querier) *PlanRepo {
	return &PlanRepo{db: db}
}

// Create persiste un nuevo plan.
func (r *PlanRepo) Create(ctx context.Context, p *entity.Plan) error {
	query := `
		INSERT INTO plans (` + planColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.Name, p.DurationMonths, p.TotalValue, p.MonthlyValue,
		p.GraceDays, p.AutoRenew, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// GetByID obtiene un plan por ID; nil si no existe.
func (r *PlanRepo) GetByID(ctx context.Context, id string) (*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	var p entity.Plan
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.DurationMonths, &p.TotalValue, &p.MonthlyValue,
		&p.GraceDays, &p.AutoRenew, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return &p, nil
}

// List devuelve el catálogo con paginación.
func (r *PlanRepo) List(ctx context.Context, limit, offset int) ([]*entity.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY monthly_value ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Plan
	for rows.Next() {
		var p entity.Plan
		if err := rows.Scan(
			&p.ID, &p.Name, &p.DurationMonths, &p.TotalValue, &p.MonthlyValue,
			&p.GraceDays, &p.AutoRenew, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
