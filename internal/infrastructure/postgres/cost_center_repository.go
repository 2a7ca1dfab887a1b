package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo implementación del puerto CostCenterRepository sobre
// PostgreSQL.
type CostCenterRepo struct {
	db Querier
}

// NewCostCenterRepository construye el adaptador de persistencia para centros
// de costos.
func NewCostCenterRepository(db Querier) *CostCenterRepo {
	return &CostCenterRepo{db: db}
}

// GetOrCreateByName devuelve el centro de costos con ese nombre, creándolo si
// no existe. ON CONFLICT hace la creación perezosa segura ante concurrencia.
func (r *CostCenterRepo) GetOrCreateByName(ctx context.Context, name string) (*entity.CostCenter, error) {
	query := `
		INSERT INTO cost_centers (id, name, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, created_at`
	var cc entity.CostCenter
	err := r.db.QueryRow(ctx, query, uuid.New().String(), name, time.Now()).
		Scan(&cc.ID, &cc.Name, &cc.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("get or create cost center: %w", err)
	}
	return &cc, nil
}
