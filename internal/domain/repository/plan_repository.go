package repository

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// PlanRepository define el puerto de persistencia para Plan (DIP).
type PlanRepository interface {
	Create(ctx context.Context, plan *entity.Plan) error
	GetByID(ctx context.Context, id string) (*entity.Plan, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Plan, error)
}
