package repository

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// CostCenterRepository define el puerto de persistencia para centros de costos.
type CostCenterRepository interface {
	// GetOrCreateByName devuelve el centro de costos con ese nombre,
	// creándolo si aún no existe (creación perezosa del singleton
	// "Planes y Suscripciones").
	GetOrCreateByName(ctx context.Context, name string) (*entity.CostCenter, error)
}
