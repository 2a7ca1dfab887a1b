package repository

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia del directorio de tenants
// (schema compartido del operador). La implementación vive en infrastructure.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetByNIT(ctx context.Context, nit string) (*entity.Tenant, error)
	GetByDomain(ctx context.Context, domain string) (*entity.Tenant, error)
	// GetByIDForUpdate bloquea la fila del tenant (FOR UPDATE) dentro de la
	// transacción actual; serializa el toggle manual frente a la evaluación
	// automática sobre el mismo tenant.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	// UpdateStatus aplica bloqueo optimista: falla con domain.ErrConflict si
	// la versión cambió desde la lectura.
	UpdateStatus(ctx context.Context, id string, status string, version int64) error
	// UpdatePlan actualiza plan y ancla de facturación (upgrade).
	UpdatePlan(ctx context.Context, tenant *entity.Tenant) error
	Delete(ctx context.Context, id string) error
}
