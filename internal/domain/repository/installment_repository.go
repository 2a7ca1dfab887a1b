package repository

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// InstallmentRepository define el puerto de persistencia para las cuotas de
// suscripción (cuentas por cobrar del operador).
type InstallmentRepository interface {
	// CreateBatch inserta las cuotas en el orden recibido (cronológico).
	CreateBatch(ctx context.Context, cuotas []*entity.Installment) error
	Create(ctx context.Context, cuota *entity.Installment) error
	GetByID(ctx context.Context, id string) (*entity.Installment, error)
	// GetByIDForUpdate bloquea la fila (FOR UPDATE) en la transacción actual.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Installment, error)
	// ListByTenant devuelve las cuotas del tenant en orden de vencimiento.
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Installment, error)
	Update(ctx context.Context, cuota *entity.Installment) error
	// DeleteOpenByTenant elimina solo las cuotas abiertas (las pagadas son
	// historia inmutable). Devuelve cuántas eliminó.
	DeleteOpenByTenant(ctx context.Context, tenantID string) (int64, error)
	CountPaidByTenant(ctx context.Context, tenantID string) (int64, error)
}
