package tenant

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// ToggleStatusUseCase alterna Active <-> Blocked por acción manual del
// operador. Mientras el tenant espera su primer pago el toggle se rechaza:
// solo la evaluación automática de cuotas saca a un tenant de
// AwaitingPayment.
type ToggleStatusUseCase struct {
	tenants repository.TenantRepository
}

// NewToggleStatusUseCase construye el caso de uso.
func NewToggleStatusUseCase(tenants repository.TenantRepository) *ToggleStatusUseCase {
	return &ToggleStatusUseCase{tenants: tenants}
}

// Toggle lee el tenant, valida el estado de origen y escribe con bloqueo
// optimista: si la versión cambió (carrera con la evaluación automática u
// otro operador) devuelve domain.ErrConflict y el cliente debe reintentar.
func (uc *ToggleStatusUseCase) Toggle(ctx context.Context, tenantID string) (*dto.TenantResponse, error) {
	t, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	if !t.CanToggle() {
		return nil, domain.ErrTenantAwaitingPayment
	}

	next := t.ToggledStatus()
	if err := uc.tenants.UpdateStatus(ctx, t.ID, next, t.Version); err != nil {
		return nil, err
	}
	t.Status = next
	t.Version++
	return toTenantResponse(t), nil
}
