package payments

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// ListInstallmentsUseCase consulta el estado de cuenta de un tenant.
type ListInstallmentsUseCase struct {
	tenants repository.TenantRepository
	cuotas  repository.InstallmentRepository
}

// NewListInstallmentsUseCase construye el caso de uso.
func NewListInstallmentsUseCase(tenants repository.TenantRepository, cuotas repository.InstallmentRepository) *ListInstallmentsUseCase {
	return &ListInstallmentsUseCase{tenants: tenants, cuotas: cuotas}
}

// List devuelve las cuotas del tenant en orden cronológico de vencimiento.
func (uc *ListInstallmentsUseCase) List(ctx context.Context, tenantID string) (*dto.InstallmentListResponse, error) {
	t, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}

	all, err := uc.cuotas.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.InstallmentResponse, 0, len(all))
	for _, c := range all {
		items = append(items, toInstallmentResponse(c))
	}
	return &dto.InstallmentListResponse{Items: items}, nil
}
