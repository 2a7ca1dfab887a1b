package payments

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// StatementUseCase arma el estado de cuenta en PDF de un tenant.
type StatementUseCase struct {
	tenants   repository.TenantRepository
	plans     repository.PlanRepository
	cuotas    repository.InstallmentRepository
	generator StatementGenerator
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(
	tenants repository.TenantRepository,
	plans repository.PlanRepository,
	cuotas repository.InstallmentRepository,
	generator StatementGenerator,
) *StatementUseCase {
	return &StatementUseCase{tenants: tenants, plans: plans, cuotas: cuotas, generator: generator}
}

// Generate devuelve el PDF del estado de cuenta del tenant.
func (uc *StatementUseCase) Generate(ctx context.Context, tenantID string) ([]byte, error) {
	t, err := uc.tenants.GetByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	plan, err := uc.plans.GetByID(ctx, t.PlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, domain.ErrNotFound
	}
	all, err := uc.cuotas.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateStatement(ctx, t, plan, all)
}
