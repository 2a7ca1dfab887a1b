package tenant

import (
	"context"
	"time"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/billing"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// UpgradePlanUseCase cambia a una empresa de plan. Solo hacia un plan de
// valor mensual igual o mayor: las cuotas abiertas se descartan y el ciclo se
// regenera desde la nueva ancla; las pagadas son historia inmutable.
type UpgradePlanUseCase struct {
	txRunner TxRunner
}

// NewUpgradePlanUseCase construye el caso de uso.
func NewUpgradePlanUseCase(txRunner TxRunner) *UpgradePlanUseCase {
	return &UpgradePlanUseCase{txRunner: txRunner}
}

// Upgrade ejecuta el cambio de plan como unidad atómica: validación del
// guard, borrado de cuotas abiertas, actualización del tenant y regeneración
// del ciclo. Cualquier fallo deja el ciclo anterior intacto.
func (uc *UpgradePlanUseCase) Upgrade(ctx context.Context, tenantID string, in dto.UpgradePlanRequest) (*dto.TenantResponse, error) {
	if in.PlanID == "" {
		return nil, domain.ErrInvalidInput
	}
	anchor := time.Now()
	if in.AnchorDate != nil {
		anchor = *in.AnchorDate
	}

	var updated *entity.Tenant
	err := uc.txRunner.Run(ctx, func(tx TxRepos) error {
		t, err := tx.Tenants.GetByIDForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrTenantNotFound
		}

		current, err := tx.Plans.GetByID(ctx, t.PlanID)
		if err != nil {
			return err
		}
		next, err := tx.Plans.GetByID(ctx, in.PlanID)
		if err != nil {
			return err
		}
		if next == nil {
			return domain.ErrNotFound
		}
		if current != nil && next.MonthlyValue.LessThan(current.MonthlyValue) {
			return domain.ErrDowngradeNotAllowed
		}

		if _, err := tx.Installments.DeleteOpenByTenant(ctx, t.ID); err != nil {
			return err
		}

		t.PlanID = next.ID
		t.BillingDay = anchor
		t.UpdatedAt = time.Now()
		if err := tx.Tenants.UpdatePlan(ctx, t); err != nil {
			return err
		}

		cc, err := tx.CostCenters.GetOrCreateByName(ctx, entity.CostCenterPlans)
		if err != nil {
			return err
		}
		cuotas := billing.GenerateAnnualSchedule(t.ID, cc.ID, next, anchor)
		if err := tx.Installments.CreateBatch(ctx, cuotas); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toTenantResponse(updated), nil
}
