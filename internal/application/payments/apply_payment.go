package payments

import (
	"context"
	"time"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/billing"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// ApplyPaymentUseCase aplica un pago a una cuota y después evalúa la
// activación del tenant. Dos transacciones: la conciliación commitea primero
// y la evaluación lee solo datos confirmados.
type ApplyPaymentUseCase struct {
	txRunner TxRunner
}

// NewApplyPaymentUseCase construye el caso de uso.
func NewApplyPaymentUseCase(txRunner TxRunner) *ApplyPaymentUseCase {
	return &ApplyPaymentUseCase{txRunner: txRunner}
}

// Apply concilia el pago (total o parcial) y corre la evaluación automática.
// Errores distinguibles: ErrInstallmentNotFound, ErrAlreadyPaid,
// ErrInvalidInput (monto ilegal o parcial sin vencimiento nuevo).
func (uc *ApplyPaymentUseCase) Apply(ctx context.Context, installmentID string, in dto.ApplyPaymentRequest) (*dto.PaymentResponse, error) {
	if in.Method == "" {
		return nil, domain.ErrInvalidInput
	}
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	var outcome billing.PaymentOutcome
	err := uc.txRunner.RunBilling(ctx, func(
		_ repository.TenantRepository,
		_ repository.PlanRepository,
		cuotas repository.InstallmentRepository,
	) error {
		c, err := cuotas.GetByIDForUpdate(ctx, installmentID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrInstallmentNotFound
		}

		amount := in.AmountPaid
		if amount.IsZero() {
			amount = c.Amount // sin monto explícito se asume pago completo
		}
		out, err := billing.SettleInstallment(c, paidAt, in.Method, amount, in.NewDueDate)
		if err != nil {
			return err
		}
		if err := cuotas.Update(ctx, c); err != nil {
			return err
		}
		if out.Remainder != nil {
			if err := cuotas.Create(ctx, out.Remainder); err != nil {
				return err
			}
		}
		outcome = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	activated, err := uc.evaluateActivation(ctx, outcome.Installment.TenantID)
	if err != nil {
		return nil, err
	}
	outcome.Activated = activated

	return toPaymentResponse(outcome), nil
}

// evaluateActivation corre la promoción AwaitingPayment -> Active en su
// propia transacción, con la fila del tenant bloqueada para serializar frente
// al toggle manual.
func (uc *ApplyPaymentUseCase) evaluateActivation(ctx context.Context, tenantID string) (bool, error) {
	activated := false
	err := uc.txRunner.RunBilling(ctx, func(
		tenants repository.TenantRepository,
		plans repository.PlanRepository,
		cuotas repository.InstallmentRepository,
	) error {
		t, err := tenants.GetByIDForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if t == nil || t.Status != entity.TenantStatusAwaitingPayment {
			return nil
		}
		plan, err := plans.GetByID(ctx, t.PlanID)
		if err != nil {
			return err
		}
		if plan == nil {
			return nil
		}
		all, err := cuotas.ListByTenant(ctx, t.ID)
		if err != nil {
			return err
		}
		if billing.ShouldActivate(t, plan, all, time.Now()) {
			if err := tenants.UpdateStatus(ctx, t.ID, entity.TenantStatusActive, t.Version); err != nil {
				return err
			}
			activated = true
		}
		return nil
	})
	return activated, err
}
