package payments

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/billing"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// ReverseInstallmentUseCase revierte una cuota pagada a abierta. No degrada
// la activación del tenant.
type ReverseInstallmentUseCase struct {
	txRunner TxRunner
}

// NewReverseInstallmentUseCase construye el caso de uso.
func NewReverseInstallmentUseCase(txRunner TxRunner) *ReverseInstallmentUseCase {
	return &ReverseInstallmentUseCase{txRunner: txRunner}
}

// Reverse valida que la cuota esté pagada (ErrNotPaid si no) y limpia los
// metadatos de pago.
func (uc *ReverseInstallmentUseCase) Reverse(ctx context.Context, installmentID string) (*dto.InstallmentResponse, error) {
	var out *dto.InstallmentResponse
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
		if err := billing.ReverseInstallment(c); err != nil {
			return err
		}
		if err := cuotas.Update(ctx, c); err != nil {
			return err
		}
		resp := toInstallmentResponse(c)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
