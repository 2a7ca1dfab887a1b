// Package payments contiene los casos de uso de conciliación de pagos de la
// plataforma: aplicar pagos a cuotas (con liquidación parcial), reversarlos y
// consultar el estado de cuenta del tenant.
package payments

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repos de conciliación atados
// a la tx. La evaluación de activación corre en una transacción posterior al
// commit del pago, nunca entrelazada con la escritura de la cuota.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		tenants repository.TenantRepository,
		plans repository.PlanRepository,
		cuotas repository.InstallmentRepository,
	) error) error
}

// StatementGenerator genera el estado de cuenta (PDF) de las cuotas de un
// tenant. La implementación vive en infrastructure/pdf.
type StatementGenerator interface {
	GenerateStatement(ctx context.Context, tenant *entity.Tenant, plan *entity.Plan, cuotas []*entity.Installment) ([]byte, error)
}
