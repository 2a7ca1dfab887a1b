package billing

import (
	"time"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// ShouldActivate decide si un tenant debe promoverse de AwaitingPayment a
// Active tras un evento de pago:
//
//  1. Sin cuotas pagadas, no hay promoción.
//  2. Si alguna cuota abierta lleva vencida más días que el período de gracia
//     del plan, no hay promoción.
//  3. La evaluación nunca saca a un tenant de Active ni de Blocked: solo
//     promueve desde AwaitingPayment. Las reversas tampoco degradan.
func ShouldActivate(t *entity.Tenant, plan *entity.Plan, cuotas []*entity.Installment, now time.Time) bool {
	if t.Status != entity.TenantStatusAwaitingPayment {
		return false
	}
	paid := 0
	for _, c := range cuotas {
		if c.IsPaid() {
			paid++
			continue
		}
		if c.OverdueBeyondGrace(plan.GraceDays, now) {
			return false
		}
	}
	return paid > 0
}
