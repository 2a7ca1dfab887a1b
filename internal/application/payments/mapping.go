package payments

import (
	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain/billing"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

func toInstallmentResponse(c *entity.Installment) dto.InstallmentResponse {
	return dto.InstallmentResponse{
		ID:         c.ID,
		TenantID:   c.TenantID,
		Amount:     c.Amount,
		DueDate:    c.DueDate,
		Status:     c.Status,
		PaidAt:     c.PaidAt,
		PaidAmount: c.PaidAmount,
		Method:     c.Method,
	}
}

func toPaymentResponse(outcome billing.PaymentOutcome) *dto.PaymentResponse {
	resp := &dto.PaymentResponse{
		Outcome:     outcome.Kind,
		Installment: toInstallmentResponse(outcome.Installment),
		Activated:   outcome.Activated,
	}
	if outcome.Remainder != nil {
		r := toInstallmentResponse(outcome.Remainder)
		resp.Remainder = &r
	}
	return resp
}
