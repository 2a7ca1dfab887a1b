package tenant

import (
	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	if t == nil {
		return nil
	}
	return &dto.TenantResponse{
		ID:         t.ID,
		Name:       t.Name,
		NIT:        t.NIT,
		Domain:     t.Domain,
		SchemaName: t.SchemaName,
		PlanID:     t.PlanID,
		BillingDay: t.BillingDay,
		Status:     t.Status,
		Email:      t.Email,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
