package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePlanRequest alta de una plantilla de facturación.
type CreatePlanRequest struct {
	Name           string          `json:"name"`
	DurationMonths int             `json:"duration_months"`
	TotalValue     decimal.Decimal `json:"total_value"`
	GraceDays      int             `json:"grace_days"`
	AutoRenew      bool            `json:"auto_renew"`
}

// PlanResponse representación de un plan.
type PlanResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	DurationMonths int             `json:"duration_months"`
	TotalValue     decimal.Decimal `json:"total_value"`
	MonthlyValue   decimal.Decimal `json:"monthly_value"`
	GraceDays      int             `json:"grace_days"`
	AutoRenew      bool            `json:"auto_renew"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PlanListResponse listado de planes.
type PlanListResponse struct {
	Items []PlanResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
