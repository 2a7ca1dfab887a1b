package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest aplica un pago (total o parcial) a una cuota.
type ApplyPaymentRequest struct {
	PaidAt     time.Time       `json:"paid_at"`
	Method     string          `json:"method"`
	AmountPaid decimal.Decimal `json:"amount_paid"`
	// NewDueDate obligatorio si AmountPaid < monto de la cuota: vencimiento
	// de la cuota que se abre por el saldo.
	NewDueDate *time.Time `json:"new_due_date,omitempty"`
}

// InstallmentResponse representación de una cuota.
type InstallmentResponse struct {
	ID         string          `json:"id"`
	TenantID   string          `json:"tenant_id"`
	Amount     decimal.Decimal `json:"amount"`
	DueDate    time.Time       `json:"due_date"`
	Status     string          `json:"status"`
	PaidAt     *time.Time      `json:"paid_at,omitempty"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
	Method     string          `json:"method,omitempty"`
}

// PaymentResponse resultado de aplicar un pago: variante, cuota conciliada,
// cuota de saldo (solo parcial) y si la evaluación promovió al tenant.
type PaymentResponse struct {
	Outcome     string               `json:"outcome"` // fully_paid | partially_paid
	Installment InstallmentResponse  `json:"installment"`
	Remainder   *InstallmentResponse `json:"remainder,omitempty"`
	Activated   bool                 `json:"tenant_activated"`
}

// InstallmentListResponse cuentas por cobrar del operador sobre un tenant.
type InstallmentListResponse struct {
	Items []InstallmentResponse `json:"items"`
}
