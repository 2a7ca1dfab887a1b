package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuota de suscripción.
const (
	InstallmentStatusOpen = "open"
	InstallmentStatusPaid = "paid"
)

// Métodos de pago aceptados por conciliación.
const (
	PaymentMethodTransfer = "transferencia"
	PaymentMethodCard     = "tarjeta"
	PaymentMethodCash     = "efectivo"
)

// Installment es una cuota que el tenant le debe al operador de la plataforma
// (cuenta por cobrar propia, distinta de las cuentas por cobrar internas del
// tenant). Doce por ciclo anual: una de entrada prorrateada y once mensuales.
type Installment struct {
	ID           string
	TenantID     string
	CostCenterID string
	Amount       decimal.Decimal
	DueDate      time.Time
	Status       string
	PaidAt       *time.Time
	PaidAmount   decimal.Decimal // cero mientras está abierta
	Method       string          // vacío mientras está abierta
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsPaid informa si la cuota ya fue conciliada.
func (i *Installment) IsPaid() bool {
	return i.Status == InstallmentStatusPaid
}

// OverdueBeyondGrace informa si la cuota abierta lleva vencida estrictamente
// más días que el período de gracia del plan.
func (i *Installment) OverdueBeyondGrace(graceDays int, now time.Time) bool {
	if i.IsPaid() {
		return false
	}
	return now.After(i.DueDate.AddDate(0, 0, graceDays))
}
