package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// Resultados posibles de la conciliación de un pago. Variantes etiquetadas en
// lugar de ramas ad hoc, para que el caso de uso y los tests sean exhaustivos.
const (
	OutcomeFullyPaid     = "fully_paid"
	OutcomePartiallyPaid = "partially_paid"
)

// PaymentOutcome describe el efecto de aplicar un pago sobre una cuota.
// En un pago parcial la cuota original queda pagada por la porción recibida y
// Remainder es la cuota nueva abierta por el saldo (espejo de la liquidación
// parcial de cuentas por cobrar, no un rechazo del pago).
type PaymentOutcome struct {
	Kind        string
	Installment *entity.Installment
	Remainder   *entity.Installment // solo en OutcomePartiallyPaid
	Activated   bool                // la evaluación posterior promovió al tenant
}

// SettleInstallment aplica un pago a una cuota abierta y devuelve el resultado
// etiquetado. Muta la cuota recibida (estado, metadatos de pago). Para pagos
// parciales newDueDate es obligatoria: es el vencimiento de la cuota por el
// saldo, definido por el operador.
func SettleInstallment(cuota *entity.Installment, paidAt time.Time, method string, amountPaid decimal.Decimal, newDueDate *time.Time) (PaymentOutcome, error) {
	if cuota.IsPaid() {
		return PaymentOutcome{}, domain.ErrAlreadyPaid
	}
	if !amountPaid.IsPositive() || amountPaid.GreaterThan(cuota.Amount) {
		return PaymentOutcome{}, domain.ErrInvalidInput
	}

	shortfall := cuota.Amount.Sub(amountPaid)
	partial := shortfall.IsPositive()
	if partial && newDueDate == nil {
		return PaymentOutcome{}, domain.ErrInvalidInput
	}

	now := time.Now()
	cuota.Status = entity.InstallmentStatusPaid
	cuota.PaidAt = &paidAt
	cuota.PaidAmount = amountPaid
	cuota.Method = method
	cuota.UpdatedAt = now

	if !partial {
		return PaymentOutcome{Kind: OutcomeFullyPaid, Installment: cuota}, nil
	}

	remainder := &entity.Installment{
		ID:           uuid.New().String(),
		TenantID:     cuota.TenantID,
		CostCenterID: cuota.CostCenterID,
		Amount:       shortfall,
		DueDate:      *newDueDate,
		Status:       entity.InstallmentStatusOpen,
		PaidAmount:   decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return PaymentOutcome{Kind: OutcomePartiallyPaid, Installment: cuota, Remainder: remainder}, nil
}

// ReverseInstallment revierte una cuota pagada a abierta y limpia los
// metadatos de pago. Solo es legal sobre cuotas pagadas. No degrada el estado
// de activación del tenant.
func ReverseInstallment(cuota *entity.Installment) error {
	if !cuota.IsPaid() {
		return domain.ErrNotPaid
	}
	cuota.Status = entity.InstallmentStatusOpen
	cuota.PaidAt = nil
	cuota.PaidAmount = decimal.Zero
	cuota.Method = ""
	cuota.UpdatedAt = time.Now()
	return nil
}
