// Package billing contiene la lógica pura de facturación de la plataforma:
// generación del ciclo anual de cuotas, conciliación de pagos y la evaluación
// de activación del tenant. No toca persistencia; los casos de uso de
// application la orquestan dentro de transacciones.
package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

var daysPerYear = decimal.NewFromInt(365)

// GenerateAnnualSchedule genera las 12 cuotas de un ciclo anual, en orden
// cronológico de vencimiento:
//
//   - Cuota 1 (entrada): vence en la fecha ancla; monto prorrateado
//     TotalValue/365 × días hasta la misma fecha del mes siguiente,
//     redondeado a 2 decimales.
//   - Cuotas 2-12: vencen mensualmente en el mismo día del mes que el ancla,
//     por el valor mensual del plan. Si el mes destino no tiene ese día
//     (ej. 30 de febrero), el vencimiento se ajusta al último día del mes.
func GenerateAnnualSchedule(tenantID, costCenterID string, plan *entity.Plan, anchor time.Time) []*entity.Installment {
	anchor = dateOnly(anchor)
	now := time.Now()

	cuotas := make([]*entity.Installment, 0, 12)
	cuotas = append(cuotas, &entity.Installment{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		CostCenterID: costCenterID,
		Amount:       ProratedEntryAmount(plan.TotalValue, anchor),
		DueDate:      anchor,
		Status:       entity.InstallmentStatusOpen,
		PaidAmount:   decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	})

	for i := 1; i <= 11; i++ {
		cuotas = append(cuotas, &entity.Installment{
			ID:           uuid.New().String(),
			TenantID:     tenantID,
			CostCenterID: costCenterID,
			Amount:       plan.MonthlyValue,
			DueDate:      AddMonthsClamped(anchor, i),
			Status:       entity.InstallmentStatusOpen,
			PaidAmount:   decimal.Zero,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	return cuotas
}

// ProratedEntryAmount calcula el monto de la cuota de entrada: valor diario
// (total anual / 365) por los días calendario entre el ancla y la misma fecha
// un mes después, con redondeo a 2 decimales del monto.
func ProratedEntryAmount(totalValue decimal.Decimal, anchor time.Time) decimal.Decimal {
	anchor = dateOnly(anchor)
	next := AddMonthsClamped(anchor, 1)
	days := daysBetween(anchor, next)
	return totalValue.Div(daysPerYear).Mul(decimal.NewFromInt(int64(days))).Round(2)
}

// AddMonthsClamped suma meses conservando el día del mes del ancla; cuando el
// mes destino es más corto, el día se ajusta a su último día en lugar de
// desbordarse al mes siguiente (a diferencia de time.AddDate).
func AddMonthsClamped(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	firstOfTarget := time.Date(y, m, 1, 0, 0, 0, 0, t.Location()).AddDate(0, months, 0)
	if last := lastDayOfMonth(firstOfTarget.Year(), firstOfTarget.Month()); d > last {
		d = last
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), d, 0, 0, 0, 0, t.Location())
}

// lastDayOfMonth devuelve el número de días del mes (el día 0 del mes
// siguiente normaliza al último día del mes pedido).
func lastDayOfMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// daysBetween cuenta días calendario entre dos fechas. Normaliza ambos
// extremos a medianoche UTC: las transiciones de horario de verano del
// location del ancla no alteran la cuenta (un mes de 745 horas sigue siendo
// 31 días).
func daysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f) / (24 * time.Hour))
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
