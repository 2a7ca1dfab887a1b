package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-api/internal/domain/billing"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// planAnual construye un plan de 12 meses con el total indicado.
func planAnual(t *testing.T, total string, graceDays int) *entity.Plan {
	t.Helper()
	tv, err := decimal.NewFromString(total)
	require.NoError(t, err)
	return &entity.Plan{
		ID:             "plan-1",
		Name:           "Profesional",
		DurationMonths: 12,
		TotalValue:     tv,
		MonthlyValue:   entity.DeriveMonthlyValue(tv, 12),
		GraceDays:      graceDays,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Generación del ciclo anual
// ──────────────────────────────────────────────────────────────────────────────

// Escenario de referencia: plan de 1200.00 anual, ancla 2024-01-15.
// Entrada = 1200/365 × 31 días ≈ 101.92; cuotas 2-12 de 100.00 el día 15.
func TestGenerateAnnualSchedule_EscenarioReferencia(t *testing.T) {
	plan := planAnual(t, "1200.00", 5)
	anchor := fecha(2024, time.January, 15)

	cuotas := billing.GenerateAnnualSchedule("tenant-1", "cc-1", plan, anchor)
	require.Len(t, cuotas, 12)

	entrada := cuotas[0]
	assert.True(t, entrada.DueDate.Equal(anchor), "la entrada vence en la fecha ancla")
	assert.Equal(t, "101.92", entrada.Amount.StringFixed(2),
		"entrada = 1200/365 × 31 días, redondeado a 2 decimales")

	for i, c := range cuotas[1:] {
		assert.Equal(t, "100.00", c.Amount.StringFixed(2), "cuota mensual fija")
		assert.Equal(t, 15, c.DueDate.Day(), "cuota %d debe vencer el día 15", i+2)
		assert.Equal(t, entity.InstallmentStatusOpen, c.Status)
	}
}

// Si el mes destino no tiene el día del ancla, el vencimiento se ajusta al
// último día del mes (ancla día 31 → abril 30, febrero 29 en bisiesto).
func TestGenerateAnnualSchedule_AjusteFinDeMes(t *testing.T) {
	plan := planAnual(t, "1200.00", 5)
	anchor := fecha(2024, time.January, 31)

	cuotas := billing.GenerateAnnualSchedule("tenant-1", "cc-1", plan, anchor)
	require.Len(t, cuotas, 12)

	// cuotas[1] = febrero 2024 (bisiesto), cuotas[3] = abril.
	assert.True(t, cuotas[1].DueDate.Equal(fecha(2024, time.February, 29)),
		"febrero bisiesto ajusta 31 → 29")
	assert.True(t, cuotas[3].DueDate.Equal(fecha(2024, time.April, 30)),
		"abril ajusta 31 → 30")
	assert.True(t, cuotas[2].DueDate.Equal(fecha(2024, time.March, 31)),
		"marzo sí tiene día 31")
}

// Las cuotas se generan en orden cronológico de vencimiento.
func TestGenerateAnnualSchedule_OrdenCronologico(t *testing.T) {
	plan := planAnual(t, "2400.00", 10)
	cuotas := billing.GenerateAnnualSchedule("tenant-1", "cc-1", plan, fecha(2024, time.March, 30))

	for i := 1; i < len(cuotas); i++ {
		assert.True(t, cuotas[i].DueDate.After(cuotas[i-1].DueDate),
			"cuota %d debe vencer después que la %d", i+1, i)
	}
}

// La parte fija del ciclo (12 × valor mensual derivado) reproduce el total
// anual del plan con tolerancia de 1 centavo; la suma del ciclo generado es
// exactamente entrada + 11 × mensual.
func TestGenerateAnnualSchedule_SumaDelCiclo(t *testing.T) {
	casos := []string{"1200.00", "2399.99", "977.77", "3601.00"}
	anclas := []time.Time{
		fecha(2024, time.January, 15),
		fecha(2024, time.February, 29),
		fecha(2025, time.July, 1),
		fecha(2025, time.December, 31),
	}

	for _, total := range casos {
		for _, ancla := range anclas {
			plan := planAnual(t, total, 5)
			cuotas := billing.GenerateAnnualSchedule("tenant-1", "cc-1", plan, ancla)

			// 12 × mensual ≈ total (tolerancia de redondeo de 1 centavo).
			docePartes := plan.MonthlyValue.Mul(decimal.NewFromInt(12))
			diff := docePartes.Sub(plan.TotalValue).Abs()
			assert.True(t, diff.LessThanOrEqual(decimal.NewFromFloat(0.12)),
				"total %s ancla %s: 12×mensual=%s difiere %s del total", total, ancla, docePartes, diff)

			// Suma exacta del ciclo = entrada + 11 × mensual.
			suma := decimal.Zero
			for _, c := range cuotas {
				suma = suma.Add(c.Amount)
			}
			esperado := cuotas[0].Amount.Add(plan.MonthlyValue.Mul(decimal.NewFromInt(11)))
			assert.True(t, suma.Equal(esperado), "total %s ancla %s: suma %s ≠ %s", total, ancla, suma, esperado)
		}
	}
}

// El prorrateo cuenta días calendario entre el ancla y la misma fecha un mes
// después.
func TestProratedEntryAmount_RedondeoDeDias(t *testing.T) {
	total := decimal.RequireFromString("1200.00")

	enero := billing.ProratedEntryAmount(total, fecha(2024, time.January, 15))
	febrero := billing.ProratedEntryAmount(total, fecha(2024, time.February, 15))

	assert.Equal(t, "101.92", enero.StringFixed(2), "enero→febrero son 31 días")
	assert.Equal(t, "95.34", febrero.StringFixed(2), "febrero→marzo 2024 son 29 días")
}

// Un ancla en un huso con horario de verano no altera la cuenta de días: el
// mes octubre→noviembre cruza el retroceso del reloj (745 horas de pared)
// pero sigue siendo 31 días calendario.
func TestProratedEntryAmount_HorarioDeVerano(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	total := decimal.RequireFromString("1200.00")

	local := billing.ProratedEntryAmount(total, time.Date(2024, time.October, 15, 0, 0, 0, 0, ny))
	utc := billing.ProratedEntryAmount(total, fecha(2024, time.October, 15))

	assert.Equal(t, "101.92", local.StringFixed(2), "octubre→noviembre son 31 días aun con cambio de hora")
	assert.True(t, local.Equal(utc), "el location del ancla no cambia el prorrateo")
}

func TestAddMonthsClamped(t *testing.T) {
	assert.True(t, billing.AddMonthsClamped(fecha(2024, time.January, 31), 1).Equal(fecha(2024, time.February, 29)))
	assert.True(t, billing.AddMonthsClamped(fecha(2023, time.January, 30), 1).Equal(fecha(2023, time.February, 28)))
	assert.True(t, billing.AddMonthsClamped(fecha(2024, time.December, 15), 1).Equal(fecha(2025, time.January, 15)),
		"cruce de año conserva el día")
}
