package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Plan es una plantilla de facturación: duración, valor anual y política de
// gracia. Inmutable una vez que existen cuotas generadas contra él; un tenant
// solo puede moverse a un plan de valor mensual igual o mayor.
type Plan struct {
	ID             string
	Name           string
	DurationMonths int             // meses del ciclo (12 en el producto actual)
	TotalValue     decimal.Decimal // valor anual
	MonthlyValue   decimal.Decimal // TotalValue / DurationMonths, redondeado a 2 decimales
	GraceDays      int             // días de mora tolerados antes de bloquear la activación
	AutoRenew      bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DeriveMonthlyValue calcula el valor mensual a partir del total y la duración.
func DeriveMonthlyValue(total decimal.Decimal, durationMonths int) decimal.Decimal {
	if durationMonths <= 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(durationMonths))).Round(2)
}
