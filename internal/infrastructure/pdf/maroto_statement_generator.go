// Package pdf implementa la generación del estado de cuenta de suscripción
// de un tenant.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Plataforma  │  ESTADO DE CUENTA + fecha emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TENANT: Razón social + NIT + subdominio + estado            │
//	│  PLAN: Nombre + valor anual + valor mensual + gracia         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Vencimiento | Estado | Monto | Pagada el | Método    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total ciclo / Total pagado / SALDO PENDIENTE       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-api/internal/application/payments"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoStatementGenerator implementa payments.StatementGenerator usando
// Maroto v2.
type MarotoStatementGenerator struct {
	platformName string
}

var _ payments.StatementGenerator = (*MarotoStatementGenerator)(nil)

// NewMarotoStatementGenerator construye el generador con el nombre de la
// plataforma para el encabezado.
func NewMarotoStatementGenerator(platformName string) *MarotoStatementGenerator {
	return &MarotoStatementGenerator{platformName: platformName}
}

// GenerateStatement genera el PDF del estado de cuenta y devuelve sus bytes.
func (g *MarotoStatementGenerator) GenerateStatement(
	_ context.Context,
	tenant *entity.Tenant,
	plan *entity.Plan,
	cuotas []*entity.Installment,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de Cuenta de Suscripción", true).
		WithAuthor(g.platformName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.platformName, tenant))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tenantRow(tenant))
	m.AddRows(planRow(plan))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range installmentRows(cuotas) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(cuotas))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar estado de cuenta: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre de la plataforma (izq) y título + fecha (der).
func headerRow(platformName string, tenant *entity.Tenant) core.Row {
	emision := tenant.UpdatedAt.Format("02/01/2006")
	return row.New(18).Add(
		col.New(7).Add(
			text.New(platformName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Suscripciones y facturación", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emisión: "+emision, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// tenantRow: identificación de la empresa suscrita.
func tenantRow(tenant *entity.Tenant) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("EMPRESA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("NIT: %s   |   Subdominio: %s   |   Estado: %s",
				tenant.NIT, tenant.Domain, statusLabel(tenant.Status),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// planRow: plan contratado y sus condiciones.
func planRow(plan *entity.Plan) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PLAN CONTRATADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Valor anual: $%s   |   Valor mensual: $%s   |   Gracia: %d días",
				plan.Name,
				formatMoney(plan.TotalValue.StringFixed(0)),
				formatMoney(plan.MonthlyValue.StringFixed(0)),
				plan.GraceDays,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de cuotas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Vencimiento", 3, align.Left),
		h("Estado", 2, align.Center),
		h("Monto", 3, align.Right),
		h("Pagada el", 2, align.Center),
		h("Método", 2, align.Center),
	)
}

// installmentRows: una fila por cuota, en el orden recibido (cronológico).
func installmentRows(cuotas []*entity.Installment) []core.Row {
	result := make([]core.Row, 0, len(cuotas))
	for _, c := range cuotas {
		pagadaEl := "—"
		if c.PaidAt != nil {
			pagadaEl = c.PaidAt.Format("02/01/2006")
		}
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(
				c.DueDate.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				installmentStatusLabel(c.Status),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(3).Add(text.New(
				"$"+formatMoney(c.Amount.StringFixed(0)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				pagadaEl,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				nonEmpty(c.Method, "—"),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// totalsRow: total del ciclo, pagado y saldo pendiente.
func totalsRow(cuotas []*entity.Installment) core.Row {
	total := decimal.Zero
	pagado := decimal.Zero
	for _, c := range cuotas {
		total = total.Add(c.Amount)
		pagado = pagado.Add(c.PaidAmount)
	}
	saldo := total.Sub(pagado)

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grandLabel := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2,
		})
	}
	grandValue := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1,
		})
	}

	return row.New(26).Add(
		col.New(3),
		col.New(3).Add(
			label("Total del ciclo:"),
			label("Total pagado:"),
			grandLabel("SALDO PENDIENTE:"),
		),
		col.New(3).Add(
			value("$"+formatMoney(total.StringFixed(0))),
			value("$"+formatMoney(pagado.StringFixed(0))),
			grandValue("$"+formatMoney(saldo.StringFixed(0))),
		),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func statusLabel(status string) string {
	switch status {
	case entity.TenantStatusAwaitingPayment:
		return "Pendiente de pago"
	case entity.TenantStatusActive:
		return "Activa"
	case entity.TenantStatusBlocked:
		return "Bloqueada"
	}
	return status
}

func installmentStatusLabel(status string) string {
	switch status {
	case entity.InstallmentStatusOpen:
		return "Abierta"
	case entity.InstallmentStatusPaid:
		return "Pagada"
	}
	return status
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
