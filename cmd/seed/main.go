// seed genera el script SQL del catálogo inicial de planes.
//
// Uso: go run ./cmd/seed [ruta/salida.sql]
// Por defecto escribe migrations/002_seed_plans.sql
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eventos-api/internal/domain/entity"
)

// planSeed define el catálogo inicial. Los valores son anuales; el mensual se
// deriva igual que en el alta por API.
type planSeed struct {
	name       string
	totalValue string
	graceDays  int
	autoRenew  bool
}

var catalogo = []planSeed{
	{name: "Emprendedor", totalValue: "1200000", graceDays: 5, autoRenew: false},
	{name: "Profesional", totalValue: "2400000", graceDays: 5, autoRenew: true},
	{name: "Empresarial", totalValue: "4800000", graceDays: 10, autoRenew: true},
}

func main() {
	outPath := filepath.Join("migrations", "002_seed_plans.sql")
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}

	f, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear salida: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	fmt.Fprintln(f, "-- Catálogo inicial de planes. Generado por cmd/seed.")
	fmt.Fprintln(f, "INSERT INTO plans (id, name, duration_months, total_value, monthly_value, grace_days, auto_renew, created_at, updated_at)")
	fmt.Fprintln(f, "VALUES")

	now := time.Now().UTC().Format("2006-01-02 15:04:05")
	for i, p := range catalogo {
		total := decimal.RequireFromString(p.totalValue)
		monthly := entity.DeriveMonthlyValue(total, 12)
		sep := ","
		if i == len(catalogo)-1 {
			sep = ""
		}
		fmt.Fprintf(f, "    ('%s', '%s', 12, %s, %s, %d, %t, '%s', '%s')%s\n",
			uuid.New().String(), p.name, total.StringFixed(2), monthly.StringFixed(2),
			p.graceDays, p.autoRenew, now, now, sep)
	}
	fmt.Fprintln(f, "ON CONFLICT DO NOTHING;")

	fmt.Printf("Escrito %s (%d planes)\n", outPath, len(catalogo))
}
