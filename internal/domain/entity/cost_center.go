package entity

import "time"

// CostCenterPlans es el centro de costos al que se atribuyen todas las cuotas
// de suscripción. Se crea perezosamente una sola vez y se reutiliza para todos
// los tenants y todos los ciclos.
const CostCenterPlans = "Planes y Suscripciones"

// CostCenter agrupa movimientos de la contabilidad del operador.
type CostCenter struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
