package entity

import "time"

// Estados de activación de un tenant. El estado inicial es AwaitingPayment;
// la evaluación automática de cuotas solo promueve AwaitingPayment -> Active,
// y el toggle manual del operador alterna Active <-> Blocked.
const (
	TenantStatusAwaitingPayment = "awaiting_payment"
	TenantStatusActive          = "active"
	TenantStatusBlocked         = "blocked"
)

// Tenant representa una empresa de eventos suscrita a la plataforma.
// Vive en el schema compartido del operador (directorio de tenants); sus datos
// operativos viven en su propia partición (SchemaName).
type Tenant struct {
	ID         string
	Name       string // razón social
	NIT        string // identificador fiscal, único global
	Domain     string // subdominio, único global
	SchemaName string // derivado determinísticamente de Domain, inmutable
	PlanID     string
	BillingDay time.Time // ancla de facturación (fecha de la primera cuota)
	Status     string
	Email      string // contacto de facturación
	Version    int64  // bloqueo optimista: toggle manual vs evaluación automática
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CanAccess informa si los usuarios del tenant pueden operar la plataforma.
func (t *Tenant) CanAccess() bool {
	return t.Status == TenantStatusActive
}

// CanToggle informa si el toggle manual Active <-> Blocked es legal desde el
// estado actual. Mientras espera el primer pago el toggle se rechaza: la única
// salida de AwaitingPayment es la evaluación automática de cuotas.
func (t *Tenant) CanToggle() bool {
	return t.Status == TenantStatusActive || t.Status == TenantStatusBlocked
}

// ToggledStatus devuelve el estado resultante del toggle manual.
func (t *Tenant) ToggledStatus() string {
	if t.Status == TenantStatusActive {
		return TenantStatusBlocked
	}
	return TenantStatusActive
}
