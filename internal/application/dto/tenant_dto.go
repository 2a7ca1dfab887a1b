package dto

import "time"

// CreateTenantRequest alta de una empresa: directorio + partición + ciclo de
// cuotas, todo en una transacción.
type CreateTenantRequest struct {
	Name   string `json:"name"`
	NIT    string `json:"nit"`
	Domain string `json:"domain"` // subdominio, único global
	Email  string `json:"email"`
	PlanID string `json:"plan_id"`
	// AnchorDate fecha ancla de facturación (primera cuota). Vacía = hoy.
	AnchorDate *time.Time `json:"anchor_date,omitempty"`

	// AdminUser credenciales del administrador de arranque de la partición.
	AdminUser BootstrapAdminRequest `json:"admin_user"`
}

// BootstrapAdminRequest administrador inicial de la partición del tenant.
type BootstrapAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UpgradePlanRequest cambio de plan (solo hacia valor mensual igual o mayor).
type UpgradePlanRequest struct {
	PlanID string `json:"plan_id"`
	// AnchorDate nueva ancla del ciclo regenerado. Vacía = hoy.
	AnchorDate *time.Time `json:"anchor_date,omitempty"`
}

// TenantResponse representación de un tenant para la API del operador.
type TenantResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	NIT        string    `json:"nit"`
	Domain     string    `json:"domain"`
	SchemaName string    `json:"schema_name"`
	PlanID     string    `json:"plan_id"`
	BillingDay time.Time `json:"billing_day"`
	Status     string    `json:"status"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TenantListResponse listado paginado de tenants.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
