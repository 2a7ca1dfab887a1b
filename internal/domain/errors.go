package domain

import "errors"

// Errores de dominio (sin dependencias externas). Cada operación rechazada
// devuelve un error distinguible para que la UI pueda reaccionar distinto
// a "subdominio ocupado" que a "no se puede bajar de plan".
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// Resolución de tenants.
	ErrTenantNotIdentified = errors.New("ninguna señal identifica al tenant")
	ErrTenantNotFound      = errors.New("tenant no encontrado")
	ErrTenantInactive      = errors.New("tenant inactivo")

	// Directorio de tenants.
	ErrDuplicateNIT          = errors.New("ya existe una empresa con ese NIT")
	ErrDuplicateDomain       = errors.New("el subdominio ya está ocupado")
	ErrInvalidPartitionName  = errors.New("el subdominio no produce una partición válida")
	ErrProvisioningFailed    = errors.New("falló el aprovisionamiento de la partición")
	ErrHasPaidInstallments   = errors.New("la empresa tiene cuotas pagadas y no puede eliminarse")
	ErrTenantAwaitingPayment = errors.New("la empresa aún espera su primer pago")

	// Facturación de la plataforma.
	ErrDowngradeNotAllowed = errors.New("no se permite cambiar a un plan de menor valor mensual")
	ErrInstallmentNotFound = errors.New("cuota no encontrada")
	ErrAlreadyPaid         = errors.New("la cuota ya está pagada")
	ErrNotPaid             = errors.New("la cuota no está pagada")

	// Usuarios de tenant.
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)
