package entity

import "time"

// Roles válidos para User (usuarios dentro de la partición de un tenant).
const (
	RoleAdmin       = "admin"
	RoleCoordinador = "coordinador"
	RoleComercial   = "comercial"
)

// User representa un usuario operativo de un tenant. Vive en la partición del
// tenant, no en el schema compartido: no necesita tenant_id porque el schema
// ya lo aísla. El primer usuario (admin de arranque) lo crea el
// aprovisionamiento de la partición.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt, nunca plano después de persistir
	Name         string
	Role         string // admin, coordinador, comercial
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
