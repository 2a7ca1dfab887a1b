package tenant

import (
	"context"

	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a la transacción del directorio
// (schema compartido del operador) más el administrador de particiones atado
// a la misma transacción: el aprovisionamiento DDL participa del rollback.
type TxRepos struct {
	Tenants      repository.TenantRepository
	Plans        repository.PlanRepository
	Installments repository.InstallmentRepository
	CostCenters  repository.CostCenterRepository
	Partitions   PartitionAdmin
}

// TxRunner ejecuta fn dentro de una transacción PostgreSQL con repos atados a
// la tx. Si fn retorna error se hace rollback completo: un fallo a mitad del
// alta de tenant no deja ni fila en el directorio ni schema a medias.
type TxRunner interface {
	Run(ctx context.Context, fn func(tx TxRepos) error) error
}

// BootstrapAdmin credenciales ya hasheadas del administrador inicial de la
// partición. El hash se calcula en el caso de uso, nunca en infraestructura.
type BootstrapAdmin struct {
	Email        string
	PasswordHash string
	Name         string
}

// PartitionAdmin aprovisiona y elimina particiones (schemas) de tenant dentro
// de la transacción en curso.
type PartitionAdmin interface {
	// Provision crea schema, tipos enumerados (con verificación de existencia,
	// repetible sin error), tablas base y el admin de arranque si no existe.
	Provision(ctx context.Context, schemaName string, admin BootstrapAdmin) error
	// Drop elimina el schema completo del tenant.
	Drop(ctx context.Context, schemaName string) error
}

// PartitionCache expone la invalidación del caché de handles de partición;
// la eliminación de un tenant debe cerrar y desalojar su handle.
type PartitionCache interface {
	Invalidate(schemaName string)
}
