package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// Asegura que TenantRepo implementa repository.TenantRepository.
var _ repository.TenantRepository = (*TenantRepo)(nil)

const tenantColumns = `id, name, nit, domain, schema_name, plan_id, billing_day, status, email, version, created_at, updated_at`

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL
// (directorio en el schema compartido).
type TenantRepo struct {
	db Querier
}

// NewTenantRepository construye el adaptador de persistencia del directorio.
func NewTenantRepository(db Querier) *TenantRepo {
	return &TenantRepo{db: db}
}

// Create persiste un nuevo tenant. Mapea violaciones de unicidad a los
// errores de dominio distinguibles por constraint.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `
		INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.Exec(ctx, query,
		t.ID, t.Name, t.NIT, t.Domain, t.SchemaName, t.PlanID,
		t.BillingDay, t.Status, t.Email, t.Version, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			switch violatedConstraint(err) {
			case "tenants_domain_unique", "tenants_schema_name_unique":
				return domain.ErrDuplicateDomain
			default:
				return domain.ErrDuplicateNIT
			}
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID; nil si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
}

// GetByNIT obtiene un tenant por su identificador fiscal.
func (r *TenantRepo) GetByNIT(ctx context.Context, nit string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE nit = $1`, nit)
}

// GetByDomain obtiene un tenant por su subdominio.
func (r *TenantRepo) GetByDomain(ctx context.Context, dom string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE domain = $1`, dom)
}

// GetByIDForUpdate bloquea la fila del tenant en la transacción actual.
func (r *TenantRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1 FOR UPDATE`, id)
}

func (r *TenantRepo) getOne(ctx context.Context, query string, arg any) (*entity.Tenant, error) {
	var t entity.Tenant
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&t.ID, &t.Name, &t.NIT, &t.Domain, &t.SchemaName, &t.PlanID,
		&t.BillingDay, &t.Status, &t.Email, &t.Version, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}

// List devuelve tenants con paginación, más recientes primero.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tenant
	for rows.Next() {
		var t entity.Tenant
		if err := rows.Scan(
			&t.ID, &t.Name, &t.NIT, &t.Domain, &t.SchemaName, &t.PlanID,
			&t.BillingDay, &t.Status, &t.Email, &t.Version, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado con bloqueo optimista: si la versión leída ya
// no es la actual no se afecta ninguna fila y se devuelve domain.ErrConflict.
func (r *TenantRepo) UpdateStatus(ctx context.Context, id, status string, version int64) error {
	query := `
		UPDATE tenants SET status = $2, version = version + 1, updated_at = $3
		WHERE id = $1 AND version = $4`
	cmd, err := r.db.Exec(ctx, query, id, status, time.Now(), version)
	if err != nil {
		return fmt.Errorf("update tenant status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

// UpdatePlan actualiza plan y ancla de facturación del tenant.
func (r *TenantRepo) UpdatePlan(ctx context.Context, t *entity.Tenant) error {
	query := `
		UPDATE tenants SET plan_id = $2, billing_day = $3, updated_at = $4
		WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, t.ID, t.PlanID, t.BillingDay, time.Now())
	if err != nil {
		return fmt.Errorf("update tenant plan: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// Delete elimina solo la fila del directorio. El caso de uso borra antes las
// cuotas abiertas en la misma transacción y el aprovisionador elimina el
// schema del tenant.
func (r *TenantRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tenant: %w", err)
	}
	return nil
}
