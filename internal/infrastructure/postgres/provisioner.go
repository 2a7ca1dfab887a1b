package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eventos-api/internal/application/tenant"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/pkg/partition"
)

var _ tenant.PartitionAdmin = (*Provisioner)(nil)

// Provisioner crea y elimina particiones (schemas) de tenant. Se construye
// sobre la transacción en curso: en PostgreSQL el DDL es transaccional, así
// que un rollback del alta de tenant también deshace el schema.
type Provisioner struct {
	db Querier
}

// NewProvisioner construye el aprovisionador sobre el Querier recibido.
func NewProvisioner(db Querier) *Provisioner {
	return &Provisioner{db: db}
}

// Provision crea el schema del tenant con sus tipos, tablas base y el admin
// de arranque. Es repetible: schema, tipos y tablas usan verificación de
// existencia y el admin se inserta solo si su email no existe.
func (p *Provisioner) Provision(ctx context.Context, schemaName string, admin tenant.BootstrapAdmin) error {
	if err := checkSchemaName(schemaName); err != nil {
		return err
	}

	// Los identificadores no son parametrizables; schemaName ya pasó el
	// filtro estricto de caracteres.
	stmts := []string{
		fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, schemaName),
		fmt.Sprintf(`
			DO $$ BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_type t
					JOIN pg_namespace n ON n.oid = t.typnamespace
					WHERE t.typname = 'user_role' AND n.nspname = '%s'
				) THEN
					CREATE TYPE %s.user_role AS ENUM ('%s', '%s', '%s');
				END IF;
			END $$`, schemaName, schemaName,
			entity.RoleAdmin, entity.RoleCoordinador, entity.RoleComercial),
		fmt.Sprintf(`
			DO $$ BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_type t
					JOIN pg_namespace n ON n.oid = t.typnamespace
					WHERE t.typname = 'event_status' AND n.nspname = '%s'
				) THEN
					CREATE TYPE %s.event_status AS ENUM ('cotizado', 'confirmado', 'ejecutado', 'cancelado');
				END IF;
			END $$`, schemaName, schemaName),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.users (
				id            UUID PRIMARY KEY,
				email         TEXT NOT NULL UNIQUE,
				password_hash TEXT NOT NULL,
				name          TEXT NOT NULL,
				role          %s.user_role NOT NULL DEFAULT 'admin',
				status        TEXT NOT NULL DEFAULT 'active',
				created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, schemaName, schemaName),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.clients (
				id         UUID PRIMARY KEY,
				name       TEXT NOT NULL,
				nit        TEXT NOT NULL DEFAULT '',
				email      TEXT NOT NULL DEFAULT '',
				phone      TEXT NOT NULL DEFAULT '',
				created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, schemaName),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s.events (
				id          UUID PRIMARY KEY,
				client_id   UUID REFERENCES %s.clients(id),
				name        TEXT NOT NULL,
				status      %s.event_status NOT NULL DEFAULT 'cotizado',
				starts_at   TIMESTAMPTZ,
				ends_at     TIMESTAMPTZ,
				total_value NUMERIC(14,2) NOT NULL DEFAULT 0,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
			)`, schemaName, schemaName, schemaName),
	}
	for _, stmt := range stmts {
		if _, err := p.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("provision schema %s: %w", schemaName, err)
		}
	}

	now := time.Now()
	insertAdmin := fmt.Sprintf(`
		INSERT INTO %s.users (id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'active', $6, $6)
		ON CONFLICT (email) DO NOTHING`, schemaName)
	_, err := p.db.Exec(ctx, insertAdmin,
		uuid.New().String(), admin.Email, admin.PasswordHash, admin.Name, entity.RoleAdmin, now,
	)
	if err != nil {
		return fmt.Errorf("bootstrap admin %s: %w", schemaName, err)
	}
	return nil
}

// Drop elimina el schema del tenant con todo su contenido.
func (p *Provisioner) Drop(ctx context.Context, schemaName string) error {
	if err := checkSchemaName(schemaName); err != nil {
		return err
	}
	if _, err := p.db.Exec(ctx, fmt.Sprintf(`DROP SCHEMA IF EXISTS %s CASCADE`, schemaName)); err != nil {
		return fmt.Errorf("drop schema %s: %w", schemaName, err)
	}
	return nil
}

// checkSchemaName rechaza cualquier nombre que no sea una derivación legítima:
// prefijo obligatorio y solo [a-z0-9] después del prefijo. Es la última línea
// antes de interpolar el identificador en DDL.
func checkSchemaName(schemaName string) error {
	rest, ok := strings.CutPrefix(schemaName, partition.SchemaPrefix)
	if !ok || rest == "" {
		return domain.ErrInvalidPartitionName
	}
	for _, r := range rest {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')) {
			return domain.ErrInvalidPartitionName
		}
	}
	return nil
}
