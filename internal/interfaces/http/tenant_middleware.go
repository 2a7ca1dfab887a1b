package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/eventos-api/internal/application/dto"
	"github.com/jhoicas/eventos-api/internal/application/tenant"
	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/pkg/jwt"
)

// Locals keys del tenant resuelto.
const (
	LocalTenant        = "tenant"
	LocalPartitionPool = "partition_pool"
)

// TenantResolver resuelve el tenant de una petición a partir de sus señales.
type TenantResolver interface {
	Resolve(ctx context.Context, sig tenant.Signals) (*entity.Tenant, error)
}

// PartitionSource entrega el pool de la partición de un tenant.
type PartitionSource interface {
	Get(ctx context.Context, schemaName string) (*pgxpool.Pool, error)
}

// ResolveTenant resuelve el tenant de cada petición, exige que esté activo y
// deja el tenant y el pool de su partición en c.Locals.
func ResolveTenant(resolver TenantResolver, partitions PartitionSource, jwtSecret string) fiber.Handler {
	return resolveTenant(resolver, partitions, jwtSecret, false)
}

// ResolveTenantAllowInactive resuelve el tenant sin exigir que esté activo.
// Para el login: un usuario de un tenant pendiente de pago debe poder entrar
// a ver su estado de cuenta, no operar la plataforma.
func ResolveTenantAllowInactive(resolver TenantResolver, partitions PartitionSource, jwtSecret string) fiber.Handler {
	return resolveTenant(resolver, partitions, jwtSecret, true)
}

func resolveTenant(resolver TenantResolver, partitions PartitionSource, jwtSecret string, allowInactive bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sig := extractSignals(c, jwtSecret)
		t, err := resolver.Resolve(c.UserContext(), sig)
		if err == nil && !allowInactive && !t.CanAccess() {
			err = domain.ErrTenantInactive
		}
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrTenantNotIdentified):
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "TENANT_NOT_IDENTIFIED", Message: "la petición no identifica ningún tenant"})
			case errors.Is(err, domain.ErrTenantNotFound):
				return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "TENANT_NOT_FOUND", Message: "tenant no encontrado"})
			case errors.Is(err, domain.ErrTenantInactive):
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "TENANT_INACTIVE", Message: "la suscripción del tenant no está activa"})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}

		pool, err := partitions.Get(c.UserContext(), t.SchemaName)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PARTITION_UNAVAILABLE", Message: "no se pudo abrir la partición del tenant"})
		}

		c.Locals(LocalTenant, t)
		c.Locals(LocalPartitionPool, pool)
		return c.Next()
	}
}

// extractSignals junta las señales de identificación de la petición. El claim
// JWT se parsea de forma laxa: un token inválido aquí solo significa que esa
// señal no existe; el rechazo duro es trabajo del middleware de auth.
func extractSignals(c *fiber.Ctx, jwtSecret string) tenant.Signals {
	sig := tenant.Signals{
		TenantID: c.Get("X-Tenant-ID", c.Query("tenant_id")),
		Domain:   c.Get("X-Tenant-Domain", c.Query("tenant")),
		Origin:   c.Get(fiber.HeaderOrigin),
		Referer:  c.Get(fiber.HeaderReferer),
		Host:     c.Hostname(),
	}
	if token := bearerToken(c); token != "" {
		if claims, err := jwt.Parse(jwtSecret, token); err == nil {
			sig.ClaimDomain = claims.TenantDomain
		}
	}
	return sig
}

// CurrentTenant devuelve el tenant resuelto por el middleware.
func CurrentTenant(c *fiber.Ctx) *entity.Tenant {
	t, _ := c.Locals(LocalTenant).(*entity.Tenant)
	return t
}

// PartitionPool devuelve el pool de la partición del tenant resuelto.
func PartitionPool(c *fiber.Ctx) *pgxpool.Pool {
	p, _ := c.Locals(LocalPartitionPool).(*pgxpool.Pool)
	return p
}
