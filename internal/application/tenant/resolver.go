package tenant

import (
	"context"
	"net"
	"net/url"
	"strings"

	"github.com/jhoicas/eventos-api/internal/domain"
	"github.com/jhoicas/eventos-api/internal/domain/entity"
	"github.com/jhoicas/eventos-api/internal/domain/repository"
)

// Signals son las señales de identificación de tenant extraídas de una
// petición. El resolutor las evalúa en orden de prioridad; la primera señal
// presente decide, aunque su búsqueda falle (no hay fallback entre señales).
type Signals struct {
	TenantID    string // cabecera X-Tenant-ID o query tenant_id
	Domain      string // cabecera X-Tenant-Domain o query tenant
	Origin      string // cabecera Origin
	Referer     string // cabecera Referer
	Host        string // host de la petición
	ClaimDomain string // claim tenant_domain de la sesión firmada
}

// Resolver deriva el tenant de una petición a partir de sus señales.
type Resolver struct {
	tenants       repository.TenantRepository
	defaultDomain string // respaldo solo-desarrollo; vacío en producción
}

// NewResolver construye el resolutor. defaultDomain vacío desactiva el
// respaldo de desarrollo.
func NewResolver(tenants repository.TenantRepository, defaultDomain string) *Resolver {
	return &Resolver{tenants: tenants, defaultDomain: defaultDomain}
}

// Resolve aplica el orden de prioridad: id explícito, subdominio explícito,
// subdominio inferido de Origin/Referer/Host, claim de sesión, respaldo de
// desarrollo. Sin señal alguna: ErrTenantNotIdentified. Señal presente que no
// corresponde a ningún tenant: ErrTenantNotFound.
func (r *Resolver) Resolve(ctx context.Context, sig Signals) (*entity.Tenant, error) {
	if sig.TenantID != "" {
		t, err := r.tenants.GetByID(ctx, sig.TenantID)
		return found(t, err)
	}
	if sig.Domain != "" {
		return r.byDomain(ctx, sig.Domain)
	}
	for _, raw := range []string{sig.Origin, sig.Referer, sig.Host} {
		if candidate := SubdomainCandidate(raw); candidate != "" {
			return r.byDomain(ctx, candidate)
		}
	}
	if sig.ClaimDomain != "" {
		return r.byDomain(ctx, sig.ClaimDomain)
	}
	if r.defaultDomain != "" {
		return r.byDomain(ctx, r.defaultDomain)
	}
	return nil, domain.ErrTenantNotIdentified
}

func (r *Resolver) byDomain(ctx context.Context, d string) (*entity.Tenant, error) {
	t, err := r.tenants.GetByDomain(ctx, strings.ToLower(d))
	return found(t, err)
}

func found(t *entity.Tenant, err error) (*entity.Tenant, error) {
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrTenantNotFound
	}
	return t, nil
}

// SubdomainCandidate extrae el label más a la izquierda de un host como
// candidato a subdominio de tenant, solo cuando el host tiene más de dos
// labels. Hosts pelados (localhost), IPs y hosts de dos labels nunca
// producen candidato. Acepta URLs completas (Origin/Referer) o hosts crudos.
func SubdomainCandidate(raw string) string {
	if raw == "" {
		return ""
	}
	host := raw
	if strings.Contains(raw, "://") {
		u, err := url.Parse(raw)
		if err != nil {
			return ""
		}
		host = u.Hostname()
	} else if h, _, err := net.SplitHostPort(raw); err == nil {
		host = h
	}
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}
	labels := strings.Split(host, ".")
	if len(labels) <= 2 {
		return ""
	}
	return strings.ToLower(labels[0])
}
