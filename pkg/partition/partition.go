// Package partition define el contrato de nombres de las particiones (schemas)
// por tenant. La derivación es determinística: un mismo subdominio siempre
// produce el mismo nombre de schema.
package partition

import (
	"fmt"
	"strings"
)

// SchemaPrefix antepuesto a todo nombre de schema derivado. Garantiza que una
// derivación nunca colisione con schemas del sistema (public, pg_catalog...).
const SchemaPrefix = "empresa_"

// ReservedSchema es el schema compartido del operador de la plataforma
// (directorio de tenants, planes, cuotas). Nunca debe resolverse como
// partición de un tenant.
const ReservedSchema = "public"

// SchemaName deriva el nombre de schema de un subdominio: minúsculas, solo
// [a-z0-9], con el prefijo SchemaPrefix. Devuelve error si el subdominio no
// aporta ningún carácter válido o si el resultado colisiona con el schema
// reservado del operador.
func SchemaName(domain string) (string, error) {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(domain)) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	clean := b.String()
	if clean == "" {
		return "", fmt.Errorf("subdominio %q no produce un nombre de schema válido", domain)
	}
	name := SchemaPrefix + clean
	if name == ReservedSchema || clean == ReservedSchema {
		return "", fmt.Errorf("subdominio %q colisiona con el schema reservado", domain)
	}
	return name, nil
}

// IsValidDomain informa si el subdominio puede usarse como identificador de
// tenant: 2-30 caracteres, solo letras minúsculas, dígitos y guiones, sin
// empezar ni terminar en guion.
func IsValidDomain(domain string) bool {
	if len(domain) < 2 || len(domain) > 30 {
		return false
	}
	if domain[0] == '-' || domain[len(domain)-1] == '-' {
		return false
	}
	for _, r := range domain {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}
	return domain != ReservedSchema
}
