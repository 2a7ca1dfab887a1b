package partition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eventos-api/pkg/partition"
)

// La derivación es determinística: limpia, minúsculas y con prefijo.
func TestSchemaName_Derivacion(t *testing.T) {
	name, err := partition.SchemaName("Fiestas-Bogota")
	require.NoError(t, err)
	assert.Equal(t, "empresa_fiestasbogota", name, "debe limpiar guiones y pasar a minúsculas")

	again, err := partition.SchemaName("fiestasbogota")
	require.NoError(t, err)
	assert.Equal(t, name, again, "la derivación debe ser determinística")
}

// Un subdominio sin caracteres alfanuméricos no produce schema.
func TestSchemaName_SubdominioVacio(t *testing.T) {
	_, err := partition.SchemaName("---..--")
	assert.Error(t, err)

	_, err = partition.SchemaName("   ")
	assert.Error(t, err)
}

// El schema compartido del operador nunca puede derivarse como partición.
func TestSchemaName_RechazaSchemaReservado(t *testing.T) {
	_, err := partition.SchemaName("public")
	assert.Error(t, err, "el subdominio 'public' colisiona con el schema del operador")

	_, err = partition.SchemaName("PUBLIC")
	assert.Error(t, err)
}

func TestIsValidDomain(t *testing.T) {
	assert.True(t, partition.IsValidDomain("fiestas-bogota"))
	assert.True(t, partition.IsValidDomain("eventos123"))

	assert.False(t, partition.IsValidDomain("a"), "muy corto")
	assert.False(t, partition.IsValidDomain("-fiestas"), "empieza en guion")
	assert.False(t, partition.IsValidDomain("fiestas-"), "termina en guion")
	assert.False(t, partition.IsValidDomain("Fiestas"), "mayúsculas no permitidas")
	assert.False(t, partition.IsValidDomain("public"), "nombre reservado")
}
