package sku_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpilot/stockpilot-api/pkg/sku"
)

func TestGenerate_FormaYPrefijos(t *testing.T) {
	got := sku.Generate("Monitor LED", "Electrónica")

	parts := strings.Split(got, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "MON", parts[0])
	assert.Equal(t, "ELE", parts[1], "la categoría debe normalizarse sin acentos")
	assert.Len(t, parts[2], 4)
}

func TestGenerate_SinAcentosNiSimbolos(t *testing.T) {
	got := sku.Generate("Café señal ñ", "Útiles #1")

	assert.True(t, strings.HasPrefix(got, "CAF-UTI-"), "obtenido: %s", got)
}

func TestGenerate_TerminosVacios(t *testing.T) {
	got := sku.Generate("", "")

	// Solo queda el sufijo aleatorio
	assert.Len(t, got, 4)
}

// Dos llamadas con el mismo input deben diferir en el sufijo: el SKU no es
// determinista por diseño (la unicidad la valida el caso de uso).
func TestGenerate_SufijoAleatorio(t *testing.T) {
	a := sku.Generate("Teclado", "Accesorios")
	b := sku.Generate("Teclado", "Accesorios")

	assert.NotEqual(t, a, b)
}
