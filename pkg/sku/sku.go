// Package sku genera códigos SKU a partir del nombre y la categoría del
// producto: prefijos normalizados (sin acentos ni símbolos) más un sufijo
// aleatorio para evitar colisiones entre productos parecidos.
package sku

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	prefixLen = 3
	suffixLen = 4
)

// Generate produce un SKU con forma NOM-CAT-XXXX. La unicidad real la valida
// el caso de uso contra la base; el sufijo aleatorio solo reduce colisiones.
func Generate(name, category string) string {
	parts := []string{segment(name), segment(category), randomSuffix()}
	clean := parts[:0]
	for _, p := range parts {
		if p != "" {
			clean = append(clean, p)
		}
	}
	return strings.Join(clean, "-")
}

// segment normaliza y recorta un término a su prefijo alfanumérico en mayúsculas.
func segment(s string) string {
	s = stripDiacritics(s)
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToUpper(r))
			if b.Len() >= prefixLen {
				break
			}
		}
	}
	return b.String()
}

// stripDiacritics elimina marcas diacríticas vía descomposición NFD
// ("Café" → "Cafe").
func stripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func randomSuffix() string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return id[:suffixLen]
}
