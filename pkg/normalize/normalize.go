// Package normalize centraliza la normalización de claves naturales:
// marcas y modelos se comparan sin mayúsculas ni acentos ("Niña" == "nina"),
// y los teléfonos se guardan solo con dígitos.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var foldTransformer = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)), // elimina marcas diacríticas (acentos, diéresis, virgulilla)
	norm.NFC,
)

// Fold devuelve la forma canónica de una clave natural: sin acentos,
// en minúsculas, sin espacios en los extremos y con espacios internos colapsados.
// Es la forma que se persiste en las columnas *_folded con índice único.
func Fold(s string) string {
	folded, _, err := transform.String(foldTransformer, s)
	if err != nil {
		// transform solo falla con runas inválidas; se degrada a la cadena original
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// Digits devuelve únicamente los dígitos de s (normalización de teléfonos).
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
