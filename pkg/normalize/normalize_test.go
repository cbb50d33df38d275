package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zapasoft/calzado-api/pkg/normalize"
)

func TestFold_MarcasEquivalentes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"minusculas", "nike", "nike"},
		{"mayusculas", "NIKE", "nike"},
		{"mixto", "Nike", "nike"},
		{"acentos", "Niña Bonita", "nina bonita"},
		{"dieresis", "Güero", "guero"},
		{"espacios extremos", "  Adidas  ", "adidas"},
		{"espacios internos", "Flexi   Country", "flexi country"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalize.Fold(tc.in))
		})
	}
}

func TestFold_Idempotente(t *testing.T) {
	in := "Niña  Bonita"
	once := normalize.Fold(in)
	assert.Equal(t, once, normalize.Fold(once), "Fold debe ser idempotente")
}

func TestDigits(t *testing.T) {
	assert.Equal(t, "5551234567", normalize.Digits("(555) 123-4567"))
	assert.Equal(t, "521234567890", normalize.Digits("+52 123 456 7890"))
	assert.Equal(t, "", normalize.Digits("sin números"))
}
