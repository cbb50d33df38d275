// Package catalog contiene reglas puras del catálogo de calzado: derivación de
// SKU de exhibición, precio de venta sugerido y tallaje por categoría.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/domain/entity"
)

// BuildSKU deriva la etiqueta SKU a partir de marca/modelo/color/talla:
// PREFIJO-MOD-COL-TALLA, donde el prefijo es el indicado por el operador o,
// en su ausencia, las tres primeras letras de la marca en mayúsculas.
// Es solo una etiqueta de exhibición: no se garantiza unicidad y nunca se usa
// como clave.
func BuildSKU(prefix, brand, model, color string, size decimal.Decimal) string {
	head := strings.TrimSpace(prefix)
	if head == "" {
		head = token(brand)
	} else {
		head = strings.ToUpper(head)
	}
	return head + "-" + token(model) + "-" + token(color) + "-" + size.StringFixed(1)
}

// token toma las tres primeras letras (sin espacios) en mayúsculas.
func token(s string) string {
	clean := strings.ReplaceAll(s, " ", "")
	r := []rune(strings.ToUpper(clean))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

// SuggestedRetailPrice calcula el precio de venta sugerido a partir del precio
// de mayoreo: mayoreo × 1.7 + 20, redondeado a centavos.
func SuggestedRetailPrice(wholesale decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromFloat(1.7)
	base := decimal.NewFromInt(20)
	return wholesale.Mul(factor).Add(base).Round(2)
}

// Rangos de talla por categoría, en pasos de 0.5.
var sizeRanges = map[string][2]decimal.Decimal{
	entity.CategoryCaballero: {decimal.NewFromInt(25), decimal.NewFromFloat(29.5)},
	entity.CategoryDama:      {decimal.NewFromInt(22), decimal.NewFromFloat(26.5)},
	entity.CategoryNina:      {decimal.NewFromInt(12), decimal.NewFromFloat(25.5)},
	entity.CategoryNino:      {decimal.NewFromInt(12), decimal.NewFromFloat(25.5)},
}

// SizeRange devuelve el rango [min, max] de tallas válidas para la categoría.
func SizeRange(category string) (min, max decimal.Decimal, ok bool) {
	r, ok := sizeRanges[category]
	if !ok {
		return decimal.Zero, decimal.Zero, false
	}
	return r[0], r[1], true
}

// Sizes genera la lista de tallas de la categoría, de min a max en pasos de 0.5.
func Sizes(category string) []decimal.Decimal {
	min, max, ok := SizeRange(category)
	if !ok {
		return nil
	}
	step := decimal.NewFromFloat(0.5)
	var out []decimal.Decimal
	for s := min; !s.GreaterThan(max); s = s.Add(step) {
		out = append(out, s)
	}
	return out
}

// ValidSize indica si la talla cae en el rango de la categoría y es múltiplo de 0.5.
func ValidSize(category string, size decimal.Decimal) bool {
	min, max, ok := SizeRange(category)
	if !ok {
		return false
	}
	if size.LessThan(min) || size.GreaterThan(max) {
		return false
	}
	// múltiplo de 0.5: el doble debe ser entero
	return size.Mul(decimal.NewFromInt(2)).IsInteger()
}
