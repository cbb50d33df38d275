package entity

import "time"

// Categorías de producto (valores tal como los usa la tienda).
const (
	CategoryCaballero = "caballero"
	CategoryDama      = "dama"
	CategoryNina      = "niña"
	CategoryNino      = "niño"
)

// Categories lista las categorías válidas en orden de presentación.
var Categories = []string{CategoryCaballero, CategoryDama, CategoryNina, CategoryNino}

// ValidCategory indica si la categoría es una de las conocidas.
func ValidCategory(c string) bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Product modelo de calzado de una marca. Único por (brand_id, modelo normalizado).
// La categoría se fija al crear y no se sobreescribe al resolver un producto existente.
type Product struct {
	ID          string
	BrandID     string
	Model       string
	ModelFolded string
	Category    string
	CreatedAt   time.Time
}
