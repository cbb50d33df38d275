package entity

import "time"

// Brand marca de calzado. Se crea de forma perezosa en la primera alta de stock
// que la referencia. NameFolded es la clave natural normalizada (pkg/normalize.Fold)
// con índice único: "Nike", "nike" y "NIKE" son la misma marca.
type Brand struct {
	ID         string
	Name       string
	NameFolded string
	CreatedAt  time.Time
}
