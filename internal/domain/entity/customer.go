package entity

import "time"

// Customer cliente de la tienda. Phone se guarda normalizado a solo dígitos
// (pkg/normalize.Digits) y es único.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}
