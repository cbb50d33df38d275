package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// StockShortfall describe el faltante de una variante dentro de una venta rechazada.
type StockShortfall struct {
	VariantID string
	Requested int
	Available int
}

// Shortfall devuelve cuántos pares faltan para cubrir lo solicitado.
func (s StockShortfall) Shortfall() int {
	return s.Requested - s.Available
}

// InsufficientStockError agrupa todas las variantes sin stock suficiente de una
// misma venta; la transacción completa se revierte. errors.Is(err, ErrInsufficientStock)
// es verdadero para poder clasificarlo junto al resto de errores de dominio.
type InsufficientStockError struct {
	Shortfalls []StockShortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortfalls))
	for _, s := range e.Shortfalls {
		parts = append(parts, fmt.Sprintf("variante %s: solicitado %d, disponible %d", s.VariantID, s.Requested, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

// Is permite clasificar el error con el centinela ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
