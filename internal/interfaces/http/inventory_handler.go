package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/application/inventory"
	"github.com/zapasoft/calzado-api/internal/domain"
)

// InventoryHandler maneja las consultas de inventario.
type InventoryHandler struct {
	query *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(query *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{query: query}
}

// Query lista el inventario con filtros opcionales combinados con AND y los
// totales (pares y valor) del conjunto filtrado.
func (h *InventoryHandler) Query(c *fiber.Ctx) error {
	var in dto.InventoryFilterRequest
	if !bindQueryAndValidate(c, &in) {
		return nil
	}
	resp, err := h.query.Query(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// PublicQuery variante pública del inventario (catálogo para clientes): solo
// variantes con existencias y sin los totales valorizados.
func (h *InventoryHandler) PublicQuery(c *fiber.Ctx) error {
	var in dto.InventoryFilterRequest
	if !bindQueryAndValidate(c, &in) {
		return nil
	}
	resp, err := h.query.Query(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "filtros inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	visible := make([]dto.InventoryRowDTO, 0, len(resp.Results))
	for _, row := range resp.Results {
		if row.Stock > 0 {
			visible = append(visible, row)
		}
	}
	return c.JSON(fiber.Map{"results": visible})
}
