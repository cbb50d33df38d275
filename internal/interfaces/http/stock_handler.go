package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/application/stock"
	"github.com/zapasoft/calzado-api/internal/domain"
)

// StockHandler maneja las peticiones HTTP de lotes de entrada y variantes.
type StockHandler struct {
	intake   *stock.IntakeUseCase
	variants *stock.VariantUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(intake *stock.IntakeUseCase, variants *stock.VariantUseCase) *StockHandler {
	return &StockHandler{intake: intake, variants: variants}
}

// CreateBatch aplica un lote de entrada de stock. El total declarado debe
// coincidir con la suma de las líneas; el lote completo se aplica o se
// revierte.
func (h *StockHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.StockBatchRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	if in.DeclaredTotal != in.LinesTotal() {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "TOTAL_MISMATCH",
			Message: "el total declarado no coincide con la suma de las líneas",
		})
	}
	resp, err := h.intake.ApplyStockBatch(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	stockBatchesAppliedTotal.Inc()
	stockPairsReceivedTotal.Add(float64(resp.TotalPairs))
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// LookupVariant busca una variante por producto/color/talla. Lo usa la
// terminal de venta para confirmar existencias y precio antes de agregar la
// línea al carrito.
func (h *StockHandler) LookupVariant(c *fiber.Ctx) error {
	var in dto.VariantLookupRequest
	if !bindQueryAndValidate(c, &in) {
		return nil
	}
	size, err := decimal.NewFromString(in.Size)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "talla inválida"})
	}
	resp, err := h.variants.GetByKey(c.Context(), in.ProductID, in.Color, size)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// SetVariant sobreescribe precio y/o stock de una variante.
func (h *StockHandler) SetVariant(c *fiber.Ctx) error {
	var in dto.SetVariantRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	resp, err := h.variants.Set(c.Context(), c.Params("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// DeleteVariant elimina una variante del inventario.
func (h *StockHandler) DeleteVariant(c *fiber.Ctx) error {
	if err := h.variants.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "variante no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
