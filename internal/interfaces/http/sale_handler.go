package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/zapasoft/calzado-api/internal/application/dto"
	"github.com/zapasoft/calzado-api/internal/application/sales"
	"github.com/zapasoft/calzado-api/internal/domain"
)

// SaleHandler maneja las peticiones HTTP de ventas.
type SaleHandler struct {
	process *sales.ProcessSaleUseCase
	list    *sales.ListSalesUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(process *sales.ProcessSaleUseCase, list *sales.ListSalesUseCase) *SaleHandler {
	return &SaleHandler{process: process, list: list}
}

// Create registra una venta. La transacción descuenta stock de todas las
// líneas validadas o de ninguna; stock insuficiente responde 409 con el
// faltante por variante.
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.ProcessSaleRequest
	if !bindAndValidate(c, &in) {
		return nil
	}
	resp, err := h.process.ProcessSale(c.Context(), in)
	if err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			salesRejectedStockTotal.Inc()
			return c.Status(fiber.StatusConflict).JSON(toStockErrorResponse(stockErr))
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	salesProcessedTotal.Inc()
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// List lista las ventas de un período: ?period=today|week|month|year, o bien
// un rango explícito ?from=YYYY-MM-DD&to=YYYY-MM-DD (to exclusivo).
func (h *SaleHandler) List(c *fiber.Ctx) error {
	fromStr, toStr := c.Query("from"), c.Query("to")
	if fromStr != "" || toStr != "" {
		from, err1 := time.ParseInLocation("2006-01-02", fromStr, time.Local)
		to, err2 := time.ParseInLocation("2006-01-02", toStr, time.Local)
		if err1 != nil || err2 != nil || !to.After(from) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rango de fechas inválido"})
		}
		resp, err := h.list.ListByRange(c.Context(), from, to)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
		}
		return c.JSON(resp)
	}

	resp, err := h.list.ListByPeriod(c.Context(), c.Query("period"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "period: today|week|month|year"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

// GetByID obtiene una venta con sus líneas.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	resp, err := h.list.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(resp)
}

func toStockErrorResponse(stockErr *domain.InsufficientStockError) dto.StockErrorResponse {
	resp := dto.StockErrorResponse{
		Code:    "INSUFFICIENT_STOCK",
		Message: "stock insuficiente",
	}
	for _, s := range stockErr.Shortfalls {
		resp.Shortfalls = append(resp.Shortfalls, dto.ShortfallDTO{
			VariantID: s.VariantID,
			Requested: s.Requested,
			Available: s.Available,
			Shortfall: s.Shortfall(),
		})
	}
	return resp
}
