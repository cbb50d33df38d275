package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zapasoft/calzado-api/internal/application/catalog"
	"github.com/zapasoft/calzado-api/internal/application/dto"
)

// CatalogHandler maneja las consultas de catálogo (marcas y modelos) para
// autocompletado en las pantallas de venta y entrada de stock.
type CatalogHandler struct {
	resolver *catalog.Resolver
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(resolver *catalog.Resolver) *CatalogHandler {
	return &CatalogHandler{resolver: resolver}
}

// ListBrands lista todas las marcas.
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.resolver.ListBrands(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, dto.BrandResponse{ID: b.ID, Name: b.Name})
	}
	return c.JSON(out)
}

// ListModels lista los modelos de una marca (?brand_id=).
func (h *CatalogHandler) ListModels(c *fiber.Ctx) error {
	brandID := c.Query("brand_id")
	if brandID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "brand_id requerido"})
	}
	products, err := h.resolver.ListModels(c.Context(), brandID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductResponse{ID: p.ID, BrandID: p.BrandID, Model: p.Model, Category: p.Category})
	}
	return c.JSON(out)
}
