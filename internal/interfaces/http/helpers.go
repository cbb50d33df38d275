package http

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/zapasoft/calzado-api/internal/application/dto"
)

var validate = validator.New()

func init() {
	// decimal.Decimal no es un tipo que validator entienda: exponerlo como float64
	// para que min/max funcionen sobre él.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate parsea el body JSON y corre las etiquetas de validación.
// Retorna false y escribe la respuesta de error si algo falla; el caller debe
// retornar nil de inmediato sin escribir otra respuesta.
func bindAndValidate(c *fiber.Ctx, req interface{}) bool {
	if err := c.BodyParser(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		_ = c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    "VALIDATION",
			"message": "datos inválidos",
			"fields":  fields,
		})
		return false
	}
	return true
}

// bindQueryAndValidate parsea los query params y corre las etiquetas de validación.
func bindQueryAndValidate(c *fiber.Ctx, req interface{}) bool {
	if err := c.QueryParser(req); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		_ = c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"code":    "VALIDATION",
			"message": "parámetros inválidos",
			"fields":  fields,
		})
		return false
	}
	return true
}
