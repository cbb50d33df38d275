package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zapasoft/calzado-api/internal/application/stock"
	"github.com/zapasoft/calzado-api/internal/domain/repository"
	apphttp "github.com/zapasoft/calzado-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs
// ──────────────────────────────────────────────────────────────────────────────

// stubIntakeRunner cuenta cuántas veces se inicia la transacción del lote.
type stubIntakeRunner struct{ calls int }

func (s *stubIntakeRunner) RunIntake(_ context.Context, _ func(
	repository.BrandRepository,
	repository.ProductRepository,
	repository.VariantRepository,
) error) error {
	s.calls++
	return nil
}

func buildStockApp(runner *stubIntakeRunner) *fiber.App {
	app := fiber.New()
	handler := apphttp.NewStockHandler(stock.NewIntakeUseCase(runner), nil)
	app.Post("/api/stock/batches", handler.CreateBatch)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests: POST /api/stock/batches
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateBatch_TotalDeclaradoNoCoincide_RechazaSinTocarLaBase(t *testing.T) {
	runner := &stubIntakeRunner{}
	app := buildStockApp(runner)

	// Declarados 5 pares, las líneas suman 3.
	resp := postJSON(t, app, "/api/stock/batches", fiber.Map{
		"brand":          "Nike",
		"model":          "Air Max",
		"category":       "caballero",
		"declared_total": 5,
		"lines": []fiber.Map{
			{"color": "negro", "size": 27.5, "stock_change": 3},
		},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "TOTAL_MISMATCH", body["code"])
	assert.Zero(t, runner.calls, "el lote rechazado no debe iniciar ninguna transacción")
}

func TestCreateBatch_TotalDeclaradoCoincide_AplicaElLote(t *testing.T) {
	runner := &stubIntakeRunner{}
	app := buildStockApp(runner)

	resp := postJSON(t, app, "/api/stock/batches", fiber.Map{
		"brand":          "Nike",
		"model":          "Air Max",
		"category":       "caballero",
		"declared_total": 3,
		"lines": []fiber.Map{
			{"color": "negro", "size": 27.5, "stock_change": 3},
		},
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 1, runner.calls)
}
