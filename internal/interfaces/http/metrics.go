package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Contadores de negocio expuestos en /metrics.
var (
	salesProcessedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calzado_sales_processed_total",
		Help: "Ventas registradas con éxito.",
	})
	salesRejectedStockTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calzado_sales_rejected_stock_total",
		Help: "Ventas rechazadas por stock insuficiente.",
	})
	stockBatchesAppliedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calzado_stock_batches_applied_total",
		Help: "Lotes de entrada de stock aplicados.",
	})
	stockPairsReceivedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "calzado_stock_pairs_received_total",
		Help: "Pares recibidos vía lotes de entrada.",
	})
)

// MetricsHandler expone el registro Prometheus en formato de texto plano.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
