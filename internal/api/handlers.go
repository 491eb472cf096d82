package api

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"shop-analytics/internal/models"
)

// Handler serves a computed report. It starts empty: every route
// answers 503 until SetReport is called by the background ETL.
type Handler struct {
	mu     sync.RWMutex
	report *models.Report
}

func NewHandler(report *models.Report) *Handler {
	return &Handler{report: report}
}

// SetReport swaps in a freshly computed report. Safe to call while
// requests are in flight.
func (h *Handler) SetReport(r *models.Report) {
	h.mu.Lock()
	h.report = r
	h.mu.Unlock()
}

func (h *Handler) current() *models.Report {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.report
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/report", h.GetReport)
	api.GET("/revenue/monthly", h.GetMonthlyRevenue)
	api.GET("/categories/top", h.GetTopCategories)
	api.GET("/customers/segments", h.GetCustomerSegments)
	api.GET("/payments/methods", h.GetPaymentMethods)
	api.GET("/revenue/states", h.GetStateRevenue)
	api.GET("/kpis", h.GetKPIs)
}

// serve answers with pick(report), or 503 while the report is still
// being computed. Handlers return report slices verbatim: orderings
// are already final and must not be re-sorted here.
func (h *Handler) serve(c echo.Context, pick func(*models.Report) any) error {
	r := h.current()
	if r == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "report not ready, data still loading",
		})
	}
	return c.JSON(http.StatusOK, pick(r))
}

func (h *Handler) GetReport(c echo.Context) error {
	return h.serve(c, func(r *models.Report) any { return r })
}

func (h *Handler) GetMonthlyRevenue(c echo.Context) error {
	return h.serve(c, func(r *models.Report) any { return r.MonthlyRevenue })
}

func (h *Handler) GetTopCategories(c echo.Context) error {
	return h.serve(c, func(r *models.Report) any { return r.TopCategories })
}

func (h *Handler) GetCustomerSegments(c echo.Context) error {
	return h.serve(c, func(r *models.Report) any { return r.CustomerSegmentation })
}

func (h *Handler) GetPaymentMethods(c echo.Context) error {
	return h.serve(c, func(r *models.Report) any { return r.PaymentMethods })
}

func (h *Handler) GetStateRevenue(c echo.Context) error {
	return h.serve(c, func(r *models.Report) any { return r.StateRevenue })
}

func (h *Handler) GetKPIs(c echo.Context) error {
	return h.serve(c, func(r *models.Report) any { return r.KPIs })
}
