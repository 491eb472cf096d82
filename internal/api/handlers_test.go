package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shop-analytics/internal/models"
)

func testReport() *models.Report {
	return &models.Report{
		MonthlyRevenue: []models.MonthRevenue{{Month: "2023-06", Revenue: 165}},
		TopCategories:  []models.CategorySales{{Category: "BOOKS", Sales: 70}},
		CustomerSegmentation: []models.CustomerSegment{
			{Type: "New", Count: 1},
			{Type: "Repeat", Count: 1},
		},
		PaymentMethods: []models.PaymentMethodStat{{Method: "CREDIT CARD", Count: 2, Value: 100}},
		StateRevenue:   []models.StateRevenue{{State: "SP", Orders: 1, Revenue: 150}},
		KPIs: models.KPISet{
			TotalRevenue: 220, TotalOrders: 2, AvgOrderValue: 110, RepeatCustomerRate: 50,
		},
	}
}

func doGet(h *Handler, path string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestHandlers_UnavailableUntilReportSet(t *testing.T) {
	h := NewHandler(nil)
	for _, path := range []string{
		"/api/report",
		"/api/revenue/monthly",
		"/api/categories/top",
		"/api/customers/segments",
		"/api/payments/methods",
		"/api/revenue/states",
		"/api/kpis",
	} {
		rec := doGet(h, path)
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestGetReport(t *testing.T) {
	h := NewHandler(nil)
	h.SetReport(testReport())

	rec := doGet(h, "/api/report")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, *testReport(), got)
}

func TestGetMonthlyRevenue(t *testing.T) {
	h := NewHandler(testReport())

	rec := doGet(h, "/api/revenue/monthly")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.MonthRevenue
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, []models.MonthRevenue{{Month: "2023-06", Revenue: 165}}, got)
}

func TestGetKPIs(t *testing.T) {
	h := NewHandler(testReport())

	rec := doGet(h, "/api/kpis")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.KPISet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 110.0, got.AvgOrderValue)
	assert.Equal(t, 50.0, got.RepeatCustomerRate)
}

func TestGetPaymentMethods_OrderPreserved(t *testing.T) {
	r := testReport()
	r.PaymentMethods = []models.PaymentMethodStat{
		{Method: "CREDIT CARD", Count: 2, Value: 100},
		{Method: "BOLETO", Count: 1, Value: 20},
	}
	h := NewHandler(r)

	rec := doGet(h, "/api/payments/methods")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.PaymentMethodStat
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "CREDIT CARD", got[0].Method)
	assert.Equal(t, "BOLETO", got[1].Method)
}
