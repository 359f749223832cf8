package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/analytics"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

func newTestSSEHandlers() *SSEHandlers {
	return NewSSEHandlers(createTestDataset(), testDashboardConfig(), testLogger())
}

func TestRenderSummary(t *testing.T) {
	handlers := newTestSSEHandlers()

	html, err := handlers.renderSummary(analytics.Summarize(handlers.dataset.Records()))
	if err != nil {
		t.Fatalf("renderSummary() error: %v", err)
	}

	if !strings.Contains(html, `id="summary-content"`) {
		t.Error("expected summary-content container in rendered HTML")
	}
	// 15.30 + 10.17 + 90.00 + 45.00 + 20.40
	if !strings.Contains(html, "$180.87") {
		t.Errorf("expected total revenue $180.87 in rendered HTML, got: %s", html)
	}
	if !strings.Contains(html, "<strong>5</strong>") {
		t.Error("expected invoice count 5 in rendered HTML")
	}
}

func TestRenderProductTable(t *testing.T) {
	handlers := newTestSSEHandlers()

	data := analytics.TopProducts(handlers.dataset.Records(), 10)
	html, err := handlers.renderProductTable(data)
	if err != nil {
		t.Fatalf("renderProductTable() error: %v", err)
	}

	if !strings.Contains(html, `id="products-content"`) {
		t.Error("expected products-content container in rendered HTML")
	}
	if !strings.Contains(html, "ALARM CLOCK BAKELIKE") {
		t.Error("expected product name in rendered HTML")
	}
	if !strings.Contains(html, "$135.00") {
		t.Errorf("expected product revenue $135.00 in rendered HTML, got: %s", html)
	}
}

func TestRenderProductTable_CapsRows(t *testing.T) {
	handlers := newTestSSEHandlers()

	data := make([]models.ProductSales, maxTableRows+20)
	for i := range data {
		data[i] = models.ProductSales{
			Description: "PRODUCT",
			Quantity:    1,
			Revenue:     1,
		}
	}

	html, err := handlers.renderProductTable(data)
	if err != nil {
		t.Fatalf("renderProductTable() error: %v", err)
	}

	if rows := strings.Count(html, "<tr>") - 1; rows != maxTableRows {
		t.Errorf("expected %d body rows, got %d", maxTableRows, rows)
	}
}

func TestSSEHandlers_HandleSummary(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/summary", nil)
	w := httptest.NewRecorder()

	handlers.HandleSummary(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
		t.Errorf("expected event stream content type, got %q", ct)
	}

	body := w.Body.String()
	if !strings.Contains(body, "summary-content") {
		t.Error("expected summary fragment in stream")
	}
	if !strings.Contains(body, "$180.87") {
		t.Error("expected total revenue in stream")
	}
}

func TestSSEHandlers_HandleSummary_FilterApplied(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/summary?country=France", nil)
	w := httptest.NewRecorder()

	handlers.HandleSummary(w, req)

	if body := w.Body.String(); !strings.Contains(body, "$135.00") {
		t.Error("expected filtered revenue $135.00 in stream")
	}
}

func TestSSEHandlers_HandleSummary_BadFilter(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/summary?from=not-a-date", nil)
	w := httptest.NewRecorder()

	handlers.HandleSummary(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "filter-error") {
		t.Error("expected filter-error fragment for malformed filter")
	}
	if strings.Contains(body, "summary-content") {
		t.Error("expected no summary fragment for malformed filter")
	}
}

func TestSSEHandlers_HandleTopProducts(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/top-products", nil)
	w := httptest.NewRecorder()

	handlers.HandleTopProducts(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "products-content") {
		t.Error("expected product table fragment in stream")
	}
	if !strings.Contains(body, "productsData") {
		t.Error("expected productsData signal in stream")
	}
	if !strings.Contains(body, "ALARM CLOCK BAKELIKE") {
		t.Error("expected product name in stream")
	}
}

func TestSSEHandlers_HandleMonthlyTrend(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/monthly-trend", nil)
	w := httptest.NewRecorder()

	handlers.HandleMonthlyTrend(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "monthlyData") {
		t.Error("expected monthlyData signal in stream")
	}
	if !strings.Contains(body, "2010-12") {
		t.Error("expected first month in signal payload")
	}
	if !strings.Contains(body, "monthly-content") {
		t.Error("expected monthly panel fragment in stream")
	}
}

func TestSSEHandlers_HandleCountryRevenue(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/country-revenue", nil)
	w := httptest.NewRecorder()

	handlers.HandleCountryRevenue(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "countryData") {
		t.Error("expected countryData signal in stream")
	}
	if !strings.Contains(body, "France") {
		t.Error("expected country name in signal payload")
	}
}

func TestSSEHandlers_HandleForecast(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/forecast", nil)
	w := httptest.NewRecorder()

	handlers.HandleForecast(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "forecastData") {
		t.Error("expected forecastData signal in stream")
	}
	if !strings.Contains(body, "forecast-content") {
		t.Error("expected forecast panel fragment in stream")
	}
}

func TestSSEHandlers_HandleForecast_InsufficientMonths(t *testing.T) {
	handlers := newTestSSEHandlers()

	// Germany only has a single month of history.
	req := httptest.NewRequest(http.MethodGet, "/sse/forecast?country=Germany", nil)
	w := httptest.NewRecorder()

	handlers.HandleForecast(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "Not enough months") {
		t.Error("expected forecast fallback message in stream")
	}
	if strings.Contains(body, "forecastData") {
		t.Error("expected no forecast signal when trend is too short")
	}
}

func TestSSEHandlers_HandleRefreshAll(t *testing.T) {
	handlers := newTestSSEHandlers()

	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all", nil)
	w := httptest.NewRecorder()

	handlers.HandleRefreshAll(w, req)

	body := w.Body.String()
	for _, want := range []string{
		"summary-content",
		"products-content",
		"productsData",
		"monthlyData",
		"countryData",
		"forecastData",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in refresh-all stream", want)
		}
	}
}

func TestSSEHandlers_HandleRefreshAll_ClearsUnavailableForecast(t *testing.T) {
	handlers := newTestSSEHandlers()

	// Germany only has a single month of history, so no forecast exists. The
	// stream must still reset the forecast signal and panel, or the chart
	// keeps drawing the previous filter's forecast against the new months.
	req := httptest.NewRequest(http.MethodGet, "/sse/refresh-all?country=Germany", nil)
	w := httptest.NewRecorder()

	handlers.HandleRefreshAll(w, req)

	body := w.Body.String()
	if !strings.Contains(body, "summary-content") {
		t.Error("expected summary fragment in stream")
	}
	if !strings.Contains(body, `"forecastData":[]`) {
		t.Error("expected forecast signal to be cleared for single-month trend")
	}
	if !strings.Contains(body, "Not enough months") {
		t.Error("expected forecast fallback notice in stream")
	}
}
