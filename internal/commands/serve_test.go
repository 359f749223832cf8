package commands

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/config"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/server"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/services"
)

// Test helper to create a dataset with test data
func newTestDataset() *services.Dataset {
	price := func(s string) decimal.Decimal {
		p, _ := decimal.NewFromString(s)
		return p
	}

	d := services.NewDataset("")
	d.SetRecords([]models.Transaction{
		{
			InvoiceNo:   "536365",
			StockCode:   "85123A",
			Description: "WHITE HANGING HEART T-LIGHT HOLDER",
			Quantity:    6,
			InvoiceDate: time.Date(2010, 12, 1, 8, 26, 0, 0, time.UTC),
			UnitPrice:   price("2.55"),
			CustomerID:  "17850",
			Country:     "United Kingdom",
			YearMonth:   "2010-12",
		},
		{
			InvoiceNo:   "536367",
			StockCode:   "84406B",
			Description: "CREAM CUPID HEARTS COAT HANGER",
			Quantity:    8,
			InvoiceDate: time.Date(2011, 1, 12, 10, 3, 0, 0, time.UTC),
			UnitPrice:   price("2.75"),
			CustomerID:  "13047",
			Country:     "France",
			YearMonth:   "2011-01",
		},
		{
			InvoiceNo:   "536370",
			StockCode:   "22728",
			Description: "ALARM CLOCK BAKELIKE PINK",
			Quantity:    24,
			InvoiceDate: time.Date(2011, 2, 3, 9, 15, 0, 0, time.UTC),
			UnitPrice:   price("3.75"),
			CustomerID:  "12583",
			Country:     "Germany",
			YearMonth:   "2011-02",
		},
	})
	return d
}

func newTestServer() *server.Server {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	templateHandlers := &server.TemplateHandlers{Dashboard: handleDashboard}
	cfg := config.DashboardConfig{TopProducts: 10, TopCountries: 10, ForecastMonths: 3}
	return server.NewServer(newTestDataset(), cfg, logger, templateHandlers)
}

// Integration tests for HTTP routes
func TestServer_Routes(t *testing.T) {
	srv := newTestServer()

	tests := []struct {
		path           string
		expectedStatus int
		contentType    string
	}{
		{"/", http.StatusOK, "text/html"},
		{"/health", http.StatusOK, "application/json"},
		{"/admin/stats", http.StatusOK, "application/json"},
		{"/api/summary", http.StatusOK, "application/json"},
		{"/api/top-products", http.StatusOK, "application/json"},
		{"/api/top-countries", http.StatusOK, "application/json"},
		{"/api/country-revenue", http.StatusOK, "application/json"},
		{"/api/monthly-trend", http.StatusOK, "application/json"},
		{"/api/forecast", http.StatusOK, "application/json"},
		{"/api/rfm", http.StatusOK, "application/json"},
		{"/api/filters", http.StatusOK, "application/json"},
		{"/api/export", http.StatusOK, "text/csv"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", tt.path, nil)

			srv.ServeHTTP(w, r)

			if w.Code != tt.expectedStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.expectedStatus)
			}

			ct := w.Header().Get("Content-Type")
			if !strings.Contains(ct, tt.contentType) {
				t.Errorf("content-type = %q, want %q", ct, tt.contentType)
			}

			// Validate JSON responses
			if tt.contentType == "application/json" {
				var result any
				if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
					t.Errorf("invalid json: %v", err)
				}
			}
		})
	}
}

// Test JSON API responses
func TestServer_JSONResponse(t *testing.T) {
	srv := newTestServer()

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/top-products", nil)
	srv.ServeHTTP(w, r)

	var response map[string]interface{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode JSON: %v", err)
	}

	if success, ok := response["success"].(bool); !ok || !success {
		t.Error("expected success=true in response")
	}

	data, ok := response["data"].([]interface{})
	if !ok {
		t.Fatalf("expected data array in response")
	}

	if len(data) == 0 {
		t.Error("expected products data")
		return
	}

	// Verify structure of first item
	if item, ok := data[0].(map[string]interface{}); ok {
		if desc, hasDesc := item["description"].(string); !hasDesc || desc == "" {
			t.Error("product should have non-empty description field")
		}
		if qty, hasQty := item["quantity"].(float64); !hasQty || qty <= 0 {
			t.Error("product should have positive quantity field")
		}
		if revenue, hasRev := item["revenue"].(float64); !hasRev || revenue <= 0 {
			t.Error("product should have positive revenue field")
		}
	} else {
		t.Error("invalid product structure")
	}
}

// Test Server-Sent Events routes
func TestServer_SSERoutes(t *testing.T) {
	srv := newTestServer()

	sseRoutes := []string{
		"/sse/summary",
		"/sse/top-products",
		"/sse/monthly-trend",
		"/sse/country-revenue",
		"/sse/forecast",
		"/sse/refresh-all",
	}

	for _, route := range sseRoutes {
		t.Run(route, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest("GET", route, nil)

			srv.ServeHTTP(w, r)

			if w.Code != http.StatusOK {
				t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
			}

			// Check for SSE headers
			if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/event-stream") {
				t.Errorf("content-type = %q, should contain 'text/event-stream'", ct)
			}

			if cc := w.Header().Get("Cache-Control"); cc != "no-cache" {
				t.Errorf("cache-control = %q, want 'no-cache'", cc)
			}
		})
	}
}

// Test the dashboard page handler
func TestHandleDashboard(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/", nil)

	handleDashboard(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}

	if cc := w.Header().Get("Cache-Control"); cc != cacheMaxAge {
		t.Errorf("cache-control = %q, want %q", cc, cacheMaxAge)
	}

	body := w.Body.String()
	if !strings.Contains(body, "<html") {
		t.Error("expected HTML document")
	}
	if !strings.Contains(body, `id="summary-content"`) {
		t.Error("expected summary panel placeholder")
	}
}
