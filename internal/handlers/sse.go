package handlers

import (
	"encoding/json"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/analytics"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/config"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/services"
)

const maxTableRows = 50

var summaryTemplate = template.Must(template.New("summaryCards").Parse(`
<div id="summary-content" class="metric-grid">
<div class="metric-card"><span class="metric-label">Total Revenue</span><strong>${{printf "%.2f" .TotalRevenue}}</strong></div>
<div class="metric-card"><span class="metric-label">Invoices</span><strong>{{.Invoices}}</strong></div>
<div class="metric-card"><span class="metric-label">Customers</span><strong>{{.Customers}}</strong></div>
<div class="metric-card"><span class="metric-label">Units Sold</span><strong>{{.UnitsSold}}</strong></div>
<div class="metric-card"><span class="metric-label">Avg Order Value</span><strong>${{printf "%.2f" .AvgOrderValue}}</strong></div>
</div>`))

var productTableTemplate = template.Must(template.New("productTable").Parse(`
<div id="products-content">
<table class="modern-table">
<thead><tr><th>Product</th><th>Units Sold</th><th>Revenue</th></tr></thead>
<tbody>
{{range .}}<tr>
<td>{{.Description}}</td>
<td>{{.Quantity}}</td>
<td><strong>${{printf "%.2f" .Revenue}}</strong></td>
</tr>{{end}}
</tbody>
</table>
</div>`))

type SSEHandlers struct {
	dataset *services.Dataset
	cfg     config.DashboardConfig
	logger  *slog.Logger
}

func NewSSEHandlers(dataset *services.Dataset, cfg config.DashboardConfig, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dataset: dataset,
		cfg:     cfg,
		logger:  logger,
	}
}

func (h *SSEHandlers) renderSummary(summary models.Summary) (string, error) {
	var buf strings.Builder
	err := summaryTemplate.Execute(&buf, summary)
	return buf.String(), err
}

func (h *SSEHandlers) renderProductTable(data []models.ProductSales) (string, error) {
	if len(data) > maxTableRows {
		data = data[:maxTableRows]
	}
	var buf strings.Builder
	err := productTableTemplate.Execute(&buf, data)
	return buf.String(), err
}

// filtered applies the request's filter params; a malformed filter is reported
// in-page rather than as a JSON error, since the response is an SSE stream.
func (h *SSEHandlers) filtered(sse *datastar.ServerSentEventGenerator, r *http.Request) ([]models.Transaction, bool) {
	q, err := parseQuery(r)
	if err != nil {
		h.logger.Warn("invalid dashboard filter", "error", err)
		sse.PatchElements(`<div id="filter-error">Invalid filter values, please check the dates.</div>`)
		return nil, false
	}
	return h.dataset.Filter(q), true
}

func (h *SSEHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	records, ok := h.filtered(sse, r)
	if !ok {
		return
	}

	html, err := h.renderSummary(analytics.Summarize(records))
	if err != nil {
		h.logger.Error("render summary", "error", err)
		return
	}
	sse.PatchElements(html)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	records, ok := h.filtered(sse, r)
	if !ok {
		return
	}

	data := analytics.TopProducts(records, h.cfg.TopProducts)
	html, err := h.renderProductTable(data)
	if err != nil {
		h.logger.Error("render product table", "error", err)
		return
	}
	sse.PatchElements(html)

	jsonData, err := json.Marshal(map[string]any{
		"productsData": data,
	})
	if err != nil {
		h.logger.Error("marshal products data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	records, ok := h.filtered(sse, r)
	if !ok {
		return
	}

	jsonData, err := json.Marshal(map[string]any{
		"monthlyData": analytics.MonthlyTrend(records),
	})
	if err != nil {
		h.logger.Error("marshal monthly data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="monthly-content">Monthly trend chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleCountryRevenue(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	records, ok := h.filtered(sse, r)
	if !ok {
		return
	}

	jsonData, err := json.Marshal(map[string]any{
		"countryData": analytics.RevenueByCountry(records, h.cfg.TopCountries),
	})
	if err != nil {
		h.logger.Error("marshal country data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="countries-content">Country revenue chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *SSEHandlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	records, ok := h.filtered(sse, r)
	if !ok {
		return
	}

	trend := analytics.MonthlyTrend(records)
	forecast, err := analytics.Forecast(trend, h.cfg.ForecastMonths)
	if err != nil {
		h.logger.Warn("forecast unavailable", "error", err)
		sse.PatchElements(`<div id="forecast-content">Not enough months selected to forecast.</div>`)
		return
	}

	jsonData, err := json.Marshal(map[string]any{
		"forecastData": forecast,
	})
	if err != nil {
		h.logger.Error("marshal forecast data", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	sse.PatchElements(`<div id="forecast-content">Forecast chart data loaded</div>`)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleRefreshAll re-renders every dashboard panel for the current filters in
// a single stream, mirroring the original script's whole-page re-run.
func (h *SSEHandlers) HandleRefreshAll(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	records, ok := h.filtered(sse, r)
	if !ok {
		return
	}

	summaryHTML, err := h.renderSummary(analytics.Summarize(records))
	if err != nil {
		h.logger.Error("render summary", "error", err)
		return
	}
	sse.PatchElements(summaryHTML)

	products := analytics.TopProducts(records, h.cfg.TopProducts)
	productHTML, err := h.renderProductTable(products)
	if err != nil {
		h.logger.Error("render product table", "error", err)
		return
	}
	sse.PatchElements(productHTML)

	trend := analytics.MonthlyTrend(records)
	signals := map[string]any{
		"productsData": products,
		"monthlyData":  trend,
		"countryData":  analytics.RevenueByCountry(records, h.cfg.TopCountries),
	}

	// A failed forecast must still clear the previous filter's forecast
	// signal, or the chart keeps drawing it against the new months.
	forecast, err := analytics.Forecast(trend, h.cfg.ForecastMonths)
	if err != nil {
		h.logger.Warn("forecast unavailable", "error", err)
		signals["forecastData"] = []models.ForecastPoint{}
		sse.PatchElements(`<div id="forecast-content">Not enough months selected to forecast.</div>`)
	} else {
		signals["forecastData"] = forecast
		sse.PatchElements(`<div id="forecast-content">Forecast chart data loaded</div>`)
	}

	jsonData, err := json.Marshal(signals)
	if err != nil {
		h.logger.Error("marshal refresh signals", "error", err)
		return
	}
	sse.PatchSignals(jsonData)

	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}
