package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/analytics"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/config"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/errors"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/observability"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/services"
)

var cacheHeaders = map[string]string{
	"Cache-Control": "public, max-age=300",
}

type APIHandlers struct {
	dataset *services.Dataset
	cfg     config.DashboardConfig
	logger  *slog.Logger
}

func NewAPIHandlers(dataset *services.Dataset, cfg config.DashboardConfig, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dataset: dataset,
		cfg:     cfg,
		logger:  logger,
	}
}

func (h *APIHandlers) HandleSummary(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data := analytics.Summarize(h.dataset.Filter(q))
	errors.WriteSuccessWithHeaders(w, data, cacheHeaders)
}

func (h *APIHandlers) HandleTopProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := parseLimit(r, "limit", h.cfg.TopProducts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data := analytics.TopProducts(h.dataset.Filter(q), limit)
	errors.WriteSuccessWithHeaders(w, data, cacheHeaders)
}

func (h *APIHandlers) HandleTopCountries(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := parseLimit(r, "limit", h.cfg.TopCountries)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data := analytics.TopCountries(h.dataset.Filter(q), limit)
	errors.WriteSuccessWithHeaders(w, data, cacheHeaders)
}

func (h *APIHandlers) HandleCountryRevenue(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	limit, err := parseLimit(r, "limit", h.cfg.TopCountries)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data := analytics.RevenueByCountry(h.dataset.Filter(q), limit)
	errors.WriteSuccessWithHeaders(w, data, cacheHeaders)
}

func (h *APIHandlers) HandleMonthlyTrend(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	data := analytics.MonthlyTrend(h.dataset.Filter(q))
	errors.WriteSuccessWithHeaders(w, data, cacheHeaders)
}

func (h *APIHandlers) HandleForecast(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	months, err := parseLimit(r, "months", h.cfg.ForecastMonths)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	trend := analytics.MonthlyTrend(h.dataset.Filter(q))
	forecast, err := analytics.Forecast(trend, months)
	if err != nil {
		h.writeError(w, r, errors.BadRequestWrap(err, "cannot compute forecast"))
		return
	}

	errors.WriteSuccessWithHeaders(w, forecast, cacheHeaders)
}

func (h *APIHandlers) HandleRFM(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	records := h.dataset.Filter(q)
	reference := analytics.LastInvoiceDate(records)
	errors.WriteSuccessWithHeaders(w, analytics.ScoreRFM(records, reference), cacheHeaders)
}

func (h *APIHandlers) HandleFilters(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.dataset.Options(), cacheHeaders)
}

// HandleExport streams the filtered subset as a CSV download.
func (h *APIHandlers) HandleExport(w http.ResponseWriter, r *http.Request) {
	q, err := parseQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="filtered_transactions.csv"`)

	if err := h.dataset.ExportCSV(w, q); err != nil {
		// Headers are gone; all we can do is log.
		h.logger.Error("export failed", "error", err,
			"request_id", observability.GetRequestID(r.Context()))
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dataset.Stats())
}

func (h *APIHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
}
