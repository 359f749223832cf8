package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/errors"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/services"
)

const dateParamLayout = "2006-01-02"

// parseQuery extracts the dashboard filters from the request. `country` and
// `product` are repeatable and may carry comma-separated lists; `from` and
// `to` are dates, both inclusive (`to` covers the whole named day).
func parseQuery(r *http.Request) (services.Query, error) {
	values := r.URL.Query()

	q := services.Query{
		Countries: splitParams(values["country"]),
		Products:  splitParams(values["product"]),
	}

	if raw := values.Get("from"); raw != "" {
		from, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return services.Query{}, errors.BadRequest(fmt.Sprintf("invalid 'from' date %q, expected YYYY-MM-DD", raw))
		}
		q.From = from
	}

	if raw := values.Get("to"); raw != "" {
		to, err := time.Parse(dateParamLayout, raw)
		if err != nil {
			return services.Query{}, errors.BadRequest(fmt.Sprintf("invalid 'to' date %q, expected YYYY-MM-DD", raw))
		}
		// Query.To is an exclusive bound; advance a day so the named
		// date is included.
		q.To = to.AddDate(0, 0, 1)
	}

	// q.To was advanced past the named day, so an inverted range shows up as
	// To not after From (equal means 'to' named the day before 'from').
	if !q.From.IsZero() && !q.To.IsZero() && !q.To.After(q.From) {
		return services.Query{}, errors.BadRequest("'to' date precedes 'from' date")
	}

	return q, nil
}

// parseLimit reads an optional positive integer parameter, falling back to
// defaultValue when absent.
func parseLimit(r *http.Request, name string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.BadRequest(fmt.Sprintf("invalid %q parameter %q, expected a positive integer", name, raw))
	}
	return n, nil
}

func splitParams(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
