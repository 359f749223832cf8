package analytics

import (
	"fmt"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

const monthLayout = "2006-01"

// Forecast extrapolates revenue for the requested number of months past the
// end of the observed trend. Each observed month is encoded as an integer
// offset from the first month and an ordinary least-squares line is fitted
// over (offset, revenue). The output always has exactly `months` points.
func Forecast(trend []models.MonthlyPoint, months int) ([]models.ForecastPoint, error) {
	if months <= 0 {
		return nil, fmt.Errorf("forecast horizon must be positive, got %d", months)
	}
	if len(trend) < 2 {
		return nil, fmt.Errorf("need at least 2 observed months, got %d", len(trend))
	}

	first, err := time.Parse(monthLayout, trend[0].Month)
	if err != nil {
		return nil, fmt.Errorf("parse month %q: %w", trend[0].Month, err)
	}

	series := make(stats.Series, 0, len(trend))
	for _, point := range trend {
		t, err := time.Parse(monthLayout, point.Month)
		if err != nil {
			return nil, fmt.Errorf("parse month %q: %w", point.Month, err)
		}
		series = append(series, stats.Coordinate{
			X: float64(monthOffset(first, t)),
			Y: point.Revenue,
		})
	}

	fitted, err := stats.LinearRegression(series)
	if err != nil {
		return nil, fmt.Errorf("linear regression: %w", err)
	}

	// Recover slope and intercept from the fitted endpoints.
	x0, xn := fitted[0].X, fitted[len(fitted)-1].X
	slope := 0.0
	if xn != x0 {
		slope = (fitted[len(fitted)-1].Y - fitted[0].Y) / (xn - x0)
	}
	intercept := fitted[0].Y - slope*x0

	lastOffset := int(series[len(series)-1].X)
	result := make([]models.ForecastPoint, 0, months)
	for i := 1; i <= months; i++ {
		offset := lastOffset + i
		result = append(result, models.ForecastPoint{
			Month:   first.AddDate(0, offset, 0).Format(monthLayout),
			Revenue: intercept + slope*float64(offset),
		})
	}
	return result, nil
}

// monthOffset counts calendar months from a to b, so gaps in the observed
// trend keep their true spacing on the x axis.
func monthOffset(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}
