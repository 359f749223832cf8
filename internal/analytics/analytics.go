// Package analytics computes the dashboard aggregates over a cleaned
// transaction slice. Functions are pure so the same pipeline serves the HTTP
// handlers and the CLI report.
package analytics

import (
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

// Summarize computes the headline metrics for a filtered subset.
func Summarize(records []models.Transaction) models.Summary {
	invoices := make(map[string]struct{})
	customers := make(map[string]struct{})
	units := 0
	revenue := decimal.Zero

	for _, tx := range records {
		invoices[tx.InvoiceNo] = struct{}{}
		customers[tx.CustomerID] = struct{}{}
		units += tx.Quantity
		revenue = revenue.Add(tx.Revenue())
	}

	summary := models.Summary{
		TotalRevenue: revenue.InexactFloat64(),
		Invoices:     len(invoices),
		Customers:    len(customers),
		UnitsSold:    units,
	}
	if summary.Invoices > 0 {
		summary.AvgOrderValue = revenue.Div(decimal.NewFromInt(int64(summary.Invoices))).InexactFloat64()
	}
	return summary
}

type salesAccum struct {
	quantity int
	revenue  decimal.Decimal
}

// TopProducts groups by product description, sums quantity and revenue, and
// returns the best sellers by quantity, capped at limit.
func TopProducts(records []models.Transaction, limit int) []models.ProductSales {
	groups := make(map[string]*salesAccum)
	for _, tx := range records {
		accumulate(groups, tx.Description, tx)
	}

	result := make([]models.ProductSales, 0, len(groups))
	for desc, acc := range groups {
		result = append(result, models.ProductSales{
			Description: desc,
			Quantity:    acc.quantity,
			Revenue:     acc.revenue.InexactFloat64(),
		})
	}
	slices.SortFunc(result, func(a, b models.ProductSales) int {
		if a.Quantity != b.Quantity {
			return b.Quantity - a.Quantity
		}
		return strings.Compare(a.Description, b.Description)
	})
	return capped(result, limit)
}

// TopCountries ranks countries by total quantity sold, capped at limit.
func TopCountries(records []models.Transaction, limit int) []models.CountrySales {
	result := groupByCountry(records)
	slices.SortFunc(result, func(a, b models.CountrySales) int {
		if a.Quantity != b.Quantity {
			return b.Quantity - a.Quantity
		}
		return strings.Compare(a.Country, b.Country)
	})
	return capped(result, limit)
}

// RevenueByCountry ranks countries by revenue, capped at limit.
func RevenueByCountry(records []models.Transaction, limit int) []models.CountrySales {
	result := groupByCountry(records)
	slices.SortFunc(result, func(a, b models.CountrySales) int {
		switch {
		case a.Revenue > b.Revenue:
			return -1
		case a.Revenue < b.Revenue:
			return 1
		default:
			return strings.Compare(a.Country, b.Country)
		}
	})
	return capped(result, limit)
}

// MonthlyTrend groups by year-month and returns a chronological series.
func MonthlyTrend(records []models.Transaction) []models.MonthlyPoint {
	groups := make(map[string]*salesAccum)
	for _, tx := range records {
		accumulate(groups, tx.YearMonth, tx)
	}

	result := make([]models.MonthlyPoint, 0, len(groups))
	for month, acc := range groups {
		result = append(result, models.MonthlyPoint{
			Month:    month,
			Quantity: acc.quantity,
			Revenue:  acc.revenue.InexactFloat64(),
		})
	}
	// "2006-01" keys sort chronologically.
	slices.SortFunc(result, func(a, b models.MonthlyPoint) int {
		return strings.Compare(a.Month, b.Month)
	})
	return result
}

func groupByCountry(records []models.Transaction) []models.CountrySales {
	groups := make(map[string]*salesAccum)
	for _, tx := range records {
		accumulate(groups, tx.Country, tx)
	}

	result := make([]models.CountrySales, 0, len(groups))
	for country, acc := range groups {
		result = append(result, models.CountrySales{
			Country:  country,
			Quantity: acc.quantity,
			Revenue:  acc.revenue.InexactFloat64(),
		})
	}
	return result
}

func accumulate(groups map[string]*salesAccum, key string, tx models.Transaction) {
	acc := groups[key]
	if acc == nil {
		acc = &salesAccum{revenue: decimal.Zero}
		groups[key] = acc
	}
	acc.quantity += tx.Quantity
	acc.revenue = acc.revenue.Add(tx.Revenue())
}

func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
