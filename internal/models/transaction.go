package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one cleaned invoice line from the retail export.
type Transaction struct {
	InvoiceNo   string
	StockCode   string
	Description string
	Quantity    int
	InvoiceDate time.Time
	UnitPrice   decimal.Decimal
	CustomerID  string
	Country     string
	YearMonth   string // derived at load time, "2006-01"
}

// Revenue is quantity times unit price for this line.
func (t Transaction) Revenue() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity)))
}

// Summary holds the headline metrics for a filtered subset.
type Summary struct {
	TotalRevenue  float64 `json:"total_revenue"`
	Invoices      int     `json:"invoices"`
	Customers     int     `json:"customers"`
	UnitsSold     int     `json:"units_sold"`
	AvgOrderValue float64 `json:"avg_order_value"`
}

type ProductSales struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	Revenue     float64 `json:"revenue"`
}

type CountrySales struct {
	Country  string  `json:"country"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

type MonthlyPoint struct {
	Month    string  `json:"month"` // "2006-01"
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ForecastPoint is one extrapolated month from the least-squares fit.
type ForecastPoint struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type CustomerRFM struct {
	CustomerID     string  `json:"customer_id"`
	RecencyDays    int     `json:"recency_days"`
	Frequency      int     `json:"frequency"`
	Monetary       float64 `json:"monetary"`
	RecencyScore   int     `json:"recency_score"`
	FrequencyScore int     `json:"frequency_score"`
	MonetaryScore  int     `json:"monetary_score"`
	Segment        string  `json:"segment"`
}

// FilterOptions lists the distinct values the dashboard widgets offer.
type FilterOptions struct {
	Countries []string `json:"countries"`
	Products  []string `json:"products"`
	Months    []string `json:"months"`
}
