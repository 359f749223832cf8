package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func tx(invoice, desc, customer, country string, qty int, price string, when time.Time) models.Transaction {
	return models.Transaction{
		InvoiceNo:   invoice,
		StockCode:   "85123A",
		Description: desc,
		Quantity:    qty,
		InvoiceDate: when,
		UnitPrice:   dec(price),
		CustomerID:  customer,
		Country:     country,
		YearMonth:   when.Format("2006-01"),
	}
}

func TestSummarize(t *testing.T) {
	records := []models.Transaction{
		tx("536365", "WHITE HANGING HEART", "17850", "United Kingdom", 6, "2.55", date(2010, 12, 1)),
		tx("536365", "WHITE METAL LANTERN", "17850", "United Kingdom", 6, "3.39", date(2010, 12, 1)),
		tx("536366", "HAND WARMER UNION JACK", "17850", "United Kingdom", 6, "1.85", date(2010, 12, 1)),
		tx("536367", "ASSORTED COLOUR BIRD", "13047", "United Kingdom", 32, "1.69", date(2010, 12, 2)),
	}

	summary := Summarize(records)

	// 6*2.55 + 6*3.39 + 6*1.85 + 32*1.69 = 15.30 + 20.34 + 11.10 + 54.08
	assert.InDelta(t, 100.82, summary.TotalRevenue, 0.001)
	assert.Equal(t, 3, summary.Invoices)
	assert.Equal(t, 2, summary.Customers)
	assert.Equal(t, 50, summary.UnitsSold)
	assert.InDelta(t, 100.82/3, summary.AvgOrderValue, 0.001)
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.TotalRevenue)
	assert.Zero(t, summary.Invoices)
	assert.Zero(t, summary.AvgOrderValue)
}

func TestTopProducts(t *testing.T) {
	records := []models.Transaction{
		tx("1", "MUG", "c1", "France", 3, "2.00", date(2011, 1, 5)),
		tx("2", "MUG", "c2", "France", 5, "2.00", date(2011, 1, 6)),
		tx("3", "LANTERN", "c1", "France", 10, "1.00", date(2011, 1, 7)),
		tx("4", "TEAPOT", "c3", "France", 1, "9.99", date(2011, 1, 8)),
	}

	top := TopProducts(records, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "LANTERN", top[0].Description)
	assert.Equal(t, 10, top[0].Quantity)
	assert.Equal(t, "MUG", top[1].Description)
	assert.Equal(t, 8, top[1].Quantity)
	assert.InDelta(t, 16.00, top[1].Revenue, 0.001)
}

func TestTopProducts_SortedDescendingAndCapped(t *testing.T) {
	var records []models.Transaction
	for i := 1; i <= 30; i++ {
		records = append(records, tx("1", string(rune('A'+i%26))+"-PRODUCT", "c1", "Spain", i, "1.00", date(2011, 3, 1)))
	}

	top := TopProducts(records, 10)

	require.Len(t, top, 10)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Quantity, top[i].Quantity)
	}
}

func TestTopCountries(t *testing.T) {
	records := []models.Transaction{
		tx("1", "MUG", "c1", "France", 3, "2.00", date(2011, 1, 5)),
		tx("2", "MUG", "c2", "Germany", 5, "2.00", date(2011, 1, 6)),
		tx("3", "MUG", "c3", "France", 4, "2.00", date(2011, 1, 7)),
	}

	top := TopCountries(records, 10)

	require.Len(t, top, 2)
	assert.Equal(t, "France", top[0].Country)
	assert.Equal(t, 7, top[0].Quantity)
	assert.Equal(t, "Germany", top[1].Country)
}

func TestRevenueByCountry(t *testing.T) {
	records := []models.Transaction{
		tx("1", "MUG", "c1", "France", 10, "1.00", date(2011, 1, 5)),
		tx("2", "CLOCK", "c2", "Germany", 1, "99.00", date(2011, 1, 6)),
	}

	breakdown := RevenueByCountry(records, 10)

	require.Len(t, breakdown, 2)
	// Germany sells fewer units but more revenue.
	assert.Equal(t, "Germany", breakdown[0].Country)
	assert.InDelta(t, 99.00, breakdown[0].Revenue, 0.001)
	assert.Equal(t, "France", breakdown[1].Country)
}

func TestMonthlyTrend(t *testing.T) {
	records := []models.Transaction{
		tx("1", "MUG", "c1", "France", 2, "5.00", date(2011, 2, 10)),
		tx("2", "MUG", "c2", "France", 3, "5.00", date(2011, 1, 5)),
		tx("3", "MUG", "c3", "France", 1, "5.00", date(2011, 1, 25)),
	}

	trend := MonthlyTrend(records)

	require.Len(t, trend, 2)
	assert.Equal(t, "2011-01", trend[0].Month)
	assert.Equal(t, 4, trend[0].Quantity)
	assert.InDelta(t, 20.00, trend[0].Revenue, 0.001)
	assert.Equal(t, "2011-02", trend[1].Month)
	assert.Equal(t, 2, trend[1].Quantity)
}

func TestRevenueIsQuantityTimesPrice(t *testing.T) {
	record := tx("1", "MUG", "c1", "France", 7, "3.25", date(2011, 1, 5))

	assert.True(t, record.Revenue().Equal(dec("22.75")))
}
