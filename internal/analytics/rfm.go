package analytics

import (
	"math"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

// RFM segments from the combined score.
const (
	SegmentChampions = "Champions"
	SegmentLoyal     = "Loyal"
	SegmentAtRisk    = "At Risk"
	SegmentLost      = "Lost"
)

// LastInvoiceDate returns the most recent invoice date in records, the usual
// RFM reference point.
func LastInvoiceDate(records []models.Transaction) time.Time {
	var last time.Time
	for _, tx := range records {
		if tx.InvoiceDate.After(last) {
			last = tx.InvoiceDate
		}
	}
	return last
}

type rfmAccum struct {
	lastInvoice time.Time
	invoices    map[string]struct{}
	monetary    decimal.Decimal
}

// ScoreRFM computes Recency-Frequency-Monetary scores per customer. Recency is
// measured in days back from the reference time (normally the dataset's last
// invoice date, so scores are stable across re-runs). Recency and frequency use
// fixed breakpoints; monetary is scored by quintile. Result is sorted by
// combined score, then monetary, descending.
func ScoreRFM(records []models.Transaction, reference time.Time) []models.CustomerRFM {
	groups := make(map[string]*rfmAccum)
	for _, tx := range records {
		acc := groups[tx.CustomerID]
		if acc == nil {
			acc = &rfmAccum{
				invoices: make(map[string]struct{}),
				monetary: decimal.Zero,
			}
			groups[tx.CustomerID] = acc
		}
		if tx.InvoiceDate.After(acc.lastInvoice) {
			acc.lastInvoice = tx.InvoiceDate
		}
		acc.invoices[tx.InvoiceNo] = struct{}{}
		acc.monetary = acc.monetary.Add(tx.Revenue())
	}
	if len(groups) == 0 {
		return nil
	}

	monetaryValues := make([]float64, 0, len(groups))
	for _, acc := range groups {
		monetaryValues = append(monetaryValues, acc.monetary.InexactFloat64())
	}
	slices.Sort(monetaryValues)

	result := make([]models.CustomerRFM, 0, len(groups))
	for customerID, acc := range groups {
		recencyDays := int(reference.Sub(acc.lastInvoice).Hours() / 24)
		monetary := acc.monetary.InexactFloat64()

		score := models.CustomerRFM{
			CustomerID:     customerID,
			RecencyDays:    recencyDays,
			Frequency:      len(acc.invoices),
			Monetary:       monetary,
			RecencyScore:   recencyScore(recencyDays),
			FrequencyScore: frequencyScore(len(acc.invoices)),
			MonetaryScore:  monetaryScore(monetary, monetaryValues),
		}
		score.Segment = segment(score.RecencyScore + score.FrequencyScore + score.MonetaryScore)
		result = append(result, score)
	}

	slices.SortFunc(result, func(a, b models.CustomerRFM) int {
		as := a.RecencyScore + a.FrequencyScore + a.MonetaryScore
		bs := b.RecencyScore + b.FrequencyScore + b.MonetaryScore
		if as != bs {
			return bs - as
		}
		switch {
		case a.Monetary > b.Monetary:
			return -1
		case a.Monetary < b.Monetary:
			return 1
		default:
			return strings.Compare(a.CustomerID, b.CustomerID)
		}
	})
	return result
}

func recencyScore(days int) int {
	switch {
	case days <= 30:
		return 5
	case days <= 90:
		return 4
	case days <= 180:
		return 3
	case days <= 365:
		return 2
	default:
		return 1
	}
}

func frequencyScore(invoices int) int {
	switch {
	case invoices >= 20:
		return 5
	case invoices >= 11:
		return 4
	case invoices >= 6:
		return 3
	case invoices >= 3:
		return 2
	default:
		return 1
	}
}

// monetaryScore buckets a customer's spend into quintiles by rank (NTILE
// semantics). Ties share a rank, so equal spenders get equal scores.
func monetaryScore(value float64, sortedValues []float64) int {
	rank := sort.Search(len(sortedValues), func(i int) bool {
		return sortedValues[i] > value
	})
	score := int(math.Ceil(float64(rank) / float64(len(sortedValues)) * 5))
	if score < 1 {
		score = 1
	}
	if score > 5 {
		score = 5
	}
	return score
}

func segment(combined int) string {
	switch {
	case combined >= 12:
		return SegmentChampions
	case combined >= 9:
		return SegmentLoyal
	case combined >= 6:
		return SegmentAtRisk
	default:
		return SegmentLost
	}
}
