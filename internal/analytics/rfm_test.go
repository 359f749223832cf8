package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

func TestScoreRFM_ScoresAndSegments(t *testing.T) {
	reference := date(2011, 12, 9)

	var records []models.Transaction
	// A champion: bought yesterday, 25 distinct invoices, big spender.
	for i := 0; i < 25; i++ {
		records = append(records, tx(fmt.Sprintf("champ-%d", i), "CLOCK", "12345", "United Kingdom",
			10, "20.00", reference.AddDate(0, 0, -1-i)))
	}
	// A lost customer: one small purchase two years back.
	records = append(records, tx("old-1", "MUG", "99999", "France", 1, "1.00", reference.AddDate(-2, 0, 0)))

	scores := ScoreRFM(records, reference)
	require.Len(t, scores, 2)

	champ := scores[0]
	assert.Equal(t, "12345", champ.CustomerID)
	assert.Equal(t, 1, champ.RecencyDays)
	assert.Equal(t, 25, champ.Frequency)
	assert.Equal(t, 5, champ.RecencyScore)
	assert.Equal(t, 5, champ.FrequencyScore)
	assert.Equal(t, 5, champ.MonetaryScore)
	assert.Equal(t, SegmentChampions, champ.Segment)

	lost := scores[1]
	assert.Equal(t, "99999", lost.CustomerID)
	assert.Equal(t, 1, lost.RecencyScore)
	assert.Equal(t, 1, lost.FrequencyScore)
	assert.Equal(t, SegmentLost, lost.Segment)
}

func TestScoreRFM_ScoreBounds(t *testing.T) {
	reference := date(2011, 12, 9)

	var records []models.Transaction
	for i := 0; i < 20; i++ {
		customer := fmt.Sprintf("c%02d", i)
		records = append(records, tx(fmt.Sprintf("inv-%d", i), "MUG", customer, "France",
			i+1, "2.50", reference.AddDate(0, 0, -i*40)))
	}

	scores := ScoreRFM(records, reference)
	require.Len(t, scores, 20)

	for _, s := range scores {
		assert.GreaterOrEqual(t, s.RecencyScore, 1)
		assert.LessOrEqual(t, s.RecencyScore, 5)
		assert.GreaterOrEqual(t, s.FrequencyScore, 1)
		assert.LessOrEqual(t, s.FrequencyScore, 5)
		assert.GreaterOrEqual(t, s.MonetaryScore, 1)
		assert.LessOrEqual(t, s.MonetaryScore, 5)
	}

	// Sorted by combined score descending.
	for i := 1; i < len(scores); i++ {
		prev := scores[i-1].RecencyScore + scores[i-1].FrequencyScore + scores[i-1].MonetaryScore
		cur := scores[i].RecencyScore + scores[i].FrequencyScore + scores[i].MonetaryScore
		assert.GreaterOrEqual(t, prev, cur)
	}
}

func TestScoreRFM_FrequencyCountsDistinctInvoices(t *testing.T) {
	reference := date(2011, 6, 1)

	// Three lines on the same invoice count as one purchase.
	records := []models.Transaction{
		tx("536365", "MUG", "17850", "United Kingdom", 1, "2.00", date(2011, 5, 30)),
		tx("536365", "CLOCK", "17850", "United Kingdom", 1, "4.00", date(2011, 5, 30)),
		tx("536365", "LANTERN", "17850", "United Kingdom", 1, "3.00", date(2011, 5, 30)),
	}

	scores := ScoreRFM(records, reference)
	require.Len(t, scores, 1)
	assert.Equal(t, 1, scores[0].Frequency)
	assert.InDelta(t, 9.00, scores[0].Monetary, 0.001)
}

func TestScoreRFM_Empty(t *testing.T) {
	assert.Nil(t, ScoreRFM(nil, time.Now()))
}

func TestLastInvoiceDate(t *testing.T) {
	records := []models.Transaction{
		tx("1", "MUG", "c1", "France", 1, "1.00", date(2011, 3, 1)),
		tx("2", "MUG", "c1", "France", 1, "1.00", date(2011, 7, 15)),
		tx("3", "MUG", "c1", "France", 1, "1.00", date(2011, 5, 20)),
	}

	assert.True(t, LastInvoiceDate(records).Equal(date(2011, 7, 15)))
	assert.True(t, LastInvoiceDate(nil).IsZero())
}

func TestSegmentBoundaries(t *testing.T) {
	tests := []struct {
		combined int
		want     string
	}{
		{15, SegmentChampions},
		{12, SegmentChampions},
		{11, SegmentLoyal},
		{9, SegmentLoyal},
		{8, SegmentAtRisk},
		{6, SegmentAtRisk},
		{5, SegmentLost},
		{3, SegmentLost},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, segment(tt.combined), "combined score %d", tt.combined)
	}
}
