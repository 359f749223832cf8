package services

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

// Query is the conjunction of dashboard filters. All populated dimensions must
// match (AND); values within one dimension are alternatives (OR). Zero values
// mean no restriction.
type Query struct {
	Countries []string
	Products  []string
	From      time.Time // inclusive lower bound on invoice date
	To        time.Time // exclusive upper bound on invoice date
}

func (q Query) IsEmpty() bool {
	return len(q.Countries) == 0 && len(q.Products) == 0 && q.From.IsZero() && q.To.IsZero()
}

// Dataset holds the cleaned transaction records for one process run.
type Dataset struct {
	mu       sync.RWMutex
	records  []models.Transaction
	source   string
	loadedAt time.Time
	cacheDir string
	logger   *slog.Logger
}

func NewDataset(cacheDir string) *Dataset {
	return &Dataset{
		cacheDir: cacheDir,
		logger:   slog.Default(),
	}
}

// SetRecords replaces the dataset contents. Used by tests and the cache path.
func (d *Dataset) SetRecords(records []models.Transaction) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.records = records
	d.loadedAt = time.Now()
}

// Records returns the full cleaned set.
func (d *Dataset) Records() []models.Transaction {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.records
}

// Filter returns the subset matching every populated dimension of q.
func (d *Dataset) Filter(q Query) []models.Transaction {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if q.IsEmpty() {
		return d.records
	}

	countries := toSet(q.Countries)
	products := toSet(q.Products)

	matched := make([]models.Transaction, 0, len(d.records))
	for _, tx := range d.records {
		if len(countries) > 0 {
			if _, ok := countries[tx.Country]; !ok {
				continue
			}
		}
		if len(products) > 0 {
			if _, ok := products[tx.Description]; !ok {
				continue
			}
		}
		if !q.From.IsZero() && tx.InvoiceDate.Before(q.From) {
			continue
		}
		if !q.To.IsZero() && !tx.InvoiceDate.Before(q.To) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched
}

// Options returns the distinct filter values, sorted, for the dashboard widgets.
func (d *Dataset) Options() models.FilterOptions {
	d.mu.RLock()
	defer d.mu.RUnlock()

	countries := make(map[string]struct{})
	products := make(map[string]struct{})
	months := make(map[string]struct{})

	for _, tx := range d.records {
		countries[tx.Country] = struct{}{}
		products[tx.Description] = struct{}{}
		months[tx.YearMonth] = struct{}{}
	}

	return models.FilterOptions{
		Countries: sortedKeys(countries),
		Products:  sortedKeys(products),
		Months:    sortedKeys(months),
	}
}

// Stats reports dataset shape for the admin surface.
func (d *Dataset) Stats() map[string]any {
	d.mu.RLock()
	defer d.mu.RUnlock()

	countries := make(map[string]struct{})
	products := make(map[string]struct{})
	months := make(map[string]struct{})
	for _, tx := range d.records {
		countries[tx.Country] = struct{}{}
		products[tx.Description] = struct{}{}
		months[tx.YearMonth] = struct{}{}
	}

	return map[string]any{
		"record_count": len(d.records),
		"source":       d.source,
		"loaded_at":    d.loadedAt,
		"countries":    len(countries),
		"products":     len(products),
		"months":       len(months),
	}
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
