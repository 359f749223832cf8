package services

import (
	"archive/zip"
	"context"
	"encoding/csv"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

const (
	batchSize    = 10000
	maxWorkers   = 10
	cacheVersion = "v1"
)

// invoiceDateLayouts are tried in order. The retail export writes dates as
// "12/1/2010 8:26"; re-exports of the same data tend to be ISO formatted.
var invoiceDateLayouts = []string{
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// columns maps the fixed CSV header names to their positions.
type columns struct {
	invoiceNo   int
	stockCode   int // optional, -1 when absent
	description int
	quantity    int
	invoiceDate int
	unitPrice   int
	customerID  int
	country     int
}

// LoadFromCSV reads, parses and cleans the transaction file (.csv, or a .zip
// archive containing one). Rows with a missing customer id, a non-positive
// quantity or unit price, or an unparseable invoice date are dropped. A gob
// snapshot lets a restart skip the parse when the file is unchanged.
func (d *Dataset) LoadFromCSV(ctx context.Context, filename string) error {
	d.mu.Lock()
	d.source = filename
	d.mu.Unlock()

	if cached, err := d.loadFromCache(filename); err == nil {
		fileInfo, err := os.Stat(filename)
		if err == nil && fileInfo.ModTime().Before(cached.SavedAt) {
			d.SetRecords(cached.Records)
			d.logger.Info("loaded from cache", "records", len(cached.Records))
			return nil
		}
	}

	start := time.Now()
	d.logger.Info("processing transaction file", "filename", filename)

	records, err := d.parseFile(ctx, filename)
	if err != nil {
		return fmt.Errorf("process csv: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no valid records found in %s", filename)
	}

	d.SetRecords(records)

	if err := d.saveToCache(filename); err != nil {
		d.logger.Warn("failed to save cache", "error", err)
	}

	duration := time.Since(start)
	d.logger.Info("csv processing complete",
		"records", len(records),
		"duration", duration,
		"rate", fmt.Sprintf("%.0f records/sec", float64(len(records))/duration.Seconds()))

	return nil
}

func (d *Dataset) parseFile(ctx context.Context, filename string) ([]models.Transaction, error) {
	reader, closeFn, err := openSource(filename)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	cr := csv.NewReader(reader)
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var (
		cleaned []models.Transaction
		dropped atomic.Int64
	)

	batch := make([][]string, 0, batchSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		parsed, err := parseBatch(ctx, cols, batch, &dropped)
		if err != nil {
			return err
		}
		cleaned = append(cleaned, parsed...)
		batch = batch[:0]
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record: %w", err)
		}

		batch = append(batch, rec)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return nil, err
			}
		}
	}
	if err := flush(); err != nil {
		return nil, err
	}

	if n := dropped.Load(); n > 0 {
		d.logger.Info("dropped rows during cleaning", "rows", n)
	}
	return cleaned, nil
}

// parseBatch parses rows concurrently, then compacts the survivors in file
// order. Rows failing the cleaning invariants are counted, not errors.
func parseBatch(ctx context.Context, cols columns, batch [][]string, dropped *atomic.Int64) ([]models.Transaction, error) {
	parsed := make([]models.Transaction, len(batch))
	valid := make([]bool, len(batch))

	var wg errgroup.Group
	wg.SetLimit(maxWorkers)

	for i, rec := range batch {
		wg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			tx, ok := parseRow(cols, rec)
			if !ok {
				dropped.Add(1)
				return nil
			}
			parsed[i] = tx
			valid[i] = true
			return nil
		})
	}

	if err := wg.Wait(); err != nil {
		return nil, err
	}

	out := make([]models.Transaction, 0, len(batch))
	for i := range parsed {
		if valid[i] {
			out = append(out, parsed[i])
		}
	}
	return out, nil
}

// parseRow applies the cleaning invariants: customer id present, quantity > 0,
// unit price > 0, parseable invoice date. ok=false means the row is dropped.
func parseRow(cols columns, rec []string) (models.Transaction, bool) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[idx])
	}

	customerID := get(cols.customerID)
	if customerID == "" {
		return models.Transaction{}, false
	}

	quantity, err := strconv.Atoi(get(cols.quantity))
	if err != nil || quantity <= 0 {
		return models.Transaction{}, false
	}

	unitPrice, err := decimal.NewFromString(get(cols.unitPrice))
	if err != nil || !unitPrice.IsPositive() {
		return models.Transaction{}, false
	}

	invoiceDate, ok := parseInvoiceDate(get(cols.invoiceDate))
	if !ok {
		return models.Transaction{}, false
	}

	return models.Transaction{
		InvoiceNo:   get(cols.invoiceNo),
		StockCode:   get(cols.stockCode),
		Description: get(cols.description),
		Quantity:    quantity,
		InvoiceDate: invoiceDate,
		UnitPrice:   unitPrice,
		CustomerID:  customerID,
		Country:     get(cols.country),
		YearMonth:   invoiceDate.Format("2006-01"),
	}, true
}

func parseInvoiceDate(value string) (time.Time, bool) {
	for _, layout := range invoiceDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func mapColumns(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	required := func(name string) (int, error) {
		if i, ok := index[name]; ok {
			return i, nil
		}
		return 0, fmt.Errorf("missing required column %q", name)
	}

	var cols columns
	var err error
	if cols.invoiceNo, err = required("invoiceno"); err != nil {
		return columns{}, err
	}
	if cols.description, err = required("description"); err != nil {
		return columns{}, err
	}
	if cols.quantity, err = required("quantity"); err != nil {
		return columns{}, err
	}
	if cols.invoiceDate, err = required("invoicedate"); err != nil {
		return columns{}, err
	}
	if cols.unitPrice, err = required("unitprice"); err != nil {
		return columns{}, err
	}
	if cols.customerID, err = required("customerid"); err != nil {
		return columns{}, err
	}
	if cols.country, err = required("country"); err != nil {
		return columns{}, err
	}

	cols.stockCode = -1
	if i, ok := index["stockcode"]; ok {
		cols.stockCode = i
	}
	return cols, nil
}

// openSource opens a plain CSV, or the first CSV entry of a zip archive.
func openSource(filename string) (io.Reader, func() error, error) {
	if strings.EqualFold(filepath.Ext(filename), ".zip") {
		archive, err := zip.OpenReader(filename)
		if err != nil {
			return nil, nil, fmt.Errorf("open zip: %w", err)
		}

		for _, entry := range archive.File {
			if strings.EqualFold(filepath.Ext(entry.Name), ".csv") {
				rc, err := entry.Open()
				if err != nil {
					archive.Close()
					return nil, nil, fmt.Errorf("open zip entry %s: %w", entry.Name, err)
				}
				closeFn := func() error {
					rc.Close()
					return archive.Close()
				}
				return rc, closeFn, nil
			}
		}
		archive.Close()
		return nil, nil, fmt.Errorf("no csv entry in %s", filename)
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return file, file.Close, nil
}

// Cache management

type datasetSnapshot struct {
	Version string
	Records []models.Transaction
	SavedAt time.Time
}

func (d *Dataset) cacheFilename(csvPath string) string {
	return filepath.Join(d.cacheDir, fmt.Sprintf("%s_%s.gob", strings.ReplaceAll(csvPath, string(os.PathSeparator), "_"), cacheVersion))
}

func (d *Dataset) saveToCache(csvPath string) error {
	if d.cacheDir == "" {
		return nil
	}
	if err := os.MkdirAll(d.cacheDir, 0o755); err != nil {
		return err
	}

	file, err := os.Create(d.cacheFilename(csvPath))
	if err != nil {
		return err
	}
	defer file.Close()

	d.mu.RLock()
	defer d.mu.RUnlock()

	snapshot := datasetSnapshot{
		Version: cacheVersion,
		Records: d.records,
		SavedAt: time.Now(),
	}
	return gob.NewEncoder(file).Encode(snapshot)
}

func (d *Dataset) loadFromCache(csvPath string) (*datasetSnapshot, error) {
	if d.cacheDir == "" {
		return nil, os.ErrNotExist
	}
	file, err := os.Open(d.cacheFilename(csvPath))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var snapshot datasetSnapshot
	if err := gob.NewDecoder(file).Decode(&snapshot); err != nil {
		return nil, err
	}
	if snapshot.Version != cacheVersion {
		return nil, fmt.Errorf("stale cache version %q", snapshot.Version)
	}
	return &snapshot, nil
}
