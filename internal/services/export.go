package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

// ExportHeader is the CSV header for the filtered-subset download.
const ExportHeader = "InvoiceNo,StockCode,Description,Quantity,InvoiceDate,UnitPrice,CustomerID,Country,YearMonth"

const exportDateFormat = "2006-01-02 15:04:05"

// WriteCSV writes records as CSV (header included).
func WriteCSV(w io.Writer, records []models.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(ExportHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, tx := range records {
		row := []string{
			tx.InvoiceNo,
			tx.StockCode,
			tx.Description,
			strconv.Itoa(tx.Quantity),
			tx.InvoiceDate.Format(exportDateFormat),
			tx.UnitPrice.String(),
			tx.CustomerID,
			tx.Country,
			tx.YearMonth,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// ExportCSV writes the subset matching q.
func (d *Dataset) ExportCSV(w io.Writer, q Query) error {
	return WriteCSV(w, d.Filter(q))
}
