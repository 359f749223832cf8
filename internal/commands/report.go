package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/analytics"
	"github.com/Leshuannn/customer-purchase-dashboard/internal/models"
)

func newReportCommand() *cobra.Command {
	var (
		csvFile        string
		topN           int
		forecastMonths int
		filters        filterFlags
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print a one-shot purchase behavior report",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filters.toQuery()
			if err != nil {
				return err
			}

			dataset, err := loadDataset(cmd.Context(), csvFile)
			if err != nil {
				return err
			}

			records := dataset.Filter(q)
			if len(records) == 0 {
				return fmt.Errorf("no transactions match the given filters")
			}

			writeReport(os.Stdout, records, topN, forecastMonths)
			return nil
		},
	}

	cmd.Flags().StringVar(&csvFile, "csv", "data.csv", "transaction CSV (or zip archive) to load")
	cmd.Flags().IntVar(&topN, "top", 10, "how many top products/countries to list")
	cmd.Flags().IntVar(&forecastMonths, "forecast-months", 3, "months to forecast past the observed trend")
	filters.register(cmd)

	return cmd
}

func writeReport(w io.Writer, records []models.Transaction, topN, forecastMonths int) {
	summary := analytics.Summarize(records)

	fmt.Fprintf(w, "Customer Purchase Report\n")
	fmt.Fprintf(w, "========================\n\n")
	fmt.Fprintf(w, "Total revenue:    $%.2f\n", summary.TotalRevenue)
	fmt.Fprintf(w, "Invoices:         %d\n", summary.Invoices)
	fmt.Fprintf(w, "Customers:        %d\n", summary.Customers)
	fmt.Fprintf(w, "Units sold:       %d\n", summary.UnitsSold)
	fmt.Fprintf(w, "Avg order value:  $%.2f\n\n", summary.AvgOrderValue)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Top %d products by units sold\n", topN)
	fmt.Fprintln(tw, "PRODUCT\tUNITS\tREVENUE")
	for _, p := range analytics.TopProducts(records, topN) {
		fmt.Fprintf(tw, "%s\t%d\t$%.2f\n", p.Description, p.Quantity, p.Revenue)
	}
	tw.Flush()

	fmt.Fprintf(w, "\nTop %d countries by units sold\n", topN)
	fmt.Fprintln(tw, "COUNTRY\tUNITS\tREVENUE")
	for _, c := range analytics.TopCountries(records, topN) {
		fmt.Fprintf(tw, "%s\t%d\t$%.2f\n", c.Country, c.Quantity, c.Revenue)
	}
	tw.Flush()

	trend := analytics.MonthlyTrend(records)
	fmt.Fprintf(w, "\nMonthly revenue\n")
	fmt.Fprintln(tw, "MONTH\tUNITS\tREVENUE")
	for _, m := range trend {
		fmt.Fprintf(tw, "%s\t%d\t$%.2f\n", m.Month, m.Quantity, m.Revenue)
	}
	tw.Flush()

	forecast, err := analytics.Forecast(trend, forecastMonths)
	if err != nil {
		fmt.Fprintf(w, "\nForecast unavailable: %v\n", err)
		return
	}

	fmt.Fprintf(w, "\nForecast (least-squares fit over month index)\n")
	fmt.Fprintln(tw, "MONTH\tPROJECTED REVENUE")
	for _, f := range forecast {
		fmt.Fprintf(tw, "%s\t$%.2f\n", f.Month, f.Revenue)
	}
	tw.Flush()
}
