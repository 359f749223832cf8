package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/services"
)

func newExportCommand() *cobra.Command {
	var (
		csvFile string
		outFile string
		filters filterFlags
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered transaction subset as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := filters.toQuery()
			if err != nil {
				return err
			}

			dataset, err := loadDataset(cmd.Context(), csvFile)
			if err != nil {
				return err
			}

			out := os.Stdout
			if outFile != "" {
				f, err := os.Create(outFile)
				if err != nil {
					return fmt.Errorf("create %s: %w", outFile, err)
				}
				defer f.Close()
				out = f
			}

			return dataset.ExportCSV(out, q)
		},
	}

	cmd.Flags().StringVar(&csvFile, "csv", "data.csv", "transaction CSV (or zip archive) to load")
	cmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	filters.register(cmd)

	return cmd
}

// loadDataset loads the transaction file without the snapshot cache; CLI runs
// are one-shot.
func loadDataset(ctx context.Context, csvFile string) (*services.Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	loadCtx, cancel := context.WithTimeout(ctx, csvLoadTimeout)
	defer cancel()

	dataset := services.NewDataset("")
	if err := dataset.LoadFromCSV(loadCtx, csvFile); err != nil {
		return nil, fmt.Errorf("load %s: %w", csvFile, err)
	}
	return dataset, nil
}
