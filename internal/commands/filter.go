package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Leshuannn/customer-purchase-dashboard/internal/services"
)

const flagDateLayout = "2006-01-02"

// filterFlags are the dashboard filter dimensions as CLI flags, shared by the
// export and report subcommands.
type filterFlags struct {
	countries []string
	products  []string
	from      string
	to        string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.countries, "country", nil, "restrict to these countries (repeatable)")
	cmd.Flags().StringSliceVar(&f.products, "product", nil, "restrict to these product descriptions (repeatable)")
	cmd.Flags().StringVar(&f.from, "from", "", "earliest invoice date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&f.to, "to", "", "latest invoice date, YYYY-MM-DD (inclusive)")
}

func (f *filterFlags) toQuery() (services.Query, error) {
	q := services.Query{
		Countries: f.countries,
		Products:  f.products,
	}

	if f.from != "" {
		from, err := time.Parse(flagDateLayout, f.from)
		if err != nil {
			return services.Query{}, fmt.Errorf("invalid --from date %q, expected YYYY-MM-DD", f.from)
		}
		q.From = from
	}

	if f.to != "" {
		to, err := time.Parse(flagDateLayout, f.to)
		if err != nil {
			return services.Query{}, fmt.Errorf("invalid --to date %q, expected YYYY-MM-DD", f.to)
		}
		q.To = to.AddDate(0, 0, 1)
	}

	// q.To was advanced past the named day, so an inverted range shows up as
	// To not after From (equal means --to named the day before --from).
	if !q.From.IsZero() && !q.To.IsZero() && !q.To.After(q.From) {
		return services.Query{}, fmt.Errorf("--to date precedes --from date")
	}

	return q, nil
}
