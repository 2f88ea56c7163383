package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trampo-app/trampo/pkg/client"
)

func newSearchCmd() *cobra.Command {
	var opts client.SearchOptions
	var minPrice, maxPrice float64

	cmd := &cobra.Command{
		Use:         "search",
		Short:       "Search workers or employers, highlighted profiles first",
		Annotations: publicCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("min-price") {
				opts.MinPrice = &minPrice
			}
			if cmd.Flags().Changed("max-price") {
				opts.MaxPrice = &maxPrice
			}

			results, err := apiClient.Search(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(results)
			}

			table := NewTable("ID", "NAME", "CITY", "PRICE", "PLAN")
			for _, r := range results {
				if r.User == nil {
					continue
				}
				price := ""
				switch {
				case r.Worker != nil && r.Worker.AveragePrice != nil:
					price = formatReais(*r.Worker.AveragePrice)
				case r.Employer != nil && r.Employer.Budget != nil:
					price = formatReais(*r.Employer.Budget)
				}
				planCode := ""
				if r.HighlightPlan != nil {
					planCode = r.HighlightPlan.Code
				}
				table.AddRow(r.User.ID, truncate(r.User.Name, 30), r.User.City, price, planCode)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Type, "type", "workers", "workers or employers")
	cmd.Flags().StringVar(&opts.CategoryID, "category", "", "category ID")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "free text")
	cmd.Flags().StringVar(&opts.City, "city", "", "city")
	cmd.Flags().StringVar(&opts.State, "state", "", "state (UF)")
	cmd.Flags().Float64Var(&minPrice, "min-price", 0, "minimum price in reais")
	cmd.Flags().Float64Var(&maxPrice, "max-price", 0, "maximum price in reais")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		opts.State = strings.ToUpper(opts.State)
	}

	return cmd
}
