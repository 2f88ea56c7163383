package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trampo-app/trampo/pkg/client"
)

func newVagasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vagas",
		Short: "Job postings",
	}
	cmd.AddCommand(newVagasListCmd())
	cmd.AddCommand(newVagasBoostCmd())
	return cmd
}

func newVagasListCmd() *cobra.Command {
	var opts client.VagaListOptions
	var mine bool

	cmd := &cobra.Command{
		Use:         "list",
		Short:       "List open vagas, boosted first",
		Annotations: publicCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var vagas []client.Vaga
			var total int64
			if mine {
				if err := initAuthenticatedClient(); err != nil {
					return err
				}
				vs, err := apiClient.Vagas().Mine(ctx)
				if err != nil {
					return fmt.Errorf("failed to list vagas: %w", err)
				}
				vagas, total = vs, int64(len(vs))
			} else {
				page, err := apiClient.Vagas().List(ctx, &opts)
				if err != nil {
					return fmt.Errorf("failed to list vagas: %w", err)
				}
				vagas, total = page.Data, page.TotalItems
			}

			if getOutputFormat() != "table" {
				return printOutput(vagas)
			}

			table := NewTable("ID", "TITLE", "CITY", "SALARY", "STATUS", "BOOSTED")
			for _, v := range vagas {
				salary := "a combinar"
				if v.Salary != nil {
					salary = formatReais(*v.Salary)
				}
				boosted := ""
				if v.Boosted {
					boosted = "yes"
				}
				table.AddRow(v.ID, truncate(v.Title, 40), v.City, salary, formatStatus(v.Status), boosted)
			}
			table.Render()
			fmt.Printf("\n%d of %d vagas\n", len(vagas), total)
			return nil
		},
	}

	cmd.Flags().BoolVar(&mine, "mine", false, "list your own vagas")
	cmd.Flags().StringVar(&opts.City, "city", "", "filter by city")
	cmd.Flags().StringVar(&opts.State, "state", "", "filter by state (UF)")
	cmd.Flags().StringVar(&opts.CategoryID, "category", "", "filter by category ID")
	cmd.Flags().StringVarP(&opts.Query, "query", "q", "", "free text")
	cmd.Flags().IntVar(&opts.Page, "page", 1, "page number")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 20, "items per page")

	return cmd
}

func newVagasBoostCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "boost <vaga-id>",
		Short: "Pay to show a vaga first in listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient.Checkout().JobBoost(context.Background(), client.JobBoostRequest{
				VagaID:       args[0],
				DurationDays: days,
			})
			if err != nil {
				return fmt.Errorf("checkout failed: %w", err)
			}
			return printCheckout(resp)
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "boost duration in days (1-365)")
	return cmd
}
