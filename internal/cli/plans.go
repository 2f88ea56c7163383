package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Highlight plans",
	}
	cmd.AddCommand(&cobra.Command{
		Use:         "list",
		Short:       "List highlight plans",
		Annotations: publicCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := apiClient.Plans().List(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list plans: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(plans)
			}

			table := NewTable("CODE", "NAME", "PRICE", "DAYS", "PRIORITY")
			for _, p := range plans {
				table.AddRow(p.Code, p.Name, formatReais(p.Price), strconv.Itoa(p.DurationDays), strconv.Itoa(p.Priority))
			}
			table.Render()
			return nil
		},
	})
	return cmd
}

func newHighlightsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlights",
		Short: "Your highlight purchases",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List your highlight history",
		RunE: func(cmd *cobra.Command, args []string) error {
			highlights, err := apiClient.Plans().Highlights(context.Background())
			if err != nil {
				return fmt.Errorf("failed to list highlights: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(highlights)
			}

			if len(highlights) == 0 {
				fmt.Println("No highlights yet. Buy one with 'trampo checkout highlight <plan>'")
				return nil
			}

			table := NewTable("PLAN", "STATUS", "STARTS", "ENDS", "CURRENT")
			for _, h := range highlights {
				code := ""
				if h.Plan != nil {
					code = h.Plan.Code
				}
				current := ""
				if h.Current {
					current = "yes"
				}
				table.AddRow(code, formatStatus(h.Status), h.StartsAt.Format("2006-01-02"), h.EndsAt.Format("2006-01-02"), current)
			}
			table.Render()
			return nil
		},
	})
	return cmd
}
