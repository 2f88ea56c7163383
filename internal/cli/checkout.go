package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/trampo-app/trampo/pkg/client"
)

func newCheckoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Start a payment for a highlight or an ad",
	}
	cmd.AddCommand(newCheckoutHighlightCmd())
	cmd.AddCommand(newCheckoutAdCmd())
	return cmd
}

func newCheckoutHighlightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "highlight <plan-code>",
		Short: "Buy a highlight plan for your profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := apiClient.Checkout().Highlight(context.Background(), strings.ToUpper(args[0]))
			if err != nil {
				return fmt.Errorf("checkout failed: %w", err)
			}
			return printCheckout(resp)
		},
	}
}

func newCheckoutAdCmd() *cobra.Command {
	req := client.CheckoutRequest{PurchaseType: "ad"}

	cmd := &cobra.Command{
		Use:   "ad <plan-code>",
		Short: "Buy an ad (employers only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.PlanCode = strings.ToUpper(args[0])
			req.AdTarget = strings.ToUpper(req.AdTarget)
			resp, err := apiClient.Checkout().Start(context.Background(), req)
			if err != nil {
				return fmt.Errorf("checkout failed: %w", err)
			}
			return printCheckout(resp)
		},
	}

	cmd.Flags().StringVar(&req.AdTitle, "title", "", "ad title")
	cmd.Flags().StringVar(&req.AdContent, "content", "", "ad text")
	cmd.Flags().StringVar(&req.AdTarget, "target", "ALL", "audience: WORKERS, EMPLOYERS or ALL")
	cmd.Flags().StringVar(&req.AdImageURL, "image-url", "", "image URL")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")

	return cmd
}

func printCheckout(resp *client.CheckoutResponse) error {
	if getOutputFormat() != "table" {
		return printOutput(resp)
	}
	fmt.Println("Complete the payment at:")
	fmt.Println(resp.CheckoutURL)
	return nil
}
