package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "status",
		Short:       "Show server health and the signed-in account",
		Annotations: publicCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			summary := map[string]interface{}{
				"server": apiClientURL(),
			}
			if health, err := apiClient.Health(ctx); err != nil {
				summary["health"] = fmt.Sprintf("error: %v", err)
			} else {
				summary["health"] = health.Status
			}

			if token := viper.GetString("auth.token"); token != "" {
				apiClient.SetToken(token)
				if user, err := apiClient.GetCurrentUser(ctx); err == nil {
					summary["user"] = user.Email
					summary["role"] = user.Role
				} else {
					summary["user"] = fmt.Sprintf("error: %v", err)
				}
			}

			if getOutputFormat() != "table" {
				return printOutput(summary)
			}

			fmt.Println("Trampo")
			fmt.Println(strings.Repeat("=", 40))
			fmt.Printf("  Server:  %v\n", summary["server"])
			fmt.Printf("  Health:  %v\n", summary["health"])
			if u, ok := summary["user"]; ok {
				fmt.Printf("  User:    %v\n", u)
			}
			if r, ok := summary["role"]; ok {
				fmt.Printf("  Role:    %v\n", r)
			}
			return nil
		},
	}
}

func apiClientURL() string {
	if serverURL != "" {
		return serverURL
	}
	return viper.GetString("server_url")
}
