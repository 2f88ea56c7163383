package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/trampo-app/trampo/pkg/client"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Login with email and password",
		Annotations: publicCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = promptInput("Email: ")
			}
			if password == "" {
				password = promptPassword("Password: ")
			}

			ctx := context.Background()
			resp, err := apiClient.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := storeCredentials(resp); err != nil {
				return err
			}

			name := email
			if resp.User != nil && resp.User.Name != "" {
				name = resp.User.Name
			}
			fmt.Printf("Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email address")
	cmd.Flags().StringVar(&password, "password", "", "password")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var req client.RegisterRequest

	cmd := &cobra.Command{
		Use:         "register",
		Short:       "Register a new account",
		Annotations: publicCommand,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Email == "" {
				req.Email = promptInput("Email: ")
			}
			if req.Name == "" {
				req.Name = promptInput("Name: ")
			}
			if req.Role == "" {
				req.Role = promptInput("Role (PRESTADOR/EMPREGADOR): ")
			}
			req.Role = strings.ToUpper(req.Role)
			req.State = strings.ToUpper(req.State)
			if req.Password == "" {
				req.Password = promptPassword("Password: ")
				confirm := promptPassword("Confirm password: ")
				if req.Password != confirm {
					return fmt.Errorf("passwords do not match")
				}
			}

			ctx := context.Background()
			resp, err := apiClient.Register(ctx, req)
			if err != nil {
				return fmt.Errorf("registration failed: %w", err)
			}

			if err := storeCredentials(resp); err != nil {
				return err
			}

			fmt.Printf("Account created. Logged in as %s\n", req.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Password, "password", "", "password")
	cmd.Flags().StringVar(&req.Name, "name", "", "full name")
	cmd.Flags().StringVar(&req.Role, "role", "", "PRESTADOR or EMPREGADOR")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&req.City, "city", "", "city")
	cmd.Flags().StringVar(&req.State, "state", "", "state (UF)")

	return cmd
}

// storeCredentials saves a token pair to the config file
func storeCredentials(resp *client.AuthResponse) error {
	viper.Set("auth.token", resp.AccessToken)
	viper.Set("auth.refresh_token", resp.RefreshToken)
	if resp.User != nil {
		viper.Set("auth.email", resp.User.Email)
	}

	if err := writeConfig(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}
	return nil
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke the session and clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if refresh := viper.GetString("auth.refresh_token"); refresh != "" {
				if err := apiClient.Logout(context.Background(), refresh); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: server logout failed: %v\n", err)
				}
			}

			viper.Set("auth.token", "")
			viper.Set("auth.refresh_token", "")
			viper.Set("auth.email", "")

			if err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Println("Logged out successfully")
			return nil
		},
	}
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			user, err := apiClient.GetCurrentUser(ctx)
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			format := getOutputFormat()
			if format != "table" {
				return printOutput(user)
			}

			fmt.Printf("Email:    %s\n", user.Email)
			fmt.Printf("Name:     %s\n", user.Name)
			fmt.Printf("Role:     %s\n", user.Role)
			if user.City != "" {
				fmt.Printf("City:     %s/%s\n", user.City, user.State)
			}
			fmt.Printf("ID:       %s\n", user.ID)
			return nil
		},
	}
}

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(password)
}
