package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"kwikquiz/internal/domain"
)

func newRegisterCmd(configPath *string) *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			acct, err := service.Accounts.Register(cmd.Context(), username, email, password)
			if errors.Is(err, domain.ErrDuplicateUsername) || errors.Is(err, domain.ErrDuplicateEmail) {
				return fmt.Errorf("registration failed: %w", err)
			}
			if err != nil {
				return err
			}
			if err := service.Accounts.SaveCurrentUser(cmd.Context(), acct); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s\n", acct.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "account username")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLoginCmd(configPath *string) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			acct, err := service.Accounts.Authenticate(cmd.Context(), email, password)
			if errors.Is(err, domain.ErrAccountNotFound) {
				return fmt.Errorf("no account matches that email and password")
			}
			if err != nil {
				return err
			}
			if err := service.Accounts.SaveCurrentUser(cmd.Context(), acct); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", acct.Username)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out the current user",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, cleanup, err := buildService(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := service.Accounts.ClearCurrentUser(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "logged out")
			return nil
		},
	}
}
