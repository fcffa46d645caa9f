package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with an emailed one-time passcode",
	}
	cmd.AddCommand(newLoginRequestCmd())
	cmd.AddCommand(newLoginConfirmCmd())
	return cmd
}

func newLoginRequestCmd() *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Send a one-time passcode to your email address",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(false)
			if err != nil {
				return err
			}
			if err := client.RequestLoginCode(cmd.Context(), email); err != nil {
				return err
			}
			fmt.Println("passcode sent, confirm with: researchconnect login confirm --email", email, "--code <passcode>")
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "researcher email address")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLoginConfirmCmd() *cobra.Command {
	var email, code string
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Exchange the passcode for a session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, _, err := buildClient(false)
			if err != nil {
				return err
			}
			creds, err := client.ConfirmLoginCode(cmd.Context(), email, code)
			if err != nil {
				return err
			}
			// The token is printed rather than stored; the client keeps no
			// state on disk.
			fmt.Println("export RC_TOKEN=" + creds.Token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "researcher email address")
	cmd.Flags().StringVar(&code, "code", "", "one-time passcode from the email")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}
