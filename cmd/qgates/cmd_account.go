package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plutoniumm/quantum-gates/internal/backend"
)

var accountToken string

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage the stored provider account",
}

var accountSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Store a provider API token, replacing any previous one",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := backend.NewCredentialStore("")
		if err != nil {
			return err
		}
		// Replace rather than merge: a stale token next to a fresh one has
		// caused confusing auth failures before.
		if err := store.DeleteAccount(); err != nil {
			return err
		}
		if err := store.SaveAccount(accountToken); err != nil {
			return err
		}
		fmt.Println("account saved")
		return nil
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Remove the stored provider account",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := backend.NewCredentialStore("")
		if err != nil {
			return err
		}
		if err := store.DeleteAccount(); err != nil {
			return err
		}
		fmt.Println("account deleted")
		return nil
	},
}

func init() {
	accountSaveCmd.Flags().StringVar(&accountToken, "token", "", "provider API token (required)")
	_ = accountSaveCmd.MarkFlagRequired("token")
	accountCmd.AddCommand(accountSaveCmd)
	accountCmd.AddCommand(accountDeleteCmd)
}
