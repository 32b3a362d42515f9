package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/plutoniumm/quantum-gates/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and scaffold experiment configurations",
}

var configShowCmd = &cobra.Command{
	Use:   "show [config-file]",
	Short: "Validate a config and print its effective contents",
	Long: `Loads the named config (or shows the interactive picker), applies
environment overrides, validates it, and prints the result. What this
prints is exactly what 'qgates run' would use.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, err := resolveConfigName(args)
		if err != nil {
			return err
		}
		cfg, err := config.LoadFrom(configDir, name)
		if err != nil {
			return err
		}
		redacted := *cfg
		if redacted.Token != "" {
			redacted.Token = "***"
		}
		data, err := json.MarshalIndent(&redacted, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Write a default config to the configuration directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := "default.json"
		if len(args) > 0 {
			name = args[0]
		}
		path := filepath.Join(configDir, name)
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available config files",
	RunE: func(cmd *cobra.Command, args []string) error {
		names, err := config.List(configDir)
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
}
