package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plutoniumm/quantum-gates/internal/backend"
)

var backendsInstance string

var backendsCmd = &cobra.Command{
	Use:   "backends [device-name]",
	Short: "List provider devices or show one device's configuration",
	Long: `Without arguments, lists the devices visible to the configured
account instance. With a device name, fetches and prints that device's
register size, basis gates and connectivity.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := backend.NewCredentialStore("")
		if err != nil {
			return err
		}
		inst, err := backend.ParseInstance(backendsInstance)
		if err != nil {
			return err
		}
		provider, err := backend.NewProvider(store, inst)
		if err != nil {
			return err
		}

		if len(args) == 0 {
			names, err := provider.Backends(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		}

		dev, err := provider.Backend(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("name:        %s\n", dev.Name())
		fmt.Printf("qubits:      %d\n", dev.NQubits())
		fmt.Printf("simulator:   %v\n", dev.Simulator)
		fmt.Printf("basis gates: %v\n", dev.BasisGates())
		if cm := dev.CouplingMap(); cm != nil {
			fmt.Printf("coupling:    %v\n", cm.Edges())
		} else {
			fmt.Println("coupling:    all-to-all")
		}
		return nil
	},
}

func init() {
	backendsCmd.Flags().StringVar(&backendsInstance, "instance", "", "account instance as hub/group/project (required)")
	_ = backendsCmd.MarkFlagRequired("instance")
}
