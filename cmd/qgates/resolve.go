package main

import (
	"context"
	"fmt"

	"github.com/plutoniumm/quantum-gates/internal/backend"
	"github.com/plutoniumm/quantum-gates/internal/config"
	"github.com/plutoniumm/quantum-gates/internal/ui"
)

// resolveConfigName returns the requested config filename, falling back to
// the interactive picker when none was given.
func resolveConfigName(args []string) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	names, err := config.List(configDir)
	if err != nil {
		return "", err
	}
	return ui.PickConfig(names)
}

// resolveDevice turns a config into a transpilation target. The local
// simulator needs no account; anything else goes through the provider.
func resolveDevice(ctx context.Context, cfg *config.Config) (*backend.Device, error) {
	if cfg.Device == "local_simulator" {
		n := 0
		for _, q := range cfg.QubitsLayout {
			if q+1 > n {
				n = q + 1
			}
		}
		if n == 0 {
			n = 1
		}
		return backend.LocalSimulator(n), nil
	}

	store, err := backend.NewCredentialStore("")
	if err != nil {
		return nil, err
	}
	if cfg.Token != "" {
		// A token in the config (or QGATES_TOKEN) replaces the stored
		// account, mirroring the delete-then-save setup flow.
		if err := store.SaveAccount(cfg.Token); err != nil {
			return nil, err
		}
	}
	inst, err := backend.ParseInstance(cfg.Instance)
	if err != nil {
		return nil, err
	}
	provider, err := backend.NewProvider(store, inst)
	if err != nil {
		return nil, fmt.Errorf("resolve device %s: %w", cfg.Device, err)
	}
	return provider.Backend(ctx, cfg.Device)
}
