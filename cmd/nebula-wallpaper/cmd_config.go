package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"nebula-wallpaper/internal/config"
	"nebula-wallpaper/internal/utils"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective settings",
	Long: `Prints the settings after the settings file, NEBULA_* environment
variables and flags have been applied.`,
	Args: cobra.NoArgs,
	RunE: printConfig,
}

var configResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Overwrite the settings file with the defaults",
	Args:  cobra.NoArgs,
	// The current file may be the reason for the reset, so it is not loaded.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE:              resetConfig,
}

func init() {
	configCmd.AddCommand(configResetCmd)
}

func printConfig(cmd *cobra.Command, args []string) error {
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

func resetConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return fmt.Errorf("resolve settings path: %w", err)
		}
	}
	if err := config.Save(path, config.Defaults()); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	utils.Info("Wrote default settings to %s", path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
