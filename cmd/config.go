package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/msalah0e/devdeck/internal/config"
	"github.com/msalah0e/devdeck/internal/registry"
	"github.com/msalah0e/devdeck/internal/ui"
	"github.com/spf13/cobra"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			ui.Banner("config")
			fmt.Printf("  File:   %s\n", ui.Subtle.Sprint(filepath.Join(config.ConfigDir(), "config.toml")))
			fmt.Printf("  Views:  %s\n\n", ui.Subtle.Sprint(registry.UserDir()))
			if err := toml.NewEncoder(os.Stdout).Encode(loadConfig()); err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a default config file and create the user views directory",
		Run: func(cmd *cobra.Command, args []string) {
			if err := config.EnsureExists(); err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}
			if err := os.MkdirAll(registry.UserDir(), 0o755); err != nil {
				ui.Bad.Printf("devdeck: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s %s\n", ui.StatusIcon(true), config.ConfigDir())
		},
	})
	return cmd
}
