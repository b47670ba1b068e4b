//go:build !js

// Command starfolioctl serves the web build and renders the flight timeline
// outside the browser.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/config"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

// env carries what every subcommand needs after flag parsing.
type env struct {
	cfg     config.Config
	content *content.Portfolio
	log     *game_log.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath, envPath, level string
	e := &env{}

	root := &cobra.Command{
		Use:           "starfolioctl",
		Short:         "Serve, snapshot or preview the starfolio deck",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgPath, envPath)
			if err != nil {
				return err
			}
			if level != "" {
				cfg.LogLevel = level
			}
			e.cfg = cfg
			e.log = game_log.New(cmd.ErrOrStderr(), game_log.LevelFromString(cfg.LogLevel))
			p, err := content.Load(cfg.ContentPath)
			if err != nil {
				return fmt.Errorf("load content: %w", err)
			}
			e.content = p
			return nil
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to starfolio.yaml")
	root.PersistentFlags().StringVar(&envPath, "env", "", "path to a .env file")
	root.PersistentFlags().StringVar(&level, "log-level", "", "override log level")

	root.AddCommand(newServeCmd(e), newSnapshotCmd(e), newTUICmd(e))
	return root
}
