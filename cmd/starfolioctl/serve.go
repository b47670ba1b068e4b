//go:build !js

package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/server"
)

func newServeCmd(e *env) *cobra.Command {
	var addr, web string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the wasm build and the content API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				e.cfg.Server.Addr = addr
			}
			if web != "" {
				e.cfg.Server.WebDir = web
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return server.New(e.content, e.cfg, e.log).Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().StringVar(&web, "web", "", "directory holding index.html and main.wasm")
	return cmd
}
