//go:build !js

package main

import (
	"github.com/spf13/cobra"

	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/tui"
)

func newTUICmd(e *env) *cobra.Command {
	var still bool
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Fly through the timeline in the terminal",
		RunE: func(_ *cobra.Command, _ []string) error {
			// The terminal owns stdout; keep log output quiet.
			e.log.SetLevel(max(e.log.Level(), game_log.LevelWarn))
			motion := e.cfg.Motion && !still
			return tui.Run(tui.New(e.content.Timeline(), e.cfg.Flight, motion, e.log))
		},
	}
	cmd.Flags().BoolVar(&still, "still", false, "disable animation")
	return cmd
}
