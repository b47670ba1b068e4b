//go:build !js

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/snapshot"
)

func newSnapshotCmd(e *env) *cobra.Command {
	var (
		out      string
		progress float64
		year     int
		theme    string
		width    int
		height   int
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame of the flight as SVG or PNG",
		Long: "Render one frame of the flight timeline. The format follows the output\n" +
			"extension; .png needs Chrome or Chromium on the PATH.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := snapshot.Options{
				Width:    width,
				Height:   height,
				Theme:    theme,
				Progress: progress,
			}
			if theme == "" {
				opts.Theme = e.cfg.Theme
			}
			if year != 0 {
				i := e.content.IndexOfYear(year)
				if i < 0 {
					return fmt.Errorf("no milestone for %d", year)
				}
				opts.Pin, opts.Pinned = i, true
			}
			b, err := snapshot.Frame(e.content.Timeline(), e.cfg.Flight, opts, e.log)
			if err != nil {
				return err
			}
			if strings.EqualFold(filepath.Ext(out), ".png") {
				if b, err = snapshot.PNG(cmd.Context(), b, e.log); err != nil {
					return err
				}
			}
			if out == "" || out == "-" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			e.log.Infof("wrote %s (%d bytes)", out, len(b))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVarP(&out, "out", "o", "-", "output file (.svg or .png); - for stdout")
	f.Float64VarP(&progress, "progress", "p", 0, "scroll progress in [0,1]")
	f.IntVar(&year, "pin", 0, "pin the milestone of this year")
	f.StringVar(&theme, "theme", "", "night or provence")
	f.IntVar(&width, "width", 1280, "image width")
	f.IntVar(&height, "height", 720, "image height")
	return cmd
}
