//go:build js

package main

import "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/config"

// The browser build has no file system; it runs on the defaults.
func loadConfig() (config.Config, error) {
	return config.Default(), nil
}
