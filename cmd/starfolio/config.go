//go:build !js

package main

import (
	"flag"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/config"
)

func loadConfig() (config.Config, error) {
	path := flag.String("config", "", "path to starfolio.yaml")
	env := flag.String("env", "", "path to a .env file")
	flag.Parse()
	return config.Load(*path, *env)
}
