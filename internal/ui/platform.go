//go:build !js

package ui

import "github.com/atotto/clipboard"

// Desktop builds have no page to talk to. The hooks are variables so tests
// can observe them.

// copyToClipboard fails on headless machines without xclip, xsel or
// wl-copy; the caller then shows the address instead.
var copyToClipboard = func(s string) bool {
	if clipboard.Unsupported {
		return false
	}
	return clipboard.WriteAll(s) == nil
}

// prefersLight reports a system light-mode preference. Desktop builds
// start from the configured theme.
var prefersLight = func() bool { return false }

var readHash = func() string { return "" }

var writeHash = func(string) {}

func (g *Game) initJS() {}
