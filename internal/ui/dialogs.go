//go:build !js

package ui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ncruces/zenity"
)

// File dialogs block, so callers run these off the frame goroutine. A
// cancelled dialog yields an empty name and no error.

var openTrack = func() (string, []byte, error) {
	path, err := zenity.SelectFile(
		zenity.Title("Choose a soundtrack"),
		zenity.FileFilter{Name: "MP3 audio", Patterns: []string{"*.mp3"}, CaseFold: true},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil, nil
	}
	if err != nil {
		return "", nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), data, nil
}

var saveExport = func(name string, data []byte) (string, error) {
	path, err := zenity.SelectFileSave(
		zenity.Title("Export frame"),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilter{Name: "SVG image", Patterns: []string{"*.svg"}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return filepath.Base(path), nil
}
