package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// ButtonStyle draws buttons in the current theme's card colours.
type ButtonStyle struct {
	Theme *Theme
}

func (s ButtonStyle) Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered, active bool) {
	fill := s.Theme.Card(0.78)
	border := s.Theme.Border()
	switch {
	case active:
		border = s.Theme.Accent(0.95)
	case hovered:
		border = s.Theme.Accent(0.6)
	}
	drawButton(dst, r, fill, border, pressed)
}

// ChipStyle is a flat button used for the milestone grid.
type ChipStyle struct {
	Theme *Theme
}

func (s ChipStyle) Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered, active bool) {
	fill := s.Theme.Card(0.55)
	if active {
		fill = s.Theme.Accent(0.45)
	} else if hovered {
		fill = s.Theme.Card(0.85)
	}
	drawRect(dst, r, fill, true)
}

// CardStyle frames a block of text: translucent fill plus a thin border.
type CardStyle struct {
	Fill   color.Color
	Border color.Color
}

func (s CardStyle) Draw(dst *ebiten.Image, r image.Rectangle) {
	drawRect(dst, r, s.Fill, true)
	if s.Border != nil {
		drawRect(dst, r, s.Border, false)
	}
}
