package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/soundtrack"
)

const (
	playerW          = 240
	playerH          = 92
	playerCollapsedW = 64
	playerCollapsedH = 26
)

// PlayerView is the vinyl widget in the bottom-right corner.
type PlayerView struct {
	player *soundtrack.Player
	theme  *Theme
	r      image.Rectangle

	play     *Button
	mute     *Button
	collapse *Button
	load     *Button
	volume   *Slider

	// OnLoad asks the host for a new track.
	OnLoad func()
}

func NewPlayerView(p *soundtrack.Player, th *Theme) *PlayerView {
	v := &PlayerView{player: p, theme: th}
	style := ButtonStyle{Theme: th}
	v.play = NewButton("Play", style, func() { p.Toggle() })
	v.mute = NewButton("Mute", style, func() { p.ToggleMute() })
	v.collapse = NewButton("-", style, func() { p.ToggleCollapsed() })
	v.load = NewButton("Load", style, func() {
		if v.OnLoad != nil {
			v.OnLoad()
		}
	})
	v.volume = NewSlider(p.Volume())
	v.volume.Label = "Vol"
	v.volume.OnChange = p.SetVolume
	return v
}

// Layout anchors the widget to the bottom-right of screen.
func (v *PlayerView) Layout(screen image.Rectangle) {
	w, h := playerW, playerH
	if v.player.Collapsed() {
		w, h = playerCollapsedW, playerCollapsedH
	}
	v.r = image.Rect(screen.Max.X-w-12, screen.Max.Y-h-12, screen.Max.X-12, screen.Max.Y-12)
	if v.player.Collapsed() {
		v.collapse.SetRect(v.r)
		return
	}
	v.collapse.SetRect(image.Rect(v.r.Max.X-26, v.r.Min.Y+6, v.r.Max.X-6, v.r.Min.Y+24))
	v.play.SetRect(image.Rect(v.r.Min.X+8, v.r.Min.Y+30, v.r.Min.X+68, v.r.Min.Y+50))
	v.mute.SetRect(image.Rect(v.r.Min.X+74, v.r.Min.Y+30, v.r.Min.X+134, v.r.Min.Y+50))
	v.load.SetRect(image.Rect(v.r.Min.X+140, v.r.Min.Y+30, v.r.Min.X+200, v.r.Min.Y+50))
	v.volume.SetRect(image.Rect(v.r.Min.X+8, v.r.Max.Y-20, v.r.Max.X-8, v.r.Max.Y-8))
}

func (v *PlayerView) Rect() image.Rectangle { return v.r }

// Handle processes the pointer and reports whether the widget consumed it.
func (v *PlayerView) Handle(mx, my int, pressed bool) bool {
	was := v.player.Collapsed()
	consumed := v.collapse.Handle(mx, my, pressed)
	if !was && !consumed {
		if v.play.Handle(mx, my, pressed) {
			consumed = true
		}
		if v.mute.Handle(mx, my, pressed) {
			consumed = true
		}
		if v.load.Handle(mx, my, pressed) {
			consumed = true
		}
		if v.volume.Handle(mx, my, pressed) {
			consumed = true
		}
	}
	v.sync()
	return consumed || pt(mx, my, v.r)
}

// sync copies player state into the controls.
func (v *PlayerView) sync() {
	p := v.player
	v.play.Active = p.Playing()
	v.play.Text = "Play"
	if p.Playing() {
		v.play.Text = "Pause"
	}
	v.mute.Active = p.Muted()
	v.mute.Text = "Mute"
	if p.Muted() {
		v.mute.Text = "Unmute"
	}
	v.collapse.Text = "-"
	if p.Collapsed() {
		v.collapse.Text = "Vinyl"
	}
	v.volume.Value = p.Volume()
}

func (v *PlayerView) Draw(dst *ebiten.Image) {
	v.sync()
	if v.player.Collapsed() {
		v.collapse.Draw(dst)
		return
	}
	CardStyle{Fill: v.theme.Card(0.9), Border: v.theme.Border()}.Draw(dst, v.r)
	title := v.player.Meta.Title
	if title == "" {
		title = "Vinyl"
	}
	if !v.player.Available() {
		title += " (no audio)"
	}
	drawText(dst, truncate(title, v.r.Dx()-40), v.r.Min.X+8, v.r.Min.Y+8)
	v.volume.Track = v.theme.Border()
	v.volume.Knob = v.theme.Accent(1)
	v.play.Draw(dst)
	v.mute.Draw(dst)
	v.load.Draw(dst)
	v.collapse.Draw(dst)
	v.volume.Draw(dst)
}
