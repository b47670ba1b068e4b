package ui

import (
	"image"
	"image/color"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/config"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/prefs"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/soundtrack"
)

// drawLog records draw calls made through the package hooks.
type drawLog struct {
	rects   int
	lines   int
	circles int
	glows   int
	images  int
	fills   int
	texts   []string
}

func (d *drawLog) hasText(s string) bool {
	for _, t := range d.texts {
		if t == s {
			return true
		}
	}
	return false
}

// captureDraws replaces every draw primitive for the duration of the test.
func captureDraws(t *testing.T) *drawLog {
	t.Helper()
	d := &drawLog{}
	oldRect, oldButton, oldLine, oldCircle := drawRect, drawButton, drawLine, drawCircle
	oldText, oldNew, oldImage, oldClear, oldFill, oldGlow := drawText, newImage, drawImage, clearImage, fillImage, drawGlow

	drawRect = func(*ebiten.Image, image.Rectangle, color.Color, bool) { d.rects++ }
	drawButton = func(*ebiten.Image, image.Rectangle, color.Color, color.Color, bool) { d.rects++ }
	drawLine = func(*ebiten.Image, float64, float64, float64, float64, float64, color.Color) { d.lines++ }
	drawCircle = func(*ebiten.Image, float64, float64, float64, color.Color) { d.circles++ }
	drawText = func(_ *ebiten.Image, s string, _, _ int) { d.texts = append(d.texts, s) }
	newImage = func(int, int) *ebiten.Image { return nil }
	drawImage = func(*ebiten.Image, *ebiten.Image, *ebiten.DrawImageOptions) { d.images++ }
	clearImage = func(*ebiten.Image) {}
	fillImage = func(*ebiten.Image, color.Color) { d.fills++ }
	drawGlow = func(*ebiten.Image, float64, float64, float64, color.RGBA, ebiten.GeoM) { d.glows++ }

	t.Cleanup(func() {
		drawRect, drawButton, drawLine, drawCircle = oldRect, oldButton, oldLine, oldCircle
		drawText, newImage, drawImage, clearImage, fillImage, drawGlow = oldText, oldNew, oldImage, oldClear, oldFill, oldGlow
	})
	return d
}

// fakeInput is the mutable state behind the input hooks.
type fakeInput struct {
	x, y    int
	pressed bool
	keys    map[ebiten.Key]bool
	wy      float64
	dpr     float64
}

func stubInput(t *testing.T) *fakeInput {
	t.Helper()
	in := &fakeInput{x: -1, y: -1, keys: map[ebiten.Key]bool{}, dpr: 1}
	restore := SetInputForTest(
		func() (int, int) { return in.x, in.y },
		func(b ebiten.MouseButton) bool { return b == ebiten.MouseButtonLeft && in.pressed },
		func(k ebiten.Key) bool { return in.keys[k] },
		func() (float64, float64) { return 0, in.wy },
		func() float64 { return in.dpr },
	)
	t.Cleanup(restore)
	return in
}

// tap presses k for one frame and releases it on the next.
func tap(g *Game, in *fakeInput, k ebiten.Key) {
	in.keys[k] = true
	g.Update()
	in.keys[k] = false
	g.Update()
}

// click presses the left button at (x,y) and releases it on the next frame.
func click(g *Game, in *fakeInput, x, y int) {
	in.x, in.y, in.pressed = x, y, true
	g.Update()
	in.pressed = false
	g.Update()
}

// pageHooks captures hash writes and stubs the clipboard.
type pageHooks struct {
	hash      string
	writes    []string
	clipboard bool
	copied    string
	light     bool
}

func stubPage(t *testing.T, hash string) *pageHooks {
	t.Helper()
	p := &pageHooks{hash: hash}
	oldCopy, oldRead, oldWrite, oldLight := copyToClipboard, readHash, writeHash, prefersLight
	copyToClipboard = func(s string) bool {
		if p.clipboard {
			p.copied = s
		}
		return p.clipboard
	}
	readHash = func() string { return p.hash }
	writeHash = func(h string) { p.writes = append(p.writes, h); p.hash = h }
	prefersLight = func() bool { return p.light }
	t.Cleanup(func() {
		copyToClipboard, readHash, writeHash, prefersLight = oldCopy, oldRead, oldWrite, oldLight
	})
	return p
}

func testConfig() config.Config {
	cfg := config.Default()
	cfg.Motion = false
	return cfg
}

func newTestPlayerView(t *testing.T, th *Theme) *PlayerView {
	t.Helper()
	p, err := soundtrack.New(content.Audio{Enabled: true, Title: "Starry"}, "", prefs.NewMemory(), game_log.Discard())
	if err != nil {
		t.Fatalf("player: %v", err)
	}
	return NewPlayerView(p, th)
}

func newTestGame(t *testing.T, motion bool, hash string) (*Game, *fakeInput, *pageHooks) {
	t.Helper()
	in := stubInput(t)
	page := stubPage(t, hash)
	p, err := content.Default()
	if err != nil {
		t.Fatalf("content: %v", err)
	}
	cfg := config.Default()
	cfg.Motion = motion
	g := New(Options{Content: p, Config: cfg, Prefs: prefs.NewMemory(), Logger: game_log.Discard()})
	g.Layout(1280, 800)
	return g, in, page
}

func machinesIndex() int { return content.SectionIndex(content.SectionMachines) }
