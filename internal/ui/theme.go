package ui

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	ThemeNight    = "night"
	ThemeProvence = "provence"

	themeBlend = 0.03 // per-frame approach toward the target theme
)

func rgb(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

// The sky brush palettes, index-aligned so strokes keep their hue family
// across a theme change.
var (
	palNight = []colorful.Color{
		rgb(11, 42, 111), rgb(20, 71, 166), rgb(29, 111, 224), rgb(255, 212, 90),
		rgb(240, 185, 79), rgb(255, 125, 74), rgb(11, 43, 42),
	}
	palDay = []colorful.Color{
		rgb(43, 60, 122), rgb(47, 99, 182), rgb(74, 163, 217), rgb(246, 196, 79),
		rgb(215, 154, 42), rgb(232, 107, 58), rgb(47, 107, 63),
	}

	fillNight = rgb(7, 9, 19)
	fillDay   = rgb(246, 240, 210)

	starNight = rgb(255, 212, 90)
	starDay   = rgb(255, 246, 210)

	lineNight = rgb(255, 212, 90)
	lineDay   = rgb(43, 60, 122)

	activeNight = rgb(255, 212, 90)
	activeDay   = rgb(215, 154, 42)

	idleNight = rgb(255, 255, 255)
	idleDay   = rgb(43, 60, 122)

	glowNight = rgb(255, 212, 90)
	glowDay   = rgb(255, 220, 140)

	cardNight = rgb(14, 18, 40)
	cardDay   = rgb(43, 60, 122)
)

// Theme blends between the night and provence looks. Mix 0 is night, 1 is
// provence; Step eases Mix toward the selected theme.
type Theme struct {
	id     string
	Mix    float64
	target float64
}

func NewTheme(id string) *Theme {
	t := &Theme{}
	t.Set(id)
	t.Mix = t.target
	return t
}

func (t *Theme) ID() string { return t.id }

// Set selects a theme. Unknown ids select night.
func (t *Theme) Set(id string) {
	if id != ThemeProvence {
		id = ThemeNight
	}
	t.id = id
	t.target = 0
	if id == ThemeProvence {
		t.target = 1
	}
}

// Toggle switches theme and returns the new id.
func (t *Theme) Toggle() string {
	if t.id == ThemeProvence {
		t.Set(ThemeNight)
	} else {
		t.Set(ThemeProvence)
	}
	return t.id
}

// Step advances the blend by one frame.
func (t *Theme) Step() {
	t.Mix += (t.target - t.Mix) * themeBlend
}

// Settle jumps straight to the target, for frames drawn without animation.
func (t *Theme) Settle() { t.Mix = t.target }

func (t *Theme) blend(night, day colorful.Color) colorful.Color {
	return night.BlendRgb(day, t.Mix)
}

func (t *Theme) lerp(a, b float64) float64 { return a + (b-a)*t.Mix }

// Palette returns brush colour i.
func (t *Theme) Palette(i int) colorful.Color {
	i %= len(palNight)
	return t.blend(palNight[i], palDay[i])
}

func (t *Theme) Fill() color.RGBA { return rgba(t.blend(fillNight, fillDay), 1) }
func (t *Theme) Star(a float64) color.RGBA { return rgba(t.blend(starNight, starDay), a) }
func (t *Theme) Line(a float64) color.RGBA { return rgba(t.blend(lineNight, lineDay), a) }
func (t *Theme) Card(a float64) color.RGBA { return rgba(t.blend(cardNight, cardDay), a) }
func (t *Theme) Accent(a float64) color.RGBA { return rgba(t.blend(activeNight, activeDay), a) }
func (t *Theme) Glow() color.RGBA { return rgba(t.blend(glowNight, glowDay), t.lerp(0.18, 0.22)) }
func (t *Theme) Border() color.RGBA { return rgba(t.blend(idleNight, idleDay), 0.35) }

// Marker colours the constellation stars.
func (t *Theme) Marker(active bool) color.RGBA {
	if active {
		return rgba(t.blend(activeNight, activeDay), 0.95)
	}
	return rgba(t.blend(idleNight, idleDay), t.lerp(0.40, 0.55))
}

// rgba converts to a premultiplied color.RGBA with alpha a in [0,1].
func rgba(c colorful.Color, a float64) color.RGBA {
	c = c.Clamped()
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(c.R*a*255 + 0.5),
		G: uint8(c.G*a*255 + 0.5),
		B: uint8(c.B*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}
