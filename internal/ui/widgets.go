package ui

import (
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const glowSize = 128

/* ------------------------------------------------------------------
   radial glow sprites, one per colour
   ------------------------------------------------------------------ */

var glowCache = map[color.RGBA]*ebiten.Image{}

// glowPixels renders a size×size radial falloff from c at the centre to
// transparent at the edge. Pixels are premultiplied.
func glowPixels(c color.RGBA, size int) []byte {
	buf := make([]byte, size*size*4)
	half := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			d := math.Hypot(float64(x)+0.5-half, float64(y)+0.5-half) / half
			k := math.Max(0, 1-d)
			k *= k
			i := (y*size + x) * 4
			buf[i] = uint8(float64(c.R) * k)
			buf[i+1] = uint8(float64(c.G) * k)
			buf[i+2] = uint8(float64(c.B) * k)
			buf[i+3] = uint8(float64(c.A) * k)
		}
	}
	return buf
}

func glowImage(c color.RGBA) *ebiten.Image {
	if img, ok := glowCache[c]; ok {
		return img
	}
	img := newImage(glowSize, glowSize)
	img.WritePixels(glowPixels(c, glowSize))
	glowCache[c] = img
	return img
}

// drawGlow paints a radial glow of radius r centred at (cx,cy), transformed
// by geo.
var drawGlow = func(dst *ebiten.Image, cx, cy, r float64, c color.RGBA, geo ebiten.GeoM) {
	var op ebiten.DrawImageOptions
	s := 2 * r / glowSize
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(cx-r, cy-r)
	op.GeoM.Concat(geo)
	op.Blend = ebiten.BlendLighter
	drawImage(dst, glowImage(c), &op)
}

/* ------------------------------------------------------------------
   text helpers for the debug font
   ------------------------------------------------------------------ */

// wrapText breaks s into lines at most width pixels wide. Words longer than
// a line are split.
func wrapText(s string, width int) []string {
	limit := width / debugCharW
	if limit < 1 {
		limit = 1
	}
	return strings.Split(wrap.String(wordwrap.String(s, limit), limit), "\n")
}

// truncate shortens s to fit width pixels, marking the cut with "...".
func truncate(s string, width int) string {
	limit := width / debugCharW
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:maxInt(limit, 0)])
	}
	return string(r[:limit-3]) + "..."
}

// drawLines prints lines from (x,y) and returns the y below the last one.
func drawLines(dst *ebiten.Image, lines []string, x, y int) int {
	for _, l := range lines {
		drawText(dst, l, x, y)
		y += debugCharH + 3
	}
	return y
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
