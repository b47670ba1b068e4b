package ui

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// maxSurfaceScale caps the device pixel ratio of offscreen surfaces.
const maxSurfaceScale = 2.0

// Camera maps a panel in logical screen coordinates onto an offscreen
// surface drawn at device resolution. Scene coordinates are panel-relative
// logical pixels.
type Camera struct {
	Scale   float64 // device pixels per logical pixel, capped
	OffsetX float64 // panel origin on screen
	OffsetY float64
}

func NewCamera() *Camera { return &Camera{Scale: 1} }

// SurfaceScale clamps a device scale factor to [1, maxSurfaceScale].
func SurfaceScale(dpr float64) float64 {
	if math.IsNaN(dpr) || dpr < 1 {
		return 1
	}
	return math.Min(dpr, maxSurfaceScale)
}

// Fit places the camera on panel r for the given device scale factor.
func (c *Camera) Fit(r image.Rectangle, dpr float64) {
	c.Scale = SurfaceScale(dpr)
	c.OffsetX = float64(r.Min.X)
	c.OffsetY = float64(r.Min.Y)
}

// SurfaceSize is the pixel size of the offscreen surface for a w×h panel.
func (c *Camera) SurfaceSize(w, h int) (int, int) {
	return int(math.Ceil(float64(w) * c.Scale)), int(math.Ceil(float64(h) * c.Scale))
}

// ScreenPos converts scene coordinates to screen coordinates.
func (c *Camera) ScreenPos(x, y float64) (sx, sy float64) {
	return x + c.OffsetX, y + c.OffsetY
}

// ScenePos converts screen coordinates to scene coordinates.
func (c *Camera) ScenePos(sx, sy int) (x, y float64) {
	return float64(sx) - c.OffsetX, float64(sy) - c.OffsetY
}

// SurfaceGeoM scales scene coordinates up to surface pixels.
func (c *Camera) SurfaceGeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Scale(c.Scale, c.Scale)
	return m
}

// GeoM places the surface 1:1 on a screen that is itself Scale device
// pixels per logical pixel.
func (c *Camera) GeoM() ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(math.Round(c.OffsetX*c.Scale), math.Round(c.OffsetY*c.Scale))
	return m
}

// logicalPos converts a device-pixel position to logical pixels.
func logicalPos(dx, dy int, scale float64) (int, int) {
	if dx < 0 || dy < 0 {
		return dx, dy
	}
	return int(math.Floor(float64(dx) / scale)), int(math.Floor(float64(dy) / scale))
}
