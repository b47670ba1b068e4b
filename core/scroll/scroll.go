// Package scroll turns a scroll container and a pointer into the two signals
// the flight consumes: progress along the timeline and smoothed parallax.
package scroll

import (
	"math"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
)

const (
	// PathBaseVH and PathPerEntryVH size the scroll path in viewport heights.
	PathBaseVH     = 180
	PathPerEntryVH = 30

	parallaxFollow = 0.08
	parallaxDecay  = 0.92
	scrollEase     = 0.18
	snapDistance   = 0.5
)

// PathHeight is the pixel height of the scroll path for n entries.
func PathHeight(n int, viewport float64) float64 {
	return float64(PathBaseVH+PathPerEntryVH*n) / 100 * viewport
}

// Metrics describes the scroll container. Start is the offset of the path
// inside the scrolled content; Viewport is the visible height.
type Metrics struct {
	Start      float64
	PathHeight float64
	Viewport   float64
	SceneW     float64
	SceneH     float64
}

// RangeEnd is the scroll offset at which progress reaches 1.
func (m Metrics) RangeEnd() float64 {
	return m.Start + m.PathHeight - m.Viewport
}

// Span is the scrollable distance of the path; zero or negative means the
// path fits in the viewport.
func (m Metrics) Span() float64 { return m.RangeEnd() - m.Start }

// MaxScroll is the largest valid scroll offset.
func (m Metrics) MaxScroll() float64 {
	return math.Max(0, m.Start+m.PathHeight-m.Viewport)
}

// Bridge owns ScrollState. It is not safe for concurrent use; everything runs
// on the frame goroutine.
type Bridge struct {
	flight *flight.Engine
	m      Metrics

	top    float64
	target float64
	easing bool

	pointer  flight.Vec
	inside   bool
	parallax flight.Vec
}

func New(f *flight.Engine, m Metrics) *Bridge {
	return &Bridge{flight: f, m: m}
}

func (b *Bridge) Metrics() Metrics { return b.m }
func (b *Bridge) ScrollTop() float64 { return b.top }
func (b *Bridge) Parallax() flight.Vec { return b.parallax }

// Easing reports whether a smooth jump is still in flight.
func (b *Bridge) Easing() bool { return b.easing }

// Progress maps the scroll offset onto [0,1]. A path with no scrollable
// range reports 0.
func (b *Bridge) Progress() float64 {
	span := b.m.Span()
	if span <= 0 {
		return 0
	}
	p := (b.top - b.m.Start) / span
	return math.Max(0, math.Min(1, p))
}

// Resize replaces the container metrics and keeps the offset in range.
func (b *Bridge) Resize(m Metrics) {
	b.m = m
	b.top = b.clampTop(b.top)
	b.target = b.clampTop(b.target)
}

// ScrollTo sets the offset directly, cancelling any smooth jump.
func (b *Bridge) ScrollTo(top float64) {
	b.top = b.clampTop(top)
	b.easing = false
}

// ScrollBy moves the offset by delta, cancelling any smooth jump.
func (b *Bridge) ScrollBy(delta float64) {
	b.ScrollTo(b.top + delta)
}

// OffsetForEntry is the scroll offset at which entry i reaches the camera
// plane.
func (b *Bridge) OffsetForEntry(i int) float64 {
	p := b.flight.ProgressForEntry(i)
	return b.m.Start + p*math.Max(0, b.m.Span())
}

// JumpToEntry scrolls to entry i. With smooth set the offset eases there over
// the following Step calls; otherwise it lands at once.
func (b *Bridge) JumpToEntry(i int, smooth bool) {
	target := b.clampTop(b.OffsetForEntry(i))
	if !smooth {
		b.ScrollTo(target)
		return
	}
	b.target = target
	b.easing = true
}

// Step advances a smooth jump by one frame and reports whether the offset
// moved.
func (b *Bridge) Step() bool {
	if !b.easing {
		return false
	}
	d := b.target - b.top
	if math.Abs(d) <= snapDistance {
		b.top = b.target
		b.easing = false
		return d != 0
	}
	b.top += d * scrollEase
	return true
}

// PointerMove records the pointer in scene coordinates.
func (b *Bridge) PointerMove(x, y float64) {
	b.pointer = flight.Vec{X: x, Y: y}
	b.inside = true
}

// PointerLeave starts the parallax decay.
func (b *Bridge) PointerLeave() { b.inside = false }

// PointerInside reports whether the pointer is over the scene.
func (b *Bridge) PointerInside() bool { return b.inside }

// StepParallax advances the smoothed parallax by one frame.
func (b *Bridge) StepParallax() flight.Vec {
	if b.inside && b.m.SceneW > 0 && b.m.SceneH > 0 {
		tx := b.pointer.X/b.m.SceneW - 0.5
		ty := b.pointer.Y/b.m.SceneH - 0.5
		b.parallax.X += (tx - b.parallax.X) * parallaxFollow
		b.parallax.Y += (ty - b.parallax.Y) * parallaxFollow
	} else {
		b.parallax.X *= parallaxDecay
		b.parallax.Y *= parallaxDecay
	}
	return b.parallax
}

func (b *Bridge) clampTop(v float64) float64 {
	return math.Max(0, math.Min(v, b.m.MaxScroll()))
}
