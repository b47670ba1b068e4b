// Package flight projects a fixed set of timeline nodes through a camera
// that dollies along the depth axis. Everything here is pure: the same inputs
// always produce the same Frame.
package flight

import (
	"math"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
)

// NoPin marks the absence of a pinned entry.
const NoPin = -1

// InteractiveOpacity is the minimum opacity at which a node accepts clicks.
const InteractiveOpacity = 0.1

const tiltDegrees = 6

type Vec struct{ X, Y float64 }

// Projection is the screen placement of a node for one camera position.
type Projection struct {
	X, Y  float64
	Scale float64
}

// NodeState is everything a renderer needs to draw one node.
type NodeState struct {
	Node
	Depth       float64 // effective depth
	Projection  Projection
	Projected   bool
	Opacity     float64
	Interactive bool
	Active      bool
}

// Frame is one immutable evaluation of the scene.
type Frame struct {
	Progress float64
	ZTravel  float64
	Parallax Vec
	Center   Vec
	Tilt     float64 // degrees of roll applied to the node layer
	Nearest  int     // nearest-depth index, ignoring any pin
	Active   int     // Nearest, or the pinned index
	Pinned   bool
	Nodes    []NodeState
}

// Engine holds the laid out scene. It has no mutable state after New.
type Engine struct {
	cfg     Config
	entries []content.TimelineEntry
	nodes   []Node
}

func New(entries []content.TimelineEntry, cfg Config) *Engine {
	cfg = cfg.WithDefaults()
	return &Engine{cfg: cfg, entries: entries, nodes: Layout(entries, cfg)}
}

func (e *Engine) Config() Config                   { return e.cfg }
func (e *Engine) Len() int                         { return len(e.nodes) }
func (e *Engine) Entries() []content.TimelineEntry { return e.entries }

// Nodes returns a copy of the laid out nodes.
func (e *Engine) Nodes() []Node {
	out := make([]Node, len(e.nodes))
	copy(out, e.nodes)
	return out
}

// TotalDepth is the camera travel at progress 1.
func (e *Engine) TotalDepth() float64 {
	return e.cfg.Spacing * float64(len(e.nodes))
}

// ZTravel maps progress to camera travel. Progress is clamped to [0,1].
func (e *Engine) ZTravel(progress float64) float64 {
	return clamp(progress, 0, 1) * e.TotalDepth()
}

// ProgressForEntry returns the progress at which entry i sits on the camera
// plane, clamped to [0,1].
func (e *Engine) ProgressForEntry(i int) float64 {
	total := e.TotalDepth()
	if total <= 0 {
		return 0
	}
	return clamp(e.cfg.Spacing*float64(i+1)/total, 0, 1)
}

// EffectiveDepth is the node depth after camera travel. Zero means the node
// sits on the camera plane; positive means it has passed behind.
func EffectiveDepth(n Node, zTravel float64) float64 {
	return n.Z + zTravel
}

// Project places n on screen. ok is false once the node is behind the near
// clipping plane.
func (e *Engine) Project(n Node, zTravel float64, parallax, center Vec) (Projection, bool) {
	return project(e.cfg, EffectiveDepth(n, zTravel), n.X, n.Y, parallax, center)
}

func project(cfg Config, ze, x, y float64, parallax, center Vec) (Projection, bool) {
	denom := cfg.Perspective - ze
	if denom <= cfg.NearPlane {
		return Projection{}, false
	}
	s := cfg.Perspective / denom
	return Projection{
		X:     center.X + (x+parallax.X*cfg.ParallaxX)*s,
		Y:     center.Y + (y+parallax.Y*cfg.ParallaxY)*s,
		Scale: s,
	}, true
}

// Opacity fades a node as it recedes and hides it as it passes the camera.
func (e *Engine) Opacity(ze float64) float64 {
	return opacity(e.cfg, ze)
}

func opacity(cfg Config, ze float64) float64 {
	if ze > cfg.Perspective-cfg.NearPlane {
		return 0
	}
	return clamp(1-math.Max(0, ze)/cfg.FadeDepth, 0, 1)
}

// NearestIndex returns the index with the smallest absolute depth. Ties go to
// the lowest index. It returns -1 for an empty slice.
func NearestIndex(depths []float64) int {
	best := -1
	bestAbs := math.Inf(1)
	for i, d := range depths {
		if a := math.Abs(d); a < bestAbs {
			best, bestAbs = i, a
		}
	}
	return best
}

// ActiveIndex is NearestIndex over the scene at the given travel.
func (e *Engine) ActiveIndex(zTravel float64) int {
	depths := make([]float64, len(e.nodes))
	for i, n := range e.nodes {
		depths[i] = EffectiveDepth(n, zTravel)
	}
	return NearestIndex(depths)
}

// Frame evaluates the scene at progress. pinned replaces the reported active
// index when it names a valid entry; it never changes placement.
func (e *Engine) Frame(progress float64, parallax, center Vec, pinned int) Frame {
	progress = clamp(progress, 0, 1)
	zt := e.ZTravel(progress)
	f := Frame{
		Progress: progress,
		ZTravel:  zt,
		Parallax: parallax,
		Center:   center,
		Tilt:     parallax.X * tiltDegrees,
		Nodes:    make([]NodeState, len(e.nodes)),
	}
	depths := make([]float64, len(e.nodes))
	for i, n := range e.nodes {
		ze := EffectiveDepth(n, zt)
		depths[i] = ze
		p, ok := project(e.cfg, ze, n.X, n.Y, parallax, center)
		op := opacity(e.cfg, ze)
		f.Nodes[i] = NodeState{
			Node:        n,
			Depth:       ze,
			Projection:  p,
			Projected:   ok,
			Opacity:     op,
			Interactive: ok && op >= InteractiveOpacity,
		}
	}
	f.Nearest = NearestIndex(depths)
	f.Active = f.Nearest
	if pinned >= 0 && pinned < len(e.nodes) {
		f.Active = pinned
		f.Pinned = true
	}
	if f.Active >= 0 {
		f.Nodes[f.Active].Active = true
	}
	return f
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
