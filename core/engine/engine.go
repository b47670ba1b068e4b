// Package engine drives the flight: it owns the scroll bridge and the pin
// switch, evaluates a flight.Frame when something changes and hands it to a
// Renderer. The host calls Tick once per display frame.
package engine

import (
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/pin"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/scroll"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

// Renderer turns a frame into side effects. Implementations must not keep f
// beyond the call unless they copy it.
type Renderer interface {
	Render(f flight.Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(f flight.Frame)

func (fn RendererFunc) Render(f flight.Frame) { fn(f) }

// Engine is the flight controller. All methods must be called from the frame
// goroutine.
type Engine struct {
	Flight *flight.Engine
	Scroll *scroll.Bridge

	pin      pin.State
	renderer Renderer
	sched    Scheduler
	log      *game_log.Logger

	frame      flight.Frame
	frames     int
	lastActive int
	lastPinned bool

	// OnActive fires whenever the reported entry or its pinned flag changes.
	OnActive func(i int, entry content.TimelineEntry, pinned bool)
}

// New builds a controller for entries. A nil renderer leaves the flight
// unmounted: the node list is still laid out but no frames are evaluated
// until SetRenderer is called.
func New(entries []content.TimelineEntry, cfg flight.Config, m scroll.Metrics, r Renderer, logger *game_log.Logger) *Engine {
	f := flight.New(entries, cfg)
	e := &Engine{
		Flight:     f,
		Scroll:     scroll.New(f, m),
		renderer:   r,
		log:        logger.Tag("FLIGHT"),
		lastActive: -1,
	}
	e.frame = f.Frame(0, flight.Vec{}, center(m), flight.NoPin)
	if r == nil {
		e.log.Warnf("no render surface; flight stays static")
	}
	return e
}

// Mounted reports whether a renderer is attached.
func (e *Engine) Mounted() bool { return e.renderer != nil }

// SetRenderer attaches (or with nil detaches) the render surface.
func (e *Engine) SetRenderer(r Renderer) {
	e.renderer = r
	if r != nil {
		e.recompute()
	}
}

// SetMotion injects the motion preference.
func (e *Engine) SetMotion(on bool) {
	if e.sched.SetMotion(on) {
		e.log.Debugf("motion=%v state=%s", on, e.sched.State())
		e.settle()
		e.recompute()
	}
}

func (e *Engine) Motion() bool { return e.sched.Motion() }

func (e *Engine) State() State { return e.sched.State() }

func (e *Engine) Running() bool { return e.sched.Running() }

// Start begins frame evaluation. It always draws one frame immediately.
func (e *Engine) Start() {
	if !e.sched.Start() {
		return
	}
	e.log.Infof("start state=%s entries=%d", e.sched.State(), e.Flight.Len())
	e.recompute()
}

// Stop ends per-frame evaluation and draws one final frame so the surface
// is left consistent.
func (e *Engine) Stop() {
	if !e.sched.Stop() {
		return
	}
	e.log.Infof("stop")
	e.settle()
	e.recompute()
}

// Tick is the per-frame callback. It reports whether a frame was evaluated.
func (e *Engine) Tick() bool {
	if !e.sched.Tick() {
		return false
	}
	e.Scroll.Step()
	e.recompute()
	return true
}

// Resize updates the container metrics.
func (e *Engine) Resize(m scroll.Metrics) {
	e.Scroll.Resize(m)
	e.input()
}

// ScrollBy moves the scroll offset by delta pixels.
func (e *Engine) ScrollBy(delta float64) {
	if delta == 0 {
		return
	}
	e.Scroll.ScrollBy(delta)
	e.input()
}

// ScrollTo sets the scroll offset.
func (e *Engine) ScrollTo(top float64) {
	e.Scroll.ScrollTo(top)
	e.input()
}

// PointerMove and PointerLeave only feed parallax, which is advanced by
// animated frames.
func (e *Engine) PointerMove(x, y float64) { e.Scroll.PointerMove(x, y) }
func (e *Engine) PointerLeave()            { e.Scroll.PointerLeave() }

// JumpToEntry scrolls entry i onto the camera plane. While animating the
// scroll eases there; otherwise it lands at once.
func (e *Engine) JumpToEntry(i int) {
	if i < 0 || i >= e.Flight.Len() {
		e.log.Warnf("jump to %d ignored, %d entries", i, e.Flight.Len())
		return
	}
	e.Scroll.JumpToEntry(i, e.sched.State() == Animating)
	e.log.Debugf("jump to %d", i)
	e.input()
}

// Pin fixes the reported entry to i.
func (e *Engine) Pin(i int) error {
	if err := e.pin.Pin(i, e.Flight.Len()); err != nil {
		return err
	}
	e.log.Infof("pinned %d", i)
	e.recompute()
	return nil
}

// Select jumps to entry i and pins it.
func (e *Engine) Select(i int) error {
	if err := e.Pin(i); err != nil {
		return err
	}
	e.JumpToEntry(i)
	return nil
}

// Unpin returns to nearest-depth selection and reevaluates at once.
func (e *Engine) Unpin() bool {
	if !e.pin.Unpin() {
		return false
	}
	e.log.Infof("unpinned")
	e.recompute()
	return true
}

// LeaveSection is called when the timeline stops being the current panel.
func (e *Engine) LeaveSection() {
	if e.pin.Leave() {
		e.log.Debugf("left section, unpinned")
		e.recompute()
	}
}

func (e *Engine) Pinned() pin.State { return e.pin }

// Frame returns the last evaluated frame.
func (e *Engine) Frame() flight.Frame { return e.frame }

// Frames counts evaluations since New.
func (e *Engine) Frames() int { return e.frames }

func (e *Engine) Progress() float64 { return e.Scroll.Progress() }

// Active is the entry the HUD shows.
func (e *Engine) Active() int { return e.frame.Active }

// Entry returns the timeline entry at i.
func (e *Engine) Entry(i int) (content.TimelineEntry, bool) {
	list := e.Flight.Entries()
	if i < 0 || i >= len(list) {
		return content.TimelineEntry{}, false
	}
	return list[i], true
}

// input handles a discrete input. Animated frames pick the change up on the
// next Tick; a static engine evaluates now.
func (e *Engine) input() {
	if e.sched.Input() {
		e.recompute()
	}
}

// settle finishes any smooth jump so a static frame shows its destination.
func (e *Engine) settle() {
	if e.sched.State() == Static && e.Scroll.Easing() {
		for e.Scroll.Step() {
		}
	}
}

func (e *Engine) recompute() {
	if e.renderer == nil {
		return
	}
	par := e.Scroll.StepParallax()
	m := e.Scroll.Metrics()
	f := e.Flight.Frame(e.Scroll.Progress(), par, center(m), e.pin.Index())
	e.frame = f
	e.frames++
	if f.Active != e.lastActive || f.Pinned != e.lastPinned {
		e.lastActive, e.lastPinned = f.Active, f.Pinned
		if entry, ok := e.Entry(f.Active); ok {
			e.log.Debugf("active %d (%d %s) pinned=%v", f.Active, entry.Year, entry.Title, f.Pinned)
			if e.OnActive != nil {
				e.OnActive(f.Active, entry, f.Pinned)
			}
		}
	}
	e.renderer.Render(f)
}

func center(m scroll.Metrics) flight.Vec {
	return flight.Vec{X: m.SceneW / 2, Y: m.SceneH / 2}
}
