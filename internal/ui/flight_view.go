package ui

import (
	"fmt"
	"image"
	"math"
	"sort"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/engine"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/scroll"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

const (
	cardW       = 200
	cardH       = 58
	chipsH      = 30
	hudW        = 360
	hudH        = 112
	progressW   = 4
	wheelStep   = 60.0
	keyStep     = 90.0
	textOpacity = 0.35
)

// FlightView draws the timeline panel. It is the engine's Renderer: Render
// stores the evaluated frame and Draw paints whatever was stored last.
type FlightView struct {
	eng   *engine.Engine
	theme *Theme
	toast *Toast
	log   *game_log.Logger

	cam     *Camera
	rect    image.Rectangle // whole panel
	scene   image.Rectangle // flight area above the chips
	surface *ebiten.Image

	frame   flight.Frame
	overlay flight.Overlay

	unpin *Button
	chips []*Button

	pressed bool
	inside  bool
	focus   int // keyboard-focused entry, -1 for none

	// OnPin and OnUnpin report pin changes made through the view.
	OnPin   func(i, year int)
	OnUnpin func()
}

func NewFlightView(eng *engine.Engine, th *Theme, toast *Toast, logger *game_log.Logger) *FlightView {
	v := &FlightView{
		eng:   eng,
		theme: th,
		toast: toast,
		log:   logger.Tag("VIEW"),
		cam:   NewCamera(),
		focus: -1,
	}
	v.unpin = NewButton("Unpin", ButtonStyle{Theme: th}, v.doUnpin)
	v.unpin.Hidden = true
	for i, e := range eng.Flight.Entries() {
		i := i
		v.chips = append(v.chips, NewButton(strconv.Itoa(e.Year), ChipStyle{Theme: th}, func() { v.selectEntry(i) }))
	}
	v.frame = eng.Frame()
	v.overlay = flight.Constellation(v.frame)
	return v
}

// Render implements engine.Renderer.
func (v *FlightView) Render(f flight.Frame) {
	v.frame = f
	v.overlay = flight.Constellation(f)
	v.unpin.Hidden = !f.Pinned
	for i, c := range v.chips {
		c.Active = i == f.Active
	}
}

func (v *FlightView) Frame() flight.Frame { return v.frame }

func (v *FlightView) Scene() image.Rectangle { return v.scene }

// Layout places the view on panel r and resizes the scroll path to match.
func (v *FlightView) Layout(r image.Rectangle, dpr float64) {
	scene := image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Max.Y-chipsH)
	if r == v.rect && scene == v.scene && SurfaceScale(dpr) == v.cam.Scale {
		return
	}
	v.rect, v.scene = r, scene
	v.cam.Fit(scene, dpr)
	v.surface = nil

	hud := image.Rect(scene.Min.X+16, scene.Max.Y-hudH-12, scene.Min.X+16+hudW, scene.Max.Y-12)
	v.unpin.SetRect(image.Rect(hud.Max.X-70, hud.Min.Y+8, hud.Max.X-8, hud.Min.Y+28))

	if len(v.chips) > 0 {
		g := EvenGrid(image.Rect(r.Min.X, r.Max.Y-chipsH, r.Max.X, r.Max.Y), len(v.chips), 1)
		for i, c := range v.chips {
			c.SetRect(insetRect(g.Cell(i, 0), 2))
		}
	}

	vp := float64(scene.Dy())
	v.eng.Resize(scroll.Metrics{
		PathHeight: scroll.PathHeight(v.eng.Flight.Len(), vp),
		Viewport:   vp,
		SceneW:     float64(scene.Dx()),
		SceneH:     float64(scene.Dy()),
	})
	v.log.Debugf("layout scene=%v dpr=%.2f", scene, v.cam.Scale)
}

// Update handles pointer and wheel input for one frame. It reports whether
// the pointer was consumed.
func (v *FlightView) Update(mx, my int, pressed bool, wy float64) bool {
	consumed := v.unpin.Handle(mx, my, pressed)
	for _, c := range v.chips {
		if c.Handle(mx, my, pressed) {
			consumed = true
		}
	}

	if pt(mx, my, v.scene) {
		x, y := v.cam.ScenePos(mx, my)
		v.eng.PointerMove(x, y)
		v.inside = true
		if wy != 0 {
			v.eng.ScrollBy(-wy * wheelStep)
		}
		if pressed && !v.pressed && !consumed {
			if i := v.HitTest(mx, my); i >= 0 {
				v.pinEntry(i)
				consumed = true
			}
		}
	} else if v.inside {
		v.eng.PointerLeave()
		v.inside = false
	}
	v.pressed = pressed
	return consumed
}

func (v *FlightView) pinEntry(i int) {
	if err := v.eng.Pin(i); err != nil {
		v.log.Warnf("pin: %v", err)
		return
	}
	entry, _ := v.eng.Entry(i)
	v.toast.Show(fmt.Sprintf("Pinned: %d", entry.Year))
	if v.OnPin != nil {
		v.OnPin(i, entry.Year)
	}
}

func (v *FlightView) selectEntry(i int) {
	if err := v.eng.Select(i); err != nil {
		v.log.Warnf("select: %v", err)
		return
	}
	entry, _ := v.eng.Entry(i)
	if v.OnPin != nil {
		v.OnPin(i, entry.Year)
	}
}

func (v *FlightView) doUnpin() {
	if v.eng.Unpin() {
		v.toast.Show("Unpinned")
		if v.OnUnpin != nil {
			v.OnUnpin()
		}
	}
}

// Unpin is the keyboard path of the close button.
func (v *FlightView) Unpin() { v.doUnpin() }

func (v *FlightView) Focus() int { return v.focus }

func (v *FlightView) ClearFocus() { v.focus = -1 }

// MoveFocus steps keyboard focus by d entries and flies to the focused one.
// The first move starts from the active entry.
func (v *FlightView) MoveFocus(d int) {
	n := v.eng.Flight.Len()
	if n == 0 {
		return
	}
	f := v.focus
	if f < 0 {
		f = v.frame.Active
	} else {
		f += d
	}
	if f < 0 {
		f = 0
	}
	if f > n-1 {
		f = n - 1
	}
	v.focus = f
	v.eng.JumpToEntry(f)
}

// PinFocused pins the focused entry. Without focus it does nothing.
func (v *FlightView) PinFocused() {
	if v.focus >= 0 {
		v.pinEntry(v.focus)
	}
}

// nodePos is the screen centre of node n after the layer roll.
func (v *FlightView) nodePos(n flight.NodeState) (float64, float64) {
	f := v.frame
	x, y := n.Projection.X-f.Center.X, n.Projection.Y-f.Center.Y
	a := f.Tilt * math.Pi / 180
	s, c := math.Sin(a), math.Cos(a)
	return v.cam.ScreenPos(f.Center.X+x*c-y*s, f.Center.Y+x*s+y*c)
}

func (v *FlightView) cardRect(n flight.NodeState) image.Rectangle {
	k := clampf(n.Projection.Scale, 0.45, 2.2)
	x, y := v.nodePos(n)
	return rectAround(x, y, int(cardW*k), int(cardH*k))
}

// HitTest returns the nearest interactive node whose card contains the
// screen point, or -1.
func (v *FlightView) HitTest(sx, sy int) int {
	best, bestDepth := -1, math.Inf(-1)
	for _, n := range v.frame.Nodes {
		if !n.Interactive || !pt(sx, sy, v.cardRect(n)) {
			continue
		}
		if n.Depth > bestDepth {
			best, bestDepth = n.Index, n.Depth
		}
	}
	return best
}

// DrawScene paints the constellation onto a device-resolution screen
// through the surface.
func (v *FlightView) DrawScene(screen *ebiten.Image) {
	if v.scene.Empty() {
		return
	}
	if v.surface == nil {
		w, h := v.cam.SurfaceSize(v.scene.Dx(), v.scene.Dy())
		v.surface = newImage(w, h)
	}
	v.drawOverlay()
	drawImage(screen, v.surface, &ebiten.DrawImageOptions{GeoM: v.cam.GeoM()})
}

// Draw paints cards, progress, HUD and chips in logical pixels.
func (v *FlightView) Draw(dst *ebiten.Image) {
	if v.scene.Empty() {
		return
	}
	v.drawNodes(dst)
	v.drawProgress(dst)
	v.drawHUD(dst)
	for _, c := range v.chips {
		c.Draw(dst)
	}
}

func (v *FlightView) drawOverlay() {
	clearImage(v.surface)
	k := v.cam.Scale
	w, h := float64(v.scene.Dx()), float64(v.scene.Dy())
	drawGlow(v.surface, 0.6*w, 0.35*h, 0.9*w, v.theme.Glow(), v.cam.SurfaceGeoM())
	for _, s := range v.overlay.Segments {
		drawLine(v.surface, s.X1*k, s.Y1*k, s.X2*k, s.Y2*k, 2*k, v.theme.Line(s.Alpha))
	}
	for _, s := range v.overlay.Stars {
		drawCircle(v.surface, s.X*k, s.Y*k, s.Radius*k, v.theme.Marker(s.Active))
	}
}

func (v *FlightView) drawNodes(dst *ebiten.Image) {
	order := make([]flight.NodeState, 0, len(v.frame.Nodes))
	for _, n := range v.frame.Nodes {
		if n.Projected && n.Opacity > 0 {
			order = append(order, n)
		}
	}
	// far to near
	sort.SliceStable(order, func(i, j int) bool { return order[i].Depth < order[j].Depth })

	for _, n := range order {
		r := v.cardRect(n)
		if !r.Overlaps(v.scene) {
			continue
		}
		border := v.theme.Border()
		if n.Active {
			border = v.theme.Accent(0.9 * n.Opacity)
		}
		CardStyle{Fill: v.theme.Card(0.72 * n.Opacity), Border: border}.Draw(dst, r)
		if n.Index == v.focus {
			drawRect(dst, insetRect(r, -3), v.theme.Accent(0.95), false)
		}
		if n.Opacity < textOpacity || r.Dy() < 2*debugCharH {
			continue
		}
		entry, _ := v.eng.Entry(n.Index)
		inner := r.Dx() - 12
		lines := []string{strconv.Itoa(entry.Year), truncate(entry.Title, inner)}
		if r.Dy() >= 3*debugCharH+12 {
			lines = append(lines, truncate(entry.Subtitle, inner))
		}
		drawLines(dst, lines, r.Min.X+6, r.Min.Y+4)
	}
}

func (v *FlightView) drawProgress(dst *ebiten.Image) {
	track := image.Rect(v.scene.Max.X-progressW-6, v.scene.Min.Y+12, v.scene.Max.X-6, v.scene.Max.Y-12)
	drawRect(dst, track, v.theme.Card(0.6), true)
	fill := track
	fill.Max.Y = track.Min.Y + int(float64(track.Dy())*v.frame.Progress)
	drawRect(dst, fill, v.theme.Accent(0.9), true)
}

func (v *FlightView) drawHUD(dst *ebiten.Image) {
	entry, ok := v.eng.Entry(v.frame.Active)
	if !ok {
		return
	}
	r := image.Rect(v.scene.Min.X+16, v.scene.Max.Y-hudH-12, v.scene.Min.X+16+hudW, v.scene.Max.Y-12)
	CardStyle{Fill: v.theme.Card(0.88), Border: v.theme.Accent(0.7)}.Draw(dst, r)

	sub := entry.Subtitle
	if v.frame.Pinned {
		sub += "  •  pinned"
	}
	inner := r.Dx() - 16
	lines := []string{
		truncate(fmt.Sprintf("%d  %s", entry.Year, entry.Title), inner-80),
		truncate(sub, inner),
	}
	desc := wrapText(entry.Description, inner)
	if len(desc) > 4 {
		desc = desc[:4]
	}
	drawLines(dst, append(lines, desc...), r.Min.X+8, r.Min.Y+8)
	v.unpin.Draw(dst)
}
