package ui

import (
	"image"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
)

const (
	nebulaSeed     = 0x6e6562
	maxTags        = 110
	nebulaReach    = 180.0 // pointer influence radius
	nebulaPush     = 0.35
	nebulaFriction = 0.985
	nebulaBounce   = 0.9
	tagPad         = 5
)

type nebulaTag struct {
	label string
	group int
	x, y  float64 // top-left, stage-relative
	vx    float64
	vy    float64
	mass  float64
}

// Nebula floats the skill tags around a stage. Tags drift, bounce off the
// stage edges and are pushed away from the pointer. Like the sky, it only
// moves while started.
type Nebula struct {
	r       image.Rectangle
	tags    []nebulaTag
	rng     *rand.Rand
	px, py  float64
	pointer bool
	pressed bool
	running bool

	// OnCopy receives the label of a clicked tag.
	OnCopy func(label string)
}

func NewNebula(s content.Skills) *Nebula {
	n := &Nebula{rng: rand.New(rand.NewPCG(nebulaSeed, nebulaSeed<<3))}
	for gi, g := range s.Groups {
		for _, item := range g.Items {
			if len(n.tags) == maxTags {
				return n
			}
			n.tags = append(n.tags, nebulaTag{label: item, group: gi, mass: 0.8 + n.rng.Float64()*1.8})
		}
	}
	return n
}

func (n *Nebula) Len() int { return len(n.tags) }

func (n *Nebula) Start() { n.running = true }

func (n *Nebula) Stop() { n.running = false }

func (n *Nebula) Running() bool { return n.running }

// SetRect moves the stage. A new size scatters the tags again.
func (n *Nebula) SetRect(r image.Rectangle) {
	if r == n.r {
		return
	}
	resized := r.Size() != n.r.Size()
	n.r = r
	if resized {
		n.Shuffle()
	}
}

// Shuffle scatters the tags with fresh random velocities.
func (n *Nebula) Shuffle() {
	for i := range n.tags {
		t := &n.tags[i]
		w, h := n.bounds(t)
		t.x = n.rng.Float64() * w
		t.y = n.rng.Float64() * h
		t.vx = (n.rng.Float64() - 0.5) * 1.2
		t.vy = (n.rng.Float64() - 0.5) * 1.2
	}
}

// bounds is the room a tag's top-left corner has on the stage.
func (n *Nebula) bounds(t *nebulaTag) (float64, float64) {
	w, h := tagSize(t.label)
	return math.Max(0, float64(n.r.Dx()-w)), math.Max(0, float64(n.r.Dy()-h))
}

func tagSize(label string) (int, int) {
	return textWidth(label) + 2*tagPad, debugCharH + 2*tagPad
}

func (n *Nebula) tagRect(t *nebulaTag) image.Rectangle {
	w, h := tagSize(t.label)
	x, y := n.r.Min.X+int(math.Round(t.x)), n.r.Min.Y+int(math.Round(t.y))
	return image.Rect(x, y, x+w, y+h)
}

// TagAt returns the topmost tag under the screen point, or -1.
func (n *Nebula) TagAt(mx, my int) int {
	for i := len(n.tags) - 1; i >= 0; i-- {
		if pt(mx, my, n.tagRect(&n.tags[i])) {
			return i
		}
	}
	return -1
}

// Handle tracks the pointer and copies a tag on click. It reports whether
// the press landed on a tag.
func (n *Nebula) Handle(mx, my int, pressed bool) bool {
	n.pointer = pt(mx, my, n.r)
	if n.pointer {
		n.px, n.py = float64(mx-n.r.Min.X), float64(my-n.r.Min.Y)
	}
	hit := false
	if n.pointer && pressed && !n.pressed {
		if i := n.TagAt(mx, my); i >= 0 {
			hit = true
			if n.OnCopy != nil {
				n.OnCopy(n.tags[i].label)
			}
		}
	}
	n.pressed = pressed
	return hit
}

// Update advances the tags by one frame.
func (n *Nebula) Update() {
	if !n.running || n.r.Empty() {
		return
	}
	for i := range n.tags {
		t := &n.tags[i]
		if n.pointer {
			w, h := tagSize(t.label)
			dx := t.x + float64(w)/2 - n.px
			dy := t.y + float64(h)/2 - n.py
			dist := math.Hypot(dx, dy) + 0.001
			k := math.Max(0, 1-dist/nebulaReach) * nebulaPush / t.mass
			t.vx += dx / dist * k
			t.vy += dy / dist * k
		}
		t.x += t.vx
		t.y += t.vy
		t.vx *= nebulaFriction
		t.vy *= nebulaFriction

		w, h := n.bounds(t)
		if t.x < 0 {
			t.x, t.vx = 0, math.Abs(t.vx)*nebulaBounce
		}
		if t.y < 0 {
			t.y, t.vy = 0, math.Abs(t.vy)*nebulaBounce
		}
		if t.x > w {
			t.x, t.vx = w, -math.Abs(t.vx)*nebulaBounce
		}
		if t.y > h {
			t.y, t.vy = h, -math.Abs(t.vy)*nebulaBounce
		}
	}
}

func (n *Nebula) Draw(dst *ebiten.Image, th *Theme) {
	if n.r.Empty() {
		return
	}
	for i := range n.tags {
		t := &n.tags[i]
		r := n.tagRect(t)
		CardStyle{Fill: th.Card(0.82), Border: rgba(th.Palette(t.group), 0.9)}.Draw(dst, r)
		drawText(dst, t.label, r.Min.X+tagPad, r.Min.Y+tagPad)
	}
}
