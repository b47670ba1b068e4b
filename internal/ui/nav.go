package ui

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
)

const navH = 40

// Nav is the top bar: one button per section plus the theme and motion
// toggles on the right.
type Nav struct {
	theme     *Theme
	sections  []*Button
	ThemeBtn  *Button
	MotionBtn *Button
	r         image.Rectangle
}

// NewNav wires the buttons to the given callbacks.
func NewNav(th *Theme, goTo func(i int), toggleTheme, toggleMotion func()) *Nav {
	n := &Nav{theme: th}
	style := ButtonStyle{Theme: th}
	for i, s := range content.Sections {
		i := i
		n.sections = append(n.sections, NewButton(s.Label, style, func() { goTo(i) }))
	}
	n.ThemeBtn = NewButton("Theme", style, toggleTheme)
	n.MotionBtn = NewButton("Motion", style, toggleMotion)
	n.ThemeBtn.Magnetic = true
	n.MotionBtn.Magnetic = true
	return n
}

func (n *Nav) Layout(screen image.Rectangle) {
	n.r = image.Rect(screen.Min.X, screen.Min.Y, screen.Max.X, screen.Min.Y+navH)
	right := image.Rect(n.r.Max.X-180, n.r.Min.Y, n.r.Max.X, n.r.Max.Y)
	left := image.Rect(n.r.Min.X, n.r.Min.Y, right.Min.X, n.r.Max.Y)

	g := EvenGrid(left, len(n.sections), 1)
	for i, b := range n.sections {
		b.SetRect(insetRect(g.Cell(i, 0), 4))
	}
	tg := EvenGrid(right, 2, 1)
	n.ThemeBtn.SetRect(insetRect(tg.Cell(0, 0), 4))
	n.MotionBtn.SetRect(insetRect(tg.Cell(1, 0), 4))
}

func (n *Nav) Rect() image.Rectangle { return n.r }

// SetCurrent highlights section i.
func (n *Nav) SetCurrent(i int) {
	for j, b := range n.sections {
		b.Active = j == i
	}
}

// SetMotion reflects the motion flag in the toggle.
func (n *Nav) SetMotion(on bool) {
	n.MotionBtn.Active = on
	if on {
		n.MotionBtn.Text = "Motion"
	} else {
		n.MotionBtn.Text = "Still"
	}
}

func (n *Nav) Handle(mx, my int, pressed bool) bool {
	consumed := false
	for _, b := range n.buttons() {
		if b.Handle(mx, my, pressed) {
			consumed = true
		}
	}
	return consumed
}

func (n *Nav) Draw(dst *ebiten.Image) {
	drawRect(dst, n.r, n.theme.Card(0.7), true)
	for _, b := range n.buttons() {
		b.Draw(dst)
	}
}

func (n *Nav) buttons() []*Button {
	return append(append([]*Button{}, n.sections...), n.ThemeBtn, n.MotionBtn)
}
