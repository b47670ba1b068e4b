package ui

import (
	"image"
	"math"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	// Ebiten's debug font uses a 6x13 glyph.
	debugCharW = 6
	debugCharH = 13
)

// insetRect returns r shrunk by pad pixels on all sides.
func insetRect(r image.Rectangle, pad int) image.Rectangle {
	return image.Rect(r.Min.X+pad, r.Min.Y+pad, r.Max.X-pad, r.Max.Y-pad)
}

// textWidth is the pixel width of s in the debug font.
func textWidth(s string) int { return debugCharW * utf8.RuneCountInString(s) }

// ButtonVisual is implemented by styles capable of drawing a button.
type ButtonVisual interface {
	Draw(dst *ebiten.Image, r image.Rectangle, pressed, hovered, active bool)
}

const (
	magnetStrength = 0.22
	magnetRelease  = 0.3 // share of the offset recovered per frame
)

// Button is a clickable rectangle with a text label. Active marks a
// selected/toggled button, e.g. the current section in the nav. A Magnetic
// button leans toward the hovering pointer.
type Button struct {
	r        image.Rectangle
	Text     string
	Style    ButtonVisual
	OnClick  func()
	Active   bool
	Hidden   bool
	Magnetic bool
	pressed  bool
	hovered  bool
	held     bool
	magX     float64
	magY     float64
}

func NewButton(text string, style ButtonVisual, onClick func()) *Button {
	return &Button{Text: text, Style: style, OnClick: onClick}
}

func (b *Button) Rect() image.Rectangle { return b.r }

func (b *Button) SetRect(r image.Rectangle) { b.r = r }

func (b *Button) Draw(dst *ebiten.Image) {
	if b.Hidden {
		return
	}
	shift := b.Offset()
	if b.Style != nil {
		b.Style.Draw(dst, b.r.Add(shift), b.pressed, b.hovered, b.Active)
	}
	tr := b.textRect().Add(shift)
	drawText(dst, b.Text, tr.Min.X, tr.Min.Y)
}

// Offset is the magnetic shift applied when drawing.
func (b *Button) Offset() image.Point {
	return image.Pt(int(math.Round(b.magX)), int(math.Round(b.magY)))
}

func (b *Button) pull(mx, my int) {
	if !b.Magnetic {
		return
	}
	if b.hovered {
		c := b.r.Min.Add(b.r.Max).Div(2)
		b.magX = float64(mx-c.X) * magnetStrength
		b.magY = float64(my-c.Y) * magnetStrength
		return
	}
	b.magX -= b.magX * magnetRelease
	b.magY -= b.magY * magnetRelease
	if math.Abs(b.magX) < 0.5 && math.Abs(b.magY) < 0.5 {
		b.magX, b.magY = 0, 0
	}
}

func (b *Button) textRect() image.Rectangle {
	w := textWidth(b.Text)
	x := b.r.Min.X + (b.r.Dx()-w)/2
	y := b.r.Min.Y + (b.r.Dy()-debugCharH)/2
	return image.Rect(x, y, x+w, y+debugCharH)
}

// Handle processes the mouse at (mx,my). OnClick fires once per press that
// starts inside the button. It reports whether the button consumed the
// press.
func (b *Button) Handle(mx, my int, pressed bool) bool {
	if b.Hidden {
		b.pressed, b.hovered, b.held = false, false, false
		b.magX, b.magY = 0, 0
		return false
	}
	inside := pt(mx, my, b.r)
	b.hovered = inside
	b.pull(mx, my)
	if pressed && inside {
		if !b.held && b.OnClick != nil {
			b.OnClick()
		}
		b.held = true
		b.pressed = true
		return true
	}
	b.pressed = false
	if !pressed {
		b.held = false
	}
	return false
}

// GridLayout splits a rectangle into rows and columns using fractional weights.
type GridLayout struct {
	bounds     image.Rectangle
	colWeights []float64
	rowWeights []float64
	colPos     []int
	rowPos     []int
}

func NewGridLayout(b image.Rectangle, cols, rows []float64) *GridLayout {
	g := &GridLayout{bounds: b, colWeights: cols, rowWeights: rows}
	g.recalc()
	return g
}

// EvenGrid is a layout of cols×rows equal cells.
func EvenGrid(b image.Rectangle, cols, rows int) *GridLayout {
	cw := make([]float64, cols)
	for i := range cw {
		cw[i] = 1
	}
	rw := make([]float64, rows)
	for i := range rw {
		rw[i] = 1
	}
	return NewGridLayout(b, cw, rw)
}

func (g *GridLayout) recalc() {
	g.colPos = positions(g.bounds.Min.X, g.bounds.Max.X, g.colWeights)
	g.rowPos = positions(g.bounds.Min.Y, g.bounds.Max.Y, g.rowWeights)
}

func positions(lo, hi int, weights []float64) []int {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	pos := make([]int, len(weights)+1)
	x := lo
	for i, w := range weights {
		pos[i] = x
		if total > 0 {
			x += int(float64(hi-lo) * (w / total))
		}
	}
	pos[len(weights)] = hi
	return pos
}

// Cell returns the rectangle for the specified cell.
func (g *GridLayout) Cell(col, row int) image.Rectangle {
	return image.Rect(g.colPos[col], g.rowPos[row], g.colPos[col+1], g.rowPos[row+1])
}
