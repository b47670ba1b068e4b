package ui

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const toastDuration = 1500 * time.Millisecond

// Toast shows one transient message. A new message replaces the current one
// and restarts the timer.
type Toast struct {
	msg   string
	until time.Time
	now   func() time.Time
}

func NewToast() *Toast { return &Toast{now: time.Now} }

func (t *Toast) Show(msg string) {
	t.msg = msg
	t.until = t.now().Add(toastDuration)
}

// Message returns the visible message, or "" once it has expired.
func (t *Toast) Message() string {
	if t.msg == "" || !t.now().Before(t.until) {
		return ""
	}
	return t.msg
}

func (t *Toast) Draw(dst *ebiten.Image, screen image.Rectangle, th *Theme) {
	msg := t.Message()
	if msg == "" {
		return
	}
	w := textWidth(msg) + 24
	cx := screen.Min.X + screen.Dx()/2
	r := image.Rect(cx-w/2, screen.Max.Y-70, cx+w/2, screen.Max.Y-44)
	CardStyle{Fill: th.Card(0.92), Border: th.Accent(0.8)}.Draw(dst, r)
	drawText(dst, msg, r.Min.X+12, r.Min.Y+(r.Dy()-debugCharH)/2)
}
