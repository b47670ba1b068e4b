package scroll

import (
	"math"
	"testing"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
)

func newBridge(n int) (*Bridge, *flight.Engine) {
	items := make([]content.TimelineEntry, n)
	for i := range items {
		items[i] = content.TimelineEntry{Year: 2000 + i, Title: "e"}
	}
	f := flight.New(items, flight.DefaultConfig())
	vp := 800.0
	return New(f, Metrics{Start: 400, PathHeight: PathHeight(n, vp), Viewport: vp, SceneW: 1000, SceneH: 600}), f
}

func TestPathHeight(t *testing.T) {
	if got := PathHeight(10, 1000); got != 4800 {
		t.Fatalf("PathHeight(10,1000)=%v want 4800", got)
	}
}

func TestProgressClamped(t *testing.T) {
	b, _ := newBridge(10)
	b.ScrollTo(0)
	if b.Progress() != 0 {
		t.Fatalf("above the path progress should be 0, got %v", b.Progress())
	}
	b.ScrollTo(1e9)
	if b.Progress() != 1 {
		t.Fatalf("past the path progress should be 1, got %v", b.Progress())
	}
	m := b.Metrics()
	b.ScrollTo(m.Start + m.Span()/4)
	if math.Abs(b.Progress()-0.25) > 1e-9 {
		t.Fatalf("progress=%v want 0.25", b.Progress())
	}
}

func TestZeroRangeFallsBackToZero(t *testing.T) {
	b, _ := newBridge(3)
	b.Resize(Metrics{Start: 0, PathHeight: 500, Viewport: 500})
	b.ScrollTo(200)
	if p := b.Progress(); p != 0 {
		t.Fatalf("zero range progress=%v want 0", p)
	}
	b.Resize(Metrics{Start: 0, PathHeight: 300, Viewport: 500})
	if p := b.Progress(); p != 0 || math.IsNaN(p) {
		t.Fatalf("negative range progress=%v want 0", p)
	}
}

func TestJumpToEntryRoundTrip(t *testing.T) {
	b, f := newBridge(12)
	for i := 0; i < f.Len(); i++ {
		b.JumpToEntry(i, false)
		zt := f.ZTravel(b.Progress())
		want := f.Config().Spacing * float64(i+1)
		if math.Abs(zt-want) > 1e-6 {
			t.Fatalf("entry %d: zTravel=%v want %v", i, zt, want)
		}
	}
}

func TestSmoothJumpConverges(t *testing.T) {
	b, f := newBridge(12)
	b.JumpToEntry(7, true)
	if !b.Easing() {
		t.Fatalf("smooth jump should be easing")
	}
	for i := 0; i < 200 && b.Step(); i++ {
	}
	if b.Easing() {
		t.Fatalf("smooth jump did not settle")
	}
	zt := f.ZTravel(b.Progress())
	if math.Abs(zt-f.Config().Spacing*8) > 1e-6 {
		t.Fatalf("settled at zTravel=%v want %v", zt, f.Config().Spacing*8)
	}
	if b.Step() {
		t.Fatalf("Step after settling should report no movement")
	}
}

func TestUserScrollCancelsJump(t *testing.T) {
	b, _ := newBridge(12)
	b.JumpToEntry(9, true)
	b.Step()
	b.ScrollBy(10)
	if b.Easing() {
		t.Fatalf("manual scroll should cancel the jump")
	}
}

func TestResizeKeepsOffsetInRange(t *testing.T) {
	b, _ := newBridge(10)
	b.ScrollTo(1e9)
	b.Resize(Metrics{Start: 0, PathHeight: 1000, Viewport: 400})
	if b.ScrollTop() != 600 {
		t.Fatalf("scrollTop=%v want 600", b.ScrollTop())
	}
}

func TestParallaxFollowsAndDecays(t *testing.T) {
	b, _ := newBridge(4)
	b.PointerMove(1000, 600)
	var p flight.Vec
	for i := 0; i < 200; i++ {
		p = b.StepParallax()
	}
	if math.Abs(p.X-0.5) > 1e-3 || math.Abs(p.Y-0.5) > 1e-3 {
		t.Fatalf("parallax should approach (0.5,0.5), got %+v", p)
	}
	b.PointerLeave()
	p = b.StepParallax()
	if math.Abs(p.X-0.5*0.92) > 1e-3 {
		t.Fatalf("parallax should decay by 0.92, got %+v", p)
	}
	for i := 0; i < 200; i++ {
		p = b.StepParallax()
	}
	if math.Abs(p.X) > 1e-3 || math.Abs(p.Y) > 1e-3 {
		t.Fatalf("parallax should decay to zero, got %+v", p)
	}
}
