package flight

import (
	"math"
	"testing"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
)

func entries(n int) []content.TimelineEntry {
	out := make([]content.TimelineEntry, n)
	for i := range out {
		out[i] = content.TimelineEntry{Year: 1900 + i*5, Title: "entry"}
	}
	return out
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestZTravelMonotone(t *testing.T) {
	e := New(entries(10), DefaultConfig())
	prev := -1.0
	for i := 0; i <= 100; i++ {
		p := float64(i) / 100
		zt := e.ZTravel(p)
		if zt < prev {
			t.Fatalf("zTravel decreased at progress %.2f: %f < %f", p, zt, prev)
		}
		if !near(zt, p*520*10) {
			t.Fatalf("zTravel(%.2f)=%f want %f", p, zt, p*5200)
		}
		prev = zt
	}
	if e.ZTravel(1.5) != e.TotalDepth() || e.ZTravel(-1) != 0 {
		t.Fatalf("progress outside [0,1] must clamp")
	}
}

func TestProgressForEntryReachesCameraPlane(t *testing.T) {
	e := New(entries(8), DefaultConfig())
	for i := 0; i < e.Len(); i++ {
		zt := e.ZTravel(e.ProgressForEntry(i))
		if !near(zt, 520*float64(i+1)) {
			t.Fatalf("entry %d: zTravel=%f want %f", i, zt, 520*float64(i+1))
		}
		if d := EffectiveDepth(e.Nodes()[i], zt); !near(d, 0) {
			t.Fatalf("entry %d not on camera plane, depth %f", i, d)
		}
	}
}

func TestNearestIndexLiteralDepths(t *testing.T) {
	if got := NearestIndex([]float64{-50, 0, 30, 900}); got != 1 {
		t.Fatalf("nearest=%d want 1", got)
	}
	if got := NearestIndex([]float64{40, -40, 10, -10}); got != 2 {
		t.Fatalf("tie should go to lowest index, got %d", got)
	}
	if got := NearestIndex(nil); got != -1 {
		t.Fatalf("empty depths should give -1, got %d", got)
	}
}

func TestProjectClipsBehindNearPlane(t *testing.T) {
	e := New(entries(1), DefaultConfig())
	n := Node{X: 10, Y: -10, Z: 0}
	if _, ok := e.Project(n, 1290, Vec{}, Vec{}); ok {
		t.Fatalf("depth 1290 should be clipped")
	}
	if _, ok := e.Project(n, 1280, Vec{}, Vec{}); ok {
		t.Fatalf("depth 1280 sits exactly on the near plane and should be clipped")
	}
	p, ok := e.Project(n, 1250, Vec{}, Vec{})
	if !ok {
		t.Fatalf("depth 1250 should project")
	}
	if !near(p.Scale, 1400.0/150) {
		t.Fatalf("scale=%f want %f", p.Scale, 1400.0/150)
	}
}

func TestProjectMath(t *testing.T) {
	e := New(entries(1), DefaultConfig())
	n := Node{X: 100, Y: 50, Z: -700}
	p, ok := e.Project(n, 0, Vec{X: 0.5, Y: -0.5}, Vec{X: 400, Y: 300})
	if !ok {
		t.Fatalf("expected projection")
	}
	s := 1400.0 / 2100
	if !near(p.X, 400+(100+27.5)*s) || !near(p.Y, 300+(50-20)*s) {
		t.Fatalf("unexpected projection %+v", p)
	}
}

func TestProjectIdempotent(t *testing.T) {
	e := New(entries(6), DefaultConfig())
	n := e.Nodes()[3]
	a, okA := e.Project(n, 900, Vec{X: 0.2, Y: 0.1}, Vec{X: 320, Y: 240})
	b, okB := e.Project(n, 900, Vec{X: 0.2, Y: 0.1}, Vec{X: 320, Y: 240})
	if a != b || okA != okB {
		t.Fatalf("projection not idempotent: %+v vs %+v", a, b)
	}
	f1 := e.Frame(0.4, Vec{X: 0.1}, Vec{X: 200, Y: 100}, NoPin)
	f2 := e.Frame(0.4, Vec{X: 0.1}, Vec{X: 200, Y: 100}, NoPin)
	for i := range f1.Nodes {
		if f1.Nodes[i] != f2.Nodes[i] {
			t.Fatalf("frame node %d differs", i)
		}
	}
}

func TestOpacity(t *testing.T) {
	e := New(entries(1), DefaultConfig())
	cases := []struct {
		ze, want float64
	}{
		{-2000, 1},
		{0, 1},
		{450, 0.5},
		{900, 0},
		{1281, 0},
	}
	for _, c := range cases {
		if got := e.Opacity(c.ze); !near(got, c.want) {
			t.Fatalf("opacity(%v)=%v want %v", c.ze, got, c.want)
		}
	}
}

func TestLayoutReproducible(t *testing.T) {
	list := entries(12)
	a := New(list, DefaultConfig()).Nodes()
	b := New(list, DefaultConfig()).Nodes()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("node %d differs between instances: %+v vs %+v", i, a[i], b[i])
		}
		if math.Abs(a[i].X) > 560*1.15/2 || math.Abs(a[i].Y) > 320*1.15/2 {
			t.Fatalf("node %d outside spread box: %+v", i, a[i])
		}
		if a[i].Z != -520*float64(i+1) {
			t.Fatalf("node %d z=%f", i, a[i].Z)
		}
	}
}

func TestLayoutKnownSeed(t *testing.T) {
	nodes := Layout([]content.TimelineEntry{{Year: 1837, Title: "Analytical Engine"}}, DefaultConfig())
	if math.Abs(nodes[0].X-(-87.21661278)) > 1e-6 || math.Abs(nodes[0].Y-161.07977324) > 1e-6 {
		t.Fatalf("unexpected scatter for seed 1837/0: %+v", nodes[0])
	}
}

func TestFramePinOverridesActiveOnly(t *testing.T) {
	e := New(entries(6), DefaultConfig())
	free := e.Frame(0.5, Vec{}, Vec{}, NoPin)
	pinned := e.Frame(0.5, Vec{}, Vec{}, 5)
	if pinned.Active != 5 || !pinned.Pinned {
		t.Fatalf("pinned frame active=%d", pinned.Active)
	}
	if pinned.Nearest != free.Nearest {
		t.Fatalf("pin changed nearest index")
	}
	for i := range free.Nodes {
		a, b := free.Nodes[i], pinned.Nodes[i]
		if a.Projection != b.Projection || a.Opacity != b.Opacity || a.Projected != b.Projected {
			t.Fatalf("pin changed placement of node %d", i)
		}
	}
	if bad := e.Frame(0.5, Vec{}, Vec{}, 99); bad.Pinned || bad.Active != free.Nearest {
		t.Fatalf("out of range pin should be ignored")
	}
}

func TestFrameInteractivity(t *testing.T) {
	e := New(entries(4), DefaultConfig())
	f := e.Frame(1, Vec{}, Vec{}, NoPin)
	// zTravel 2080: node 0 at depth 1560 is clipped, node 3 at 0 is on the plane.
	if f.Nodes[0].Projected || f.Nodes[0].Interactive {
		t.Fatalf("clipped node must not be interactive: %+v", f.Nodes[0])
	}
	if !f.Nodes[3].Interactive || f.Active != 3 {
		t.Fatalf("node 3 should be active and interactive: %+v", f.Nodes[3])
	}
}

func TestConstellation(t *testing.T) {
	e := New(entries(6), DefaultConfig())
	f := e.Frame(0, Vec{}, Vec{X: 300, Y: 200}, NoPin)
	ov := Constellation(f)
	if len(ov.Stars) != 6 {
		t.Fatalf("expected all 6 stars at progress 0, got %d", len(ov.Stars))
	}
	// Sorted by depth: farthest first, so consecutive stars are adjacent entries.
	if len(ov.Segments) != 5 {
		t.Fatalf("expected 5 segments, got %d", len(ov.Segments))
	}
	for _, s := range ov.Segments {
		if s.Alpha < 0.16 || s.Alpha > 0.38 {
			t.Fatalf("segment alpha out of range: %v", s.Alpha)
		}
	}
	for _, st := range ov.Stars {
		if st.Active != (st.Index == f.Active) {
			t.Fatalf("star %d active flag wrong", st.Index)
		}
	}

	// Past the end the first entries fall behind the cutoff and drop out.
	late := Constellation(e.Frame(1, Vec{}, Vec{}, NoPin))
	for _, st := range late.Stars {
		if f := e.Frame(1, Vec{}, Vec{}, NoPin).Nodes[st.Index]; f.Depth >= 900 {
			t.Fatalf("star %d at depth %f should be skipped", st.Index, f.Depth)
		}
	}
}

func TestStarRadiusAndLineAlpha(t *testing.T) {
	if !near(StarRadius(1, true), 6.2) || !near(StarRadius(3, false), 3.2*1.5) || !near(StarRadius(0.1, false), 3.2*0.8) {
		t.Fatalf("unexpected star radius")
	}
	if !near(LineAlpha(0), 0.38) || !near(LineAlpha(-2000), 0.16) || !near(LineAlpha(800), 0.27) {
		t.Fatalf("unexpected line alpha")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	bad := DefaultConfig()
	bad.Perspective = 100
	if err := bad.Validate(); err == nil {
		t.Fatalf("perspective below near plane should fail")
	}
	if (Config{}).WithDefaults() != DefaultConfig() {
		t.Fatalf("WithDefaults should fill every zero field")
	}
}
