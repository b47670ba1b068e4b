package flight

import (
	"math"
	"sort"
)

const (
	constellationCutoff = 900.0  // points at or beyond this depth are not joined
	lineFadeDepth       = 1600.0 // depth over which line alpha decays
	maxIndexGap         = 2
)

// Star is one marker of the overlay.
type Star struct {
	Index  int
	X, Y   float64
	Radius float64
	Active bool
}

// Segment joins two stars.
type Segment struct {
	From, To int // node indices
	X1, Y1   float64
	X2, Y2   float64
	Alpha    float64
}

// Overlay is the line/star layer drawn over the nodes.
type Overlay struct {
	Stars    []Star
	Segments []Segment
}

// StarRadius sizes a marker by projection scale.
func StarRadius(scale float64, active bool) float64 {
	base := 3.2
	if active {
		base = 6.2
	}
	return base * clamp(scale, 0.8, 1.5)
}

// LineAlpha fades a segment by the depth of its nearer end.
func LineAlpha(ze float64) float64 {
	return 0.16 + 0.22*clamp(1-math.Abs(ze)/lineFadeDepth, 0, 1)
}

// Constellation builds the overlay for f. Unprojected nodes are skipped.
// Projected points are sorted by depth and consecutive ones are joined when
// their entries are at most two apart in the timeline.
func Constellation(f Frame) Overlay {
	pts := make([]NodeState, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if !n.Projected || n.Depth >= constellationCutoff {
			continue
		}
		pts = append(pts, n)
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].Depth < pts[j].Depth })

	var ov Overlay
	for i, p := range pts {
		ov.Stars = append(ov.Stars, Star{
			Index:  p.Index,
			X:      p.Projection.X,
			Y:      p.Projection.Y,
			Radius: StarRadius(p.Projection.Scale, p.Active),
			Active: p.Active,
		})
		if i == 0 {
			continue
		}
		a := pts[i-1]
		if abs(a.Index-p.Index) > maxIndexGap {
			continue
		}
		ov.Segments = append(ov.Segments, Segment{
			From:  a.Index,
			To:    p.Index,
			X1:    a.Projection.X,
			Y1:    a.Projection.Y,
			X2:    p.Projection.X,
			Y2:    p.Projection.Y,
			Alpha: LineAlpha(a.Depth),
		})
	}
	return ov
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
