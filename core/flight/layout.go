package flight

import "github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"

// Node is a timeline entry placed in the scene. Positions are fixed for the
// session; only the camera moves.
type Node struct {
	Index int
	Year  int
	X, Y  float64
	Z     float64 // -Spacing*(Index+1)
}

// mulberry32 is a tiny seeded generator. The same seed always yields the same
// sequence, which keeps the scatter stable across reloads.
type mulberry32 struct{ t uint32 }

func newMulberry32(seed uint32) *mulberry32 { return &mulberry32{t: seed} }

// next returns a value in [0,1).
func (m *mulberry32) next() float64 {
	m.t += 0x6D2B79F5
	r := (m.t ^ (m.t >> 15)) * (1 | m.t)
	r ^= r + (r^(r>>7))*(61|r)
	return float64(r^(r>>14)) / 4294967296
}

// layoutSeed mixes year and index so entries sharing a year still scatter
// differently.
func layoutSeed(year, index int) uint32 {
	return uint32(year*97 + index*13)
}

// Layout places every entry. x and y are seeded jitter inside the spread box
// (inflated by 15%); z recedes by Spacing per entry.
func Layout(entries []content.TimelineEntry, cfg Config) []Node {
	nodes := make([]Node, len(entries))
	for i, it := range entries {
		rnd := newMulberry32(layoutSeed(it.Year, i))
		nodes[i] = Node{
			Index: i,
			Year:  it.Year,
			X:     (rnd.next() - 0.5) * cfg.SpreadW * 1.15,
			Y:     (rnd.next() - 0.5) * cfg.SpreadH * 1.15,
			Z:     -cfg.Spacing * float64(i+1),
		}
	}
	return nodes
}
