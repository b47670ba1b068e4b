// Package snapshot renders a single flight frame as a standalone SVG, and
// rasterises it to PNG through headless Chrome.
package snapshot

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"sort"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/engine"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/scroll"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

const (
	defaultFont = "Georgia, serif"
	cardW       = 200.0
	cardH       = 58.0
)

// palette is the flat colour set of one theme.
type palette struct {
	fill, star, line, active, idle, card, glow colorful.Color
}

func hex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var palettes = map[string]palette{
	"night": {
		fill: hex("#070913"), star: hex("#ffd45a"), line: hex("#ffd45a"),
		active: hex("#ffd45a"), idle: hex("#ffffff"), card: hex("#0e1228"), glow: hex("#ffd45a"),
	},
	"provence": {
		fill: hex("#f6f0d2"), star: hex("#fff6d2"), line: hex("#2b3c7a"),
		active: hex("#d79a2a"), idle: hex("#2b3c7a"), card: hex("#2b3c7a"), glow: hex("#ffdc8c"),
	},
}

// Options sizes and styles a snapshot.
type Options struct {
	Width, Height int
	Theme         string
	Progress      float64
	Pinned        bool
	Pin           int // entry index, used when Pinned
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 720
	}
	if _, ok := palettes[o.Theme]; !ok {
		o.Theme = "night"
	}
	return o
}

// SVG is an engine.Renderer that keeps the most recent frame as SVG markup.
type SVG struct {
	Width, Height int
	entries       []content.TimelineEntry
	pal           palette
	buf           bytes.Buffer
	renders       int
}

func NewSVG(entries []content.TimelineEntry, width, height int, theme string) *SVG {
	o := Options{Width: width, Height: height, Theme: theme}.withDefaults()
	return &SVG{Width: o.Width, Height: o.Height, entries: entries, pal: palettes[o.Theme]}
}

var _ engine.Renderer = (*SVG)(nil)

// Render replaces the stored document with frame f.
func (s *SVG) Render(f flight.Frame) {
	s.renders++
	s.buf.Reset()
	s.write(f)
}

// Bytes returns the last rendered document.
func (s *SVG) Bytes() []byte { return append([]byte(nil), s.buf.Bytes()...) }

// Renders counts Render calls.
func (s *SVG) Renders() int { return s.renders }

// Frame evaluates the flight for entries at opts and returns the SVG.
func Frame(entries []content.TimelineEntry, cfg flight.Config, opts Options, logger *game_log.Logger) ([]byte, error) {
	opts = opts.withDefaults()
	if len(entries) == 0 {
		return nil, content.ErrNoEntries
	}
	if opts.Progress < 0 || opts.Progress > 1 || math.IsNaN(opts.Progress) {
		return nil, fmt.Errorf("snapshot: progress %v outside [0,1]", opts.Progress)
	}
	out := NewSVG(entries, opts.Width, opts.Height, opts.Theme)
	vp := float64(opts.Height)
	m := scroll.Metrics{
		PathHeight: scroll.PathHeight(len(entries), vp),
		Viewport:   vp,
		SceneW:     float64(opts.Width),
		SceneH:     float64(opts.Height),
	}
	e := engine.New(entries, cfg, m, out, logger)
	e.ScrollTo(m.Start + opts.Progress*m.Span())
	if opts.Pinned {
		if err := e.Pin(opts.Pin); err != nil {
			return nil, fmt.Errorf("snapshot: %w", err)
		}
	}
	e.Start()
	e.Stop()
	return out.Bytes(), nil
}

func rgb(c colorful.Color) string { return c.Clamped().Hex() }

func (s *SVG) write(f flight.Frame) {
	w, h := float64(s.Width), float64(s.Height)
	b := &s.buf
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="%s">`+"\n",
		s.Width, s.Height, s.Width, s.Height, defaultFont)
	fmt.Fprintf(b, `<defs><radialGradient id="glow"><stop offset="0" stop-color="%s" stop-opacity="0.2"/><stop offset="1" stop-color="%s" stop-opacity="0"/></radialGradient></defs>`+"\n",
		rgb(s.pal.glow), rgb(s.pal.glow))
	fmt.Fprintf(b, `<rect width="100%%" height="100%%" fill="%s"/>`+"\n", rgb(s.pal.fill))
	fmt.Fprintf(b, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="url(#glow)"/>`+"\n", 0.6*w, 0.35*h, 0.9*w)

	ov := flight.Constellation(f)
	b.WriteString(`<g class="constellation">` + "\n")
	for _, seg := range ov.Segments {
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="2" stroke-opacity="%.3f"/>`+"\n",
			seg.X1, seg.Y1, seg.X2, seg.Y2, rgb(s.pal.line), seg.Alpha)
	}
	for _, st := range ov.Stars {
		c, a := s.pal.idle, 0.5
		if st.Active {
			c, a = s.pal.active, 0.95
		}
		fmt.Fprintf(b, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s" fill-opacity="%.2f"/>`+"\n", st.X, st.Y, st.Radius, rgb(c), a)
	}
	b.WriteString("</g>\n")

	s.writeNodes(f)
	s.writeHUD(f)
	b.WriteString("</svg>\n")
}

func (s *SVG) writeNodes(f flight.Frame) {
	b := &s.buf
	nodes := make([]flight.NodeState, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.Projected && n.Opacity > 0 {
			nodes = append(nodes, n)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Depth < nodes[j].Depth })

	fmt.Fprintf(b, `<g class="nodes" transform="rotate(%.3f %.1f %.1f)">`+"\n", f.Tilt, f.Center.X, f.Center.Y)
	for _, n := range nodes {
		k := math.Max(0.45, math.Min(2.2, n.Projection.Scale))
		cw, ch := cardW*k, cardH*k
		x, y := n.Projection.X-cw/2, n.Projection.Y-ch/2
		border := s.pal.idle
		if n.Active {
			border = s.pal.active
		}
		e := s.entries[n.Index]
		fmt.Fprintf(b, `<g class="node" data-index="%d" opacity="%.3f">`, n.Index, n.Opacity)
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f" fill="%s" fill-opacity="0.72" stroke="%s"/>`,
			x, y, cw, ch, 8*k, rgb(s.pal.card), rgb(border))
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%d</text>`, x+8*k, y+18*k, 13*k, rgb(s.pal.star), e.Year)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-size="%.1f" fill="%s">%s</text>`, x+8*k, y+38*k, 14*k, rgb(s.pal.idle), esc(e.Title))
		b.WriteString("</g>\n")
	}
	b.WriteString("</g>\n")
}

func (s *SVG) writeHUD(f flight.Frame) {
	if f.Active < 0 || f.Active >= len(s.entries) {
		return
	}
	e := s.entries[f.Active]
	sub := e.Subtitle
	if f.Pinned {
		sub += "  •  pinned"
	}
	b := &s.buf
	y := float64(s.Height) - 96
	fmt.Fprintf(b, `<g class="hud"><rect x="16" y="%.0f" width="380" height="80" rx="10" fill="%s" fill-opacity="0.88"/>`, y, rgb(s.pal.card))
	fmt.Fprintf(b, `<text x="28" y="%.0f" font-size="18" fill="%s">%d · %s</text>`, y+28, rgb(s.pal.star), e.Year, esc(e.Title))
	fmt.Fprintf(b, `<text x="28" y="%.0f" font-size="13" fill="%s">%s</text>`, y+50, rgb(s.pal.idle), esc(sub))
	fmt.Fprintf(b, `<text x="28" y="%.0f" font-size="11" fill="%s">%s</text></g>`+"\n", y+68, rgb(s.pal.idle), esc(truncate(e.Description, 64)))
}

func esc(s string) string { return html.EscapeString(s) }

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
