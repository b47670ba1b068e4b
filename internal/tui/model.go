// Package tui is a terminal preview of the flight timeline. It drives the
// same engine as the graphical deck and renders frames as character art.
package tui

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/engine"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/scroll"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

const (
	// A terminal cell stands for cellW×cellH scene pixels.
	cellW = 8.0
	cellH = 16.0

	hudRows   = 4
	frameRate = 30
	lineStep  = 48.0 // scroll pixels per key press
)

type frameMsg time.Time

type theme struct {
	name               string
	bg, line, star, fg colorful.Color
}

func mustHex(s string) colorful.Color {
	c, _ := colorful.Hex(s)
	return c
}

var themes = []theme{
	{name: "night", bg: mustHex("#070913"), line: mustHex("#ffd45a"), star: mustHex("#ffd45a"), fg: mustHex("#e8e6f0")},
	{name: "provence", bg: mustHex("#f6f0d2"), line: mustHex("#2b3c7a"), star: mustHex("#d79a2a"), fg: mustHex("#2b3c7a")},
}

// Model is the bubbletea model. It is also the engine's renderer.
type Model struct {
	eng     *engine.Engine
	entries []content.TimelineEntry
	frame   flight.Frame
	keys    keyMap
	help    help.Model
	theme   int
	motion  bool
	ticking bool // a frameMsg is in flight
	width   int
	height  int
	status  string
	log     *game_log.Logger
}

// New builds the preview for entries. motion selects the animated scheduler.
func New(entries []content.TimelineEntry, cfg flight.Config, motion bool, logger *game_log.Logger) *Model {
	m := &Model{
		entries: entries,
		keys:    defaultKeys(),
		help:    help.New(),
		motion:  motion,
		log:     logger.Tag("TUI"),
	}
	m.eng = engine.New(entries, cfg, scroll.Metrics{}, m, logger)
	m.eng.SetMotion(motion)
	m.frame = m.eng.Frame()
	return m
}

// Render implements engine.Renderer.
func (m *Model) Render(f flight.Frame) { m.frame = f }

func (m *Model) Engine() *engine.Engine { return m.eng }

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) Init() tea.Cmd {
	m.eng.Start()
	return m.startTicking()
}

// startTicking starts the frame loop unless one is already pending.
func (m *Model) startTicking() tea.Cmd {
	if !m.motion || m.ticking {
		return nil
	}
	m.ticking = true
	return tick()
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	rows := h - hudRows - 1
	if rows < 1 {
		rows = 1
	}
	sw, sh := float64(w)*cellW, float64(rows)*cellH
	m.eng.Resize(scroll.Metrics{
		PathHeight: scroll.PathHeight(len(m.entries), sh),
		Viewport:   sh,
		SceneW:     sw,
		SceneH:     sh,
	})
	m.help.Width = w
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case frameMsg:
		if !m.motion {
			m.ticking = false
			return m, nil
		}
		m.eng.Tick()
		return m, tick()

	case tea.MouseMsg:
		ev := tea.MouseEvent(msg)
		switch ev.Button {
		case tea.MouseButtonWheelDown:
			m.eng.ScrollBy(lineStep)
		case tea.MouseButtonWheelUp:
			m.eng.ScrollBy(-lineStep)
		default:
			m.eng.PointerMove(float64(ev.X)*cellW, float64(ev.Y)*cellH)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.eng.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Down):
			m.eng.ScrollBy(lineStep)
		case key.Matches(msg, m.keys.Up):
			m.eng.ScrollBy(-lineStep)
		case key.Matches(msg, m.keys.Next):
			m.eng.JumpToEntry(min(m.frame.Active+1, len(m.entries)-1))
		case key.Matches(msg, m.keys.Prev):
			m.eng.JumpToEntry(max(m.frame.Active-1, 0))
		case key.Matches(msg, m.keys.Pin):
			if err := m.eng.Pin(m.frame.Active); err == nil {
				m.status = fmt.Sprintf("Pinned: %d", m.entries[m.frame.Active].Year)
			}
		case key.Matches(msg, m.keys.Unpin):
			if m.eng.Unpin() {
				m.status = "Unpinned"
			}
		case key.Matches(msg, m.keys.Motion):
			m.motion = !m.motion
			m.eng.SetMotion(m.motion)
			m.status = "Motion: " + onOff(m.motion)
			return m, m.startTicking()
		case key.Matches(msg, m.keys.Theme):
			m.theme = (m.theme + 1) % len(themes)
			m.status = "Theme: " + themes[m.theme].name
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		}
	}
	return m, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// cell is one character of the canvas.
type cell struct {
	r rune
	c colorful.Color
}

type canvas struct {
	w, h  int
	cells []cell
	bg    colorful.Color
}

func newCanvas(w, h int, bg colorful.Color) *canvas {
	cv := &canvas{w: w, h: h, bg: bg, cells: make([]cell, w*h)}
	for i := range cv.cells {
		cv.cells[i] = cell{r: ' ', c: bg}
	}
	return cv
}

func (cv *canvas) set(x, y int, r rune, c colorful.Color) {
	if x < 0 || y < 0 || x >= cv.w || y >= cv.h {
		return
	}
	cv.cells[y*cv.w+x] = cell{r: r, c: c}
}

func (cv *canvas) text(x, y int, s string, c colorful.Color) {
	for i, r := range []rune(s) {
		cv.set(x+i, y, r, c)
	}
}

// line draws a scene-space segment with a DDA walk.
func (cv *canvas) line(x1, y1, x2, y2 float64, c colorful.Color) {
	ax, ay := x1/cellW, y1/cellH
	bx, by := x2/cellW, y2/cellH
	n := int(math.Ceil(math.Max(math.Abs(bx-ax), math.Abs(by-ay))))
	if n == 0 {
		n = 1
	}
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		cv.set(int(ax+(bx-ax)*t), int(ay+(by-ay)*t), '·', c)
	}
}

func (cv *canvas) String() string {
	var b strings.Builder
	for y := 0; y < cv.h; y++ {
		row := cv.cells[y*cv.w : (y+1)*cv.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && row[x].c == row[start].c {
				continue
			}
			var run strings.Builder
			for _, c := range row[start:x] {
				run.WriteRune(c.r)
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(lipgloss.Color(row[start].c.Clamped().Hex())).
				Render(run.String()))
			start = x
		}
		if y < cv.h-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Scene draws the current frame as plain canvas rows.
func (m *Model) scene(w, h int) *canvas {
	th := themes[m.theme]
	cv := newCanvas(w, h, th.bg)

	ov := flight.Constellation(m.frame)
	for _, s := range ov.Segments {
		cv.line(s.X1, s.Y1, s.X2, s.Y2, th.bg.BlendRgb(th.line, math.Min(1, s.Alpha*2)))
	}
	for _, s := range ov.Stars {
		r := '+'
		if s.Active {
			r = '*'
		}
		cv.set(int(s.X/cellW), int(s.Y/cellH), r, th.star)
	}

	nodes := make([]flight.NodeState, 0, len(m.frame.Nodes))
	for _, n := range m.frame.Nodes {
		if n.Projected && n.Opacity >= flight.InteractiveOpacity {
			nodes = append(nodes, n)
		}
	}
	sort.SliceStable(nodes, func(i, j int) bool { return nodes[i].Depth < nodes[j].Depth })
	for _, n := range nodes {
		label := strconv.Itoa(m.entries[n.Index].Year)
		if n.Active {
			label = "[" + label + "]"
		}
		x := int(n.Projection.X/cellW) - len(label)/2
		y := int(n.Projection.Y/cellH) + 1
		cv.text(x, y, label, th.bg.BlendRgb(th.fg, n.Opacity))
	}
	return cv
}

func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "loading…"
	}
	th := themes[m.theme]
	rows := max(1, m.height-hudRows-1)
	out := []string{m.scene(m.width, rows).String()}

	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(th.star.Hex())).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(th.fg.Hex()))
	if m.frame.Active >= 0 && m.frame.Active < len(m.entries) {
		e := m.entries[m.frame.Active]
		sub := e.Subtitle
		if m.frame.Pinned {
			sub += "  •  pinned"
		}
		out = append(out,
			accent.Render(fmt.Sprintf("%d  %s", e.Year, e.Title)),
			muted.Render(sub),
		)
	}
	out = append(out, m.progressBar(m.width), muted.Render(m.status))
	out = append(out, m.help.View(m.keys))
	return strings.Join(out, "\n")
}

func (m *Model) progressBar(w int) string {
	w = max(10, w-8)
	filled := int(math.Round(m.frame.Progress * float64(w)))
	return fmt.Sprintf("%s%s %3d%%", strings.Repeat("█", filled), strings.Repeat("░", w-filled), int(m.frame.Progress*100+0.5))
}

// Run starts the program on the terminal.
func Run(m *Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
