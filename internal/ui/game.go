package ui

import (
	"fmt"
	"image"
	"math"
	"regexp"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/engine"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/flight"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/scroll"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/config"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/prefs"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/profile"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/snapshot"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/soundtrack"
)

var deepLinkRe = regexp.MustCompile(`^#machines-(\d{3,4})$`)

// ParseDeepLink extracts the year from a "#machines-YEAR" fragment.
func ParseDeepLink(hash string) (int, bool) {
	m := deepLinkRe.FindStringSubmatch(hash)
	if m == nil {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	return y, err == nil
}

// Options carries everything the game needs from main. Player and Profile
// may be nil.
type Options struct {
	Content *content.Portfolio
	Config  config.Config
	Prefs   prefs.Store
	Player  *soundtrack.Player
	Profile <-chan profile.Result
	Logger  *game_log.Logger
}

// Game implements ebiten.Game for the portfolio deck.
type Game struct {
	content *content.Portfolio
	store   prefs.Store
	log     *game_log.Logger

	theme  *Theme
	sky    *Sky
	toast  *Toast
	nav    *Nav
	eng    *engine.Engine
	flight *FlightView
	panels map[string]*TextPanel
	player *PlayerView
	copy   *Button
	nebula *Nebula

	keys    keyEdges
	section int
	motion  bool

	profile <-chan profile.Result
	stats   *profile.Stats
	calls   chan func()

	winW, winH  int
	dpr         float64
	scale       float64 // device pixels per logical pixel on screen
	back, front *ebiten.Image
	frame       int64
}

func New(opts Options) *Game {
	logger := opts.Logger
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemory()
	}
	g := &Game{
		content: opts.Content,
		store:   store,
		log:     logger.Tag("GAME"),
		toast:   NewToast(),
		sky:     NewSky(),
		panels:  map[string]*TextPanel{},
		profile: opts.Profile,
		section: -1,
		calls:   make(chan func(), 16),
		scale:   1,
	}
	g.theme = NewTheme(prefs.String(store, prefs.KeyTheme, defaultTheme(opts.Config.Theme)))
	g.motion = prefs.Bool(store, prefs.KeyMotion, opts.Config.Motion)

	var view *FlightView
	g.eng = engine.New(opts.Content.Timeline(), opts.Config.Flight, scroll.Metrics{},
		engine.RendererFunc(func(f flight.Frame) { view.Render(f) }), logger)
	view = NewFlightView(g.eng, g.theme, g.toast, logger)
	view.OnPin = func(_, year int) { writeHash(fmt.Sprintf("#machines-%d", year)) }
	view.OnUnpin = func() { writeHash("") }
	g.flight = view
	g.eng.SetMotion(g.motion)

	for _, s := range content.Sections {
		if s.ID != content.SectionMachines {
			g.panels[s.ID] = NewTextPanel(s.ID, g.theme)
		}
	}
	g.nav = NewNav(g.theme, g.GoTo, g.ToggleTheme, func() { g.SetMotion(!g.motion) })
	g.nav.SetMotion(g.motion)
	if opts.Player != nil {
		g.player = NewPlayerView(opts.Player, g.theme)
		g.player.OnLoad = g.LoadTrack
	}
	g.copy = NewButton("Copy email", ButtonStyle{Theme: g.theme}, g.CopyEmail)
	g.copy.Magnetic = true
	g.nebula = NewNebula(opts.Content.Skills)
	g.nebula.OnCopy = g.CopySkill
	if g.motion {
		g.sky.Start()
		g.nebula.Start()
	}

	g.GoTo(0)
	g.applyDeepLink(readHash())
	g.initJS()
	g.log.Infof("ready: %d sections, %d timeline entries, theme=%s motion=%v",
		len(content.Sections), g.eng.Flight.Len(), g.theme.ID(), g.motion)
	return g
}

// defaultTheme is the theme used before the visitor picks one: the
// configured theme, or provence when the system asks for light mode.
func defaultTheme(configured string) string {
	if prefersLight() {
		return ThemeProvence
	}
	return configured
}

func (g *Game) Engine() *engine.Engine { return g.eng }
func (g *Game) Section() int           { return g.section }
func (g *Game) Motion() bool           { return g.motion }
func (g *Game) Theme() *Theme          { return g.theme }
func (g *Game) Toast() *Toast          { return g.toast }

func (g *Game) applyDeepLink(hash string) {
	year, ok := ParseDeepLink(hash)
	if !ok {
		return
	}
	i := g.content.IndexOfYear(year)
	if i < 0 {
		g.log.Warnf("deep link %q: no entry for %d", hash, year)
		return
	}
	g.GoTo(content.SectionIndex(content.SectionMachines))
	if err := g.eng.Select(i); err != nil {
		g.log.Warnf("deep link %q: %v", hash, err)
	}
}

// GoTo shows section i. Leaving the timeline unpins it and stops the flight.
func (g *Game) GoTo(i int) {
	if i < 0 || i >= len(content.Sections) || i == g.section {
		return
	}
	machines := content.SectionIndex(content.SectionMachines)
	if g.section == machines {
		g.flight.ClearFocus()
		g.eng.LeaveSection()
		g.eng.Stop()
		writeHash("")
	}
	g.section = i
	g.nav.SetCurrent(i)
	if i == machines {
		g.eng.Start()
	}
	g.log.Debugf("section %s", content.Sections[i].ID)
}

// SetMotion switches animation for the flight and the sky.
func (g *Game) SetMotion(on bool) {
	g.motion = on
	g.eng.SetMotion(on)
	if on {
		g.sky.Start()
		g.nebula.Start()
	} else {
		g.sky.Stop()
		g.nebula.Stop()
		g.theme.Settle()
	}
	g.nav.SetMotion(on)
	if err := prefs.SetBool(g.store, prefs.KeyMotion, on); err != nil {
		g.log.Warnf("save motion: %v", err)
	}
	state := "off"
	if on {
		state = "on"
	}
	g.toast.Show("Motion: " + state)
}

func (g *Game) ToggleTheme() {
	id := g.theme.Toggle()
	if !g.motion {
		g.theme.Settle()
	}
	if err := g.store.Set(prefs.KeyTheme, id); err != nil {
		g.log.Warnf("save theme: %v", err)
	}
	g.toast.Show(g.content.ThemeMeta(id).Label)
}

// ToggleBrush switches the sky between normal and heavy strokes.
func (g *Game) ToggleBrush() {
	g.sky.SetBoost(!g.sky.Boosted())
	if g.sky.Boosted() {
		g.toast.Show("Brush: boosted")
		return
	}
	g.toast.Show("Brush: normal")
}

// CopySkill copies a nebula tag, or shows it when no clipboard is reachable.
func (g *Game) CopySkill(label string) {
	if copyToClipboard(label) {
		g.toast.Show("Copied: " + label)
		return
	}
	g.toast.Show(label)
}

// CopyEmail puts the contact address on the clipboard, or shows it when no
// clipboard is reachable.
func (g *Game) CopyEmail() {
	email := g.content.Meta.Email
	if email == "" {
		return
	}
	if copyToClipboard(email) {
		g.toast.Show("Email copied")
		return
	}
	g.toast.Show(email)
}

// LoadTrack asks for an mp3 and swaps it into the vinyl player.
func (g *Game) LoadTrack() {
	if g.player == nil {
		return
	}
	go func() {
		title, data, err := openTrack()
		g.post(func() {
			switch {
			case err != nil:
				g.log.Warnf("load track: %v", err)
				g.toast.Show("Could not open track")
			case data != nil:
				if err := g.player.player.Load(data, title); err != nil {
					g.log.Warnf("load track: %v", err)
					g.toast.Show("Could not open track")
					return
				}
				g.toast.Show("Vinyl: " + title)
			}
		})
	}()
}

// ExportFrame renders the flight as it stands to SVG and saves it.
func (g *Game) ExportFrame() {
	scene := g.flight.Scene()
	opts := snapshot.Options{
		Width:    scene.Dx(),
		Height:   scene.Dy(),
		Theme:    g.theme.ID(),
		Progress: g.eng.Progress(),
	}
	if p := g.eng.Pinned(); p.IsPinned() {
		opts.Pin, opts.Pinned = p.Index(), true
	}
	svg, err := snapshot.Frame(g.content.Timeline(), g.eng.Flight.Config(), opts, g.log)
	if err != nil {
		g.log.Warnf("export: %v", err)
		return
	}
	name := "flight.svg"
	if e, ok := g.eng.Entry(g.eng.Active()); ok {
		name = fmt.Sprintf("flight-%d.svg", e.Year)
	}
	go func() {
		saved, err := saveExport(name, svg)
		g.post(func() {
			switch {
			case err != nil:
				g.log.Warnf("export: %v", err)
				g.toast.Show("Export failed")
			case saved != "":
				g.toast.Show("Saved " + saved)
			}
		})
	}()
}

// post queues fn for the frame goroutine. It drops fn when the queue is full.
func (g *Game) post(fn func()) {
	select {
	case g.calls <- fn:
	default:
		g.log.Warnf("call queue full, dropped")
	}
}

func (g *Game) runCalls() {
	for {
		select {
		case fn := <-g.calls:
			fn()
		default:
			return
		}
	}
}

func (g *Game) pollProfile() {
	if g.profile == nil {
		return
	}
	select {
	case r, ok := <-g.profile:
		g.profile = nil
		if !ok {
			return
		}
		if r.Err != nil {
			g.log.Warnf("profile: %v", r.Err)
			return
		}
		s := r.Stats
		g.stats = &s
		g.log.Infof("profile: %s", s.Summary())
	default:
	}
}

// Layout takes the logical window size and returns a screen sized in device
// pixels, so the flight surface lands on it without resampling.
func (g *Game) Layout(w, h int) (int, int) {
	dpr := deviceScale()
	if w == g.winW && h == g.winH && dpr == g.dpr {
		return g.screenSize()
	}
	g.winW, g.winH, g.dpr = w, h, dpr
	g.scale = SurfaceScale(dpr)
	g.back, g.front = nil, nil
	screen := image.Rect(0, 0, w, h)
	body := image.Rect(0, navH, w, h)

	g.nav.Layout(screen)
	g.flight.Layout(body, dpr)
	if pin := g.eng.Pinned(); pin.IsPinned() {
		g.eng.JumpToEntry(pin.Index())
	}
	for _, p := range g.panels {
		p.SetRect(body)
	}
	card := insetRect(body, 24)
	stage := image.Rect(card.Min.X+16, card.Min.Y+card.Dy()/2, card.Max.X-16, card.Max.Y-16)
	g.nebula.SetRect(stage)
	if p := g.panels["skills"]; p != nil {
		p.Reserve = card.Max.Y - stage.Min.Y
	}
	g.copy.SetRect(image.Rect(card.Max.X-136, card.Min.Y+10, card.Max.X-16, card.Min.Y+32))
	g.sky.Resize(w, h, dpr)
	g.log.Infof("layout %dx%d dpr=%.2f", w, h, dpr)
	return g.screenSize()
}

func (g *Game) screenSize() (int, int) {
	return int(math.Ceil(float64(g.winW) * g.scale)), int(math.Ceil(float64(g.winH) * g.scale))
}

func (g *Game) onMachines() bool {
	return g.section == content.SectionIndex(content.SectionMachines)
}

func (g *Game) Update() error {
	g.runCalls()
	g.pollProfile()

	// read every edge before acting on any
	themeKey := g.keys.pressed(ebiten.KeyT)
	vinylKey := g.keys.pressed(ebiten.KeyM)
	next := g.keys.pressed(ebiten.KeyArrowRight)
	prev := g.keys.pressed(ebiten.KeyArrowLeft)
	esc := g.keys.pressed(ebiten.KeyEscape)
	export := g.keys.pressed(ebiten.KeyS)
	brush := g.keys.pressed(ebiten.KeyV)
	focus := g.keys.pressed(ebiten.KeyTab)
	pin := g.keys.pressed(ebiten.KeyEnter)
	space := g.keys.pressed(ebiten.KeySpace)

	if themeKey {
		g.ToggleTheme()
	}
	if vinylKey && g.player != nil {
		g.player.player.Toggle()
	}
	switch {
	case next:
		g.GoTo(g.section + 1)
	case prev:
		g.GoTo(g.section - 1)
	}
	if esc && g.onMachines() {
		g.flight.Unpin()
	}
	if export && g.onMachines() {
		g.ExportFrame()
	}
	if brush {
		g.ToggleBrush()
	}
	if g.onMachines() {
		if focus && isKeyPressed(ebiten.KeyShift) {
			g.flight.MoveFocus(-1)
		} else if focus {
			g.flight.MoveFocus(1)
		}
		if pin || space {
			g.flight.PinFocused()
		}
		if g.keys.held(ebiten.KeyArrowDown) {
			g.eng.ScrollBy(keyStep / 6)
		}
		if g.keys.held(ebiten.KeyArrowUp) {
			g.eng.ScrollBy(-keyStep / 6)
		}
	}

	cx, cy := cursorPosition()
	mx, my := logicalPos(cx, cy, g.scale)
	pressed := isMouseButtonPressed(ebiten.MouseButtonLeft)
	_, wy := wheel()

	consumed := g.nav.Handle(mx, my, pressed)
	if g.player != nil {
		g.player.Layout(image.Rect(0, 0, g.winW, g.winH))
		if !consumed && g.player.Handle(mx, my, pressed) {
			consumed = true
		}
	}
	switch {
	case g.onMachines():
		if consumed {
			g.flight.Update(-1, -1, false, 0)
		} else {
			g.flight.Update(mx, my, pressed, wy)
		}
	case content.Sections[g.section].ID == "contact":
		if consumed {
			g.copy.Handle(-1, -1, false)
		} else {
			g.copy.Handle(mx, my, pressed)
		}
	case content.Sections[g.section].ID == "skills":
		if consumed {
			g.nebula.Handle(-1, -1, false)
		} else {
			g.nebula.Handle(mx, my, pressed)
		}
	}

	if g.motion {
		g.theme.Step()
	}
	g.sky.Update()
	g.nebula.Update()
	if g.onMachines() {
		g.eng.Tick()
	}
	g.frame++
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	back, front := screen, screen
	if g.scale != 1 {
		if g.back == nil {
			g.back, g.front = newImage(g.winW, g.winH), newImage(g.winW, g.winH)
		}
		back, front = g.back, g.front
		clearImage(back)
		clearImage(front)
	}

	g.sky.Draw(back, g.theme)
	g.present(screen, back)

	id := content.Sections[g.section].ID
	if g.onMachines() {
		g.flight.DrawScene(screen)
		g.flight.Draw(front)
	} else if p := g.panels[id]; p != nil {
		p.Draw(front, g.content, g.stats)
		switch {
		case id == "contact" && g.content.Meta.Email != "":
			g.copy.Draw(front)
		case id == "skills":
			g.nebula.Draw(front, g.theme)
		}
	}
	g.nav.Draw(front)
	if g.player != nil {
		g.player.Draw(front)
	}
	g.toast.Draw(front, image.Rect(0, 0, g.winW, g.winH), g.theme)
	g.present(screen, front)
}

// present scales a logical layer up onto the device-resolution screen.
func (g *Game) present(screen, layer *ebiten.Image) {
	if g.scale == 1 {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(g.scale, g.scale)
	drawImage(screen, layer, op)
}
