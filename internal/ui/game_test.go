package ui

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/prefs"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/profile"
)

func TestParseDeepLink(t *testing.T) {
	cases := []struct {
		in   string
		year int
		ok   bool
	}{
		{"#machines-1969", 1969, true},
		{"#machines-476", 476, true},
		{"#machines-19", 0, false},
		{"#machines-19690", 0, false},
		{"#about", 0, false},
		{"machines-1969", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		y, ok := ParseDeepLink(c.in)
		if ok != c.ok || y != c.year {
			t.Fatalf("ParseDeepLink(%q)=%d,%v want %d,%v", c.in, y, ok, c.year, c.ok)
		}
	}
}

func TestStartsOnHome(t *testing.T) {
	g, _, _ := newTestGame(t, false, "")
	if g.Section() != 0 {
		t.Fatalf("section=%d want 0", g.Section())
	}
	if g.Engine().Running() {
		t.Fatalf("flight should not run outside its section")
	}
}

func TestDeepLinkPinsEntry(t *testing.T) {
	g, _, _ := newTestGame(t, false, "#machines-1969")
	if g.Section() != machinesIndex() {
		t.Fatalf("deep link should open the timeline, section=%d", g.Section())
	}
	want := g.content.IndexOfYear(1969)
	if !g.Engine().Pinned().IsPinned() || g.Engine().Active() != want {
		t.Fatalf("active=%d pinned=%v want %d pinned", g.Engine().Active(), g.Engine().Pinned().IsPinned(), want)
	}
}

func TestDeepLinkUnknownYearIgnored(t *testing.T) {
	g, _, _ := newTestGame(t, false, "#machines-1000")
	if g.Section() != 0 || g.Engine().Pinned().IsPinned() {
		t.Fatalf("unknown year should leave the deck untouched")
	}
}

func TestLeavingTimelineUnpinsAndStops(t *testing.T) {
	g, _, page := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	if !g.Engine().Running() {
		t.Fatalf("entering the timeline should start the flight")
	}
	if err := g.Engine().Pin(3); err != nil {
		t.Fatal(err)
	}
	g.GoTo(0)
	if g.Engine().Pinned().IsPinned() || g.Engine().Running() {
		t.Fatalf("leaving should unpin and stop")
	}
	if n := len(page.writes); n == 0 || page.writes[n-1] != "" {
		t.Fatalf("leaving should clear the hash, writes=%v", page.writes)
	}
}

func TestArrowKeysChangeSection(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	tap(g, in, ebiten.KeyArrowRight)
	tap(g, in, ebiten.KeyArrowRight)
	if g.Section() != 2 {
		t.Fatalf("section=%d want 2", g.Section())
	}
	tap(g, in, ebiten.KeyArrowLeft)
	if g.Section() != 1 {
		t.Fatalf("section=%d want 1", g.Section())
	}
	for i := 0; i < 3; i++ {
		tap(g, in, ebiten.KeyArrowLeft)
	}
	if g.Section() != 0 {
		t.Fatalf("left should stop at the first section, got %d", g.Section())
	}
}

func TestHeldKeyFiresOnce(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	in.keys[ebiten.KeyArrowRight] = true
	for i := 0; i < 5; i++ {
		g.Update()
	}
	if g.Section() != 1 {
		t.Fatalf("held key should move one section, got %d", g.Section())
	}
}

func TestChordedKeysAllFire(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	in.keys[ebiten.KeyT] = true
	in.keys[ebiten.KeyArrowRight] = true
	g.Update()
	if g.Theme().ID() != ThemeProvence || g.Section() != 1 {
		t.Fatalf("both keys should act on the same frame, theme=%s section=%d", g.Theme().ID(), g.Section())
	}
	in.keys[ebiten.KeyT] = false
	g.Update()
	if g.Section() != 1 {
		t.Fatalf("a still-held arrow should not fire again, section=%d", g.Section())
	}
	in.keys[ebiten.KeyArrowRight] = false
	g.Update()
	if g.Section() != 1 || g.Theme().ID() != ThemeProvence {
		t.Fatalf("releasing should change nothing, theme=%s section=%d", g.Theme().ID(), g.Section())
	}
}

func TestThemeKeyTogglesAndPersists(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	tap(g, in, ebiten.KeyT)
	if g.Theme().ID() != ThemeProvence {
		t.Fatalf("theme=%s want provence", g.Theme().ID())
	}
	if g.Theme().Mix != 1 {
		t.Fatalf("without motion the theme should land at once, mix=%v", g.Theme().Mix)
	}
	if got := prefs.String(g.store, prefs.KeyTheme, ""); got != ThemeProvence {
		t.Fatalf("stored theme=%q", got)
	}
	if msg := g.Toast().Message(); msg != g.content.ThemeMeta(ThemeProvence).Label {
		t.Fatalf("toast=%q", msg)
	}
}

func TestThemeBlendsWithMotion(t *testing.T) {
	g, _, _ := newTestGame(t, true, "")
	g.ToggleTheme()
	g.Update()
	if g.Theme().Mix <= 0 || g.Theme().Mix >= 1 {
		t.Fatalf("animated theme should blend, mix=%v", g.Theme().Mix)
	}
}

func TestMotionToggle(t *testing.T) {
	g, _, _ := newTestGame(t, true, "")
	g.GoTo(machinesIndex())
	if g.Engine().State().String() != "ANIMATING" {
		t.Fatalf("state=%s", g.Engine().State())
	}
	g.SetMotion(false)
	if g.Engine().State().String() != "STATIC" || g.sky.Running() {
		t.Fatalf("motion off should make everything static")
	}
	if g.Toast().Message() != "Motion: off" {
		t.Fatalf("toast=%q", g.Toast().Message())
	}
	if prefs.Bool(g.store, prefs.KeyMotion, true) {
		t.Fatalf("motion pref not saved")
	}
}

func TestStaticTimelineOnlyRendersOnInput(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	n := g.Engine().Frames()
	for i := 0; i < 10; i++ {
		g.Update()
	}
	if g.Engine().Frames() != n {
		t.Fatalf("idle static timeline rendered %d frames", g.Engine().Frames()-n)
	}
	in.x, in.y, in.wy = 640, 300, -1
	g.Update()
	if g.Engine().Frames() != n+1 {
		t.Fatalf("wheel should render one frame, got %d", g.Engine().Frames()-n)
	}
	if g.Engine().Progress() <= 0 {
		t.Fatalf("wheel down should advance progress")
	}
}

func TestClickNodePins(t *testing.T) {
	g, in, page := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	f := g.flight.Frame()
	node := f.Nodes[f.Active]
	r := g.flight.cardRect(node)
	cx, cy := r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2
	if got := g.flight.HitTest(cx, cy); got != f.Active {
		t.Fatalf("hit test=%d want %d", got, f.Active)
	}
	click(g, in, cx, cy)
	if !g.Engine().Pinned().IsPinned() || g.Engine().Active() != f.Active {
		t.Fatalf("click should pin %d", f.Active)
	}
	year := g.content.Timeline()[f.Active].Year
	if msg := g.Toast().Message(); !strings.HasPrefix(msg, "Pinned: ") || !strings.Contains(msg, strconv.Itoa(year)) {
		t.Fatalf("toast=%q", msg)
	}
	if page.hash != "#machines-"+strconv.Itoa(year) {
		t.Fatalf("hash=%q", page.hash)
	}

	tap(g, in, ebiten.KeyEscape)
	if g.Engine().Pinned().IsPinned() || page.hash != "" || g.Toast().Message() != "Unpinned" {
		t.Fatalf("escape should unpin, hash=%q toast=%q", page.hash, g.Toast().Message())
	}
}

func TestMilestoneChipSelects(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	chip := g.flight.chips[7].Rect()
	click(g, in, chip.Min.X+2, chip.Min.Y+2)
	if g.Engine().Active() != 7 || !g.Engine().Pinned().IsPinned() {
		t.Fatalf("chip should select 7, active=%d", g.Engine().Active())
	}
	if !g.flight.chips[7].Active {
		t.Fatalf("selected chip should be highlighted")
	}
	if g.flight.unpin.Hidden {
		t.Fatalf("unpin button should show while pinned")
	}
}

func TestNavClickGoesToSection(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	r := g.nav.sections[machinesIndex()].Rect()
	click(g, in, r.Min.X+3, r.Min.Y+3)
	if g.Section() != machinesIndex() || !g.Engine().Running() {
		t.Fatalf("nav click should open the timeline, section=%d", g.Section())
	}
}

func TestCopyEmail(t *testing.T) {
	g, _, page := newTestGame(t, false, "")
	g.CopyEmail()
	if g.Toast().Message() != g.content.Meta.Email {
		t.Fatalf("without a clipboard the toast should show the address, got %q", g.Toast().Message())
	}
	page.clipboard = true
	g.CopyEmail()
	if g.Toast().Message() != "Email copied" || page.copied != g.content.Meta.Email {
		t.Fatalf("toast=%q copied=%q", g.Toast().Message(), page.copied)
	}
}

func TestProfileDeliveredOnFrame(t *testing.T) {
	stubInput(t)
	stubPage(t, "")
	p, _ := content.Default()
	ch := make(chan profile.Result, 1)
	g := New(Options{Content: p, Prefs: prefs.NewMemory(), Profile: ch, Config: testConfig(), Logger: game_log.Discard()})
	g.Layout(800, 600)
	g.Update()
	if g.stats != nil {
		t.Fatalf("no stats before delivery")
	}
	ch <- profile.Result{Stats: profile.Stats{PublicRepos: 8, Followers: 3, Following: 1}}
	g.Update()
	if g.stats == nil || g.stats.PublicRepos != 8 {
		t.Fatalf("stats not picked up: %+v", g.stats)
	}
	if g.profile != nil {
		t.Fatalf("channel should be dropped after one result")
	}
}

func TestDrawTimeline(t *testing.T) {
	g, _, _ := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	d := captureDraws(t)
	g.Draw(nil)

	ov := g.flight.overlay
	if d.lines != len(ov.Segments) {
		t.Fatalf("lines=%d want %d segments", d.lines, len(ov.Segments))
	}
	// sky stars plus constellation stars
	if d.circles < len(ov.Stars) {
		t.Fatalf("circles=%d want at least %d", d.circles, len(ov.Stars))
	}
	if d.glows != 1 {
		t.Fatalf("glows=%d want 1", d.glows)
	}
	entry := g.content.Timeline()[g.Engine().Active()]
	found := false
	for _, s := range d.texts {
		if strings.Contains(s, entry.Title) {
			found = true
		}
	}
	if !found {
		t.Fatalf("HUD should name %q, texts=%v", entry.Title, d.texts)
	}
}

func TestDrawPanel(t *testing.T) {
	g, _, _ := newTestGame(t, false, "")
	d := captureDraws(t)
	g.Draw(nil)
	if !d.hasText(strings.ToUpper(g.content.Hero.Title)) {
		t.Fatalf("home panel title missing, texts=%v", d.texts)
	}
	if d.lines != 0 {
		t.Fatalf("text panels draw no constellation")
	}
}

func TestPlayerViewControls(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	g.player = newTestPlayerView(t, g.theme)
	g.player.Layout(image.Rect(0, 0, g.winW, g.winH))
	mute := g.player.mute.Rect()
	click(g, in, mute.Min.X+2, mute.Min.Y+2)
	if !g.player.player.Muted() {
		t.Fatalf("mute button should mute")
	}
	loads := 0
	g.player.OnLoad = func() { loads++ }
	load := g.player.load.Rect()
	click(g, in, load.Min.X+2, load.Min.Y+2)
	if loads != 1 {
		t.Fatalf("load button should ask for a track once, got %d", loads)
	}
	col := g.player.collapse.Rect()
	click(g, in, col.Min.X+2, col.Min.Y+2)
	if !g.player.player.Collapsed() {
		t.Fatalf("collapse button should collapse")
	}
	if g.player.Rect().Dx() != playerCollapsedW {
		t.Fatalf("collapsed widget width=%d", g.player.Rect().Dx())
	}
}

// runPosted waits for one queued call from a background helper and runs it.
func runPosted(t *testing.T, g *Game) {
	t.Helper()
	select {
	case fn := <-g.calls:
		fn()
	case <-time.After(2 * time.Second):
		t.Fatalf("nothing was posted to the frame queue")
	}
}

func TestExportFrameSavesSVG(t *testing.T) {
	g, _, _ := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	if err := g.eng.Select(3); err != nil {
		t.Fatalf("select: %v", err)
	}
	var name string
	var data []byte
	old := saveExport
	saveExport = func(n string, b []byte) (string, error) {
		name, data = n, b
		return n, nil
	}
	t.Cleanup(func() { saveExport = old })

	g.ExportFrame()
	runPosted(t, g)
	year := g.content.Timeline()[3].Year
	if name != "flight-"+strconv.Itoa(year)+".svg" {
		t.Fatalf("export name=%q", name)
	}
	if !strings.HasPrefix(string(data), "<svg") || !strings.Contains(string(data), strconv.Itoa(year)) {
		t.Fatalf("export should be an svg of the pinned frame")
	}
	scene := g.flight.Scene()
	size := fmt.Sprintf(`width="%d" height="%d"`, scene.Dx(), scene.Dy())
	if !strings.Contains(string(data), size) {
		t.Fatalf("export should match the flight scene %s", size)
	}
	if g.Toast().Message() != "Saved "+name {
		t.Fatalf("toast=%q", g.Toast().Message())
	}
}

func TestExportFrameReportsFailure(t *testing.T) {
	g, _, _ := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	old := saveExport
	saveExport = func(string, []byte) (string, error) { return "", errors.New("read-only") }
	t.Cleanup(func() { saveExport = old })
	g.ExportFrame()
	runPosted(t, g)
	if g.Toast().Message() != "Export failed" {
		t.Fatalf("toast=%q", g.Toast().Message())
	}
}

func TestLoadTrackSwapsVinyl(t *testing.T) {
	g, _, _ := newTestGame(t, false, "")
	g.player = newTestPlayerView(t, g.theme)
	old := openTrack
	t.Cleanup(func() { openTrack = old })

	openTrack = func() (string, []byte, error) { return "Gymnopedie", []byte("ID3"), nil }
	g.LoadTrack()
	runPosted(t, g)
	if g.player.player.Meta.Title != "Gymnopedie" || g.Toast().Message() != "Vinyl: Gymnopedie" {
		t.Fatalf("title=%q toast=%q", g.player.player.Meta.Title, g.Toast().Message())
	}

	openTrack = func() (string, []byte, error) { return "", nil, nil }
	g.LoadTrack()
	runPosted(t, g)
	if g.Toast().Message() != "Vinyl: Gymnopedie" {
		t.Fatalf("a cancelled dialog should not toast, got %q", g.Toast().Message())
	}

	openTrack = func() (string, []byte, error) { return "", nil, errors.New("no zenity") }
	g.LoadTrack()
	runPosted(t, g)
	if g.Toast().Message() != "Could not open track" {
		t.Fatalf("toast=%q", g.Toast().Message())
	}
}

func TestResizeKeepsPinnedEntryOnCameraPlane(t *testing.T) {
	g, _, _ := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	if err := g.eng.Select(5); err != nil {
		t.Fatalf("select: %v", err)
	}
	g.Layout(1000, 700)
	if g.flight.Scene().Dy() != 700-navH-chipsH {
		t.Fatalf("scene=%v", g.flight.Scene())
	}
	spacing := g.eng.Flight.Config().Spacing
	if z := g.eng.Flight.ZTravel(g.eng.Progress()); math.Abs(z-spacing*6) > 1e-6 {
		t.Fatalf("travel=%v want %v", z, spacing*6)
	}
	if g.eng.Active() != 5 || !g.eng.Pinned().IsPinned() {
		t.Fatalf("active=%d after resize", g.eng.Active())
	}
}

func TestHiDPIScreenIsDevicePixels(t *testing.T) {
	g, in, _ := newTestGame(t, false, "")
	in.dpr = 2
	if w, h := g.Layout(1280, 800); w != 2560 || h != 1600 {
		t.Fatalf("screen=%dx%d want 2560x1600", w, h)
	}
	if w, h := g.Layout(1280, 800); w != 2560 || h != 1600 {
		t.Fatalf("cached screen=%dx%d", w, h)
	}
	if g.flight.cam.Scale != 2 {
		t.Fatalf("camera scale=%v", g.flight.cam.Scale)
	}
	// nav rects stay logical; the cursor arrives in device pixels
	r := g.nav.sections[machinesIndex()].Rect()
	click(g, in, 2*(r.Min.X+3), 2*(r.Min.Y+3))
	if g.Section() != machinesIndex() {
		t.Fatalf("device-pixel click should hit the logical nav button, section=%d", g.Section())
	}

	in.dpr = 3
	if w, h := g.Layout(1280, 800); w != 2560 || h != 1600 {
		t.Fatalf("scale should cap at 2, screen=%dx%d", w, h)
	}
}

func TestBrushKeyToggles(t *testing.T) {
	g, in, _ := newTestGame(t, true, "")
	tap(g, in, ebiten.KeyV)
	if !g.sky.Boosted() || g.Toast().Message() != "Brush: boosted" {
		t.Fatalf("boost=%v toast=%q", g.sky.Boosted(), g.Toast().Message())
	}
	tap(g, in, ebiten.KeyV)
	if g.sky.Boosted() || g.Toast().Message() != "Brush: normal" {
		t.Fatalf("boost=%v toast=%q", g.sky.Boosted(), g.Toast().Message())
	}
}

func TestSystemLightPreferenceSetsDefaultTheme(t *testing.T) {
	stubInput(t)
	page := stubPage(t, "")
	page.light = true
	p, _ := content.Default()
	g := New(Options{Content: p, Prefs: prefs.NewMemory(), Config: testConfig(), Logger: game_log.Discard()})
	if g.Theme().ID() != ThemeProvence {
		t.Fatalf("light system should start on provence, got %s", g.Theme().ID())
	}

	store := prefs.NewMemory()
	if err := store.Set(prefs.KeyTheme, ThemeNight); err != nil {
		t.Fatalf("set: %v", err)
	}
	g = New(Options{Content: p, Prefs: store, Config: testConfig(), Logger: game_log.Discard()})
	if g.Theme().ID() != ThemeNight {
		t.Fatalf("a saved theme should win, got %s", g.Theme().ID())
	}
}

func TestKeyboardFocusPinsNode(t *testing.T) {
	g, in, page := newTestGame(t, false, "")
	g.GoTo(machinesIndex())
	tap(g, in, ebiten.KeyEnter)
	if g.eng.Pinned().IsPinned() {
		t.Fatalf("enter without focus should not pin")
	}

	tap(g, in, ebiten.KeyTab)
	if g.flight.Focus() != 0 {
		t.Fatalf("first tab should focus the active entry, focus=%d", g.flight.Focus())
	}
	tap(g, in, ebiten.KeyTab)
	tap(g, in, ebiten.KeyTab)
	if g.flight.Focus() != 2 || g.eng.Active() != 2 {
		t.Fatalf("focus=%d active=%d want 2", g.flight.Focus(), g.eng.Active())
	}
	in.keys[ebiten.KeyShift] = true
	tap(g, in, ebiten.KeyTab)
	in.keys[ebiten.KeyShift] = false
	if g.flight.Focus() != 1 || g.eng.Active() != 1 {
		t.Fatalf("shift+tab focus=%d active=%d want 1", g.flight.Focus(), g.eng.Active())
	}

	tap(g, in, ebiten.KeyEnter)
	year := g.content.Timeline()[1].Year
	if p := g.eng.Pinned(); !p.IsPinned() || p.Index() != 1 {
		t.Fatalf("enter should pin the focused entry")
	}
	if page.hash != "#machines-"+strconv.Itoa(year) {
		t.Fatalf("hash=%q", page.hash)
	}

	d := captureDraws(t)
	g.Draw(nil)
	ring := d.rects
	g.flight.ClearFocus()
	d.rects = 0
	g.Draw(nil)
	if ring != d.rects+1 {
		t.Fatalf("focused node should draw one ring, rects %d vs %d", ring, d.rects)
	}

	g.GoTo(0)
	if g.flight.Focus() != -1 {
		t.Fatalf("leaving the timeline should drop focus")
	}
}

func TestSkillNebulaCopiesTag(t *testing.T) {
	g, in, page := newTestGame(t, true, "")
	skills := content.SectionIndex("skills")
	g.GoTo(skills)
	if !g.nebula.Running() || g.nebula.Len() == 0 {
		t.Fatalf("nebula should run with motion, tags=%d", g.nebula.Len())
	}
	if g.panels["skills"].Reserve <= 0 {
		t.Fatalf("skills text should leave room for the nebula")
	}

	page.clipboard = true
	r := g.nebula.tagRect(&g.nebula.tags[0])
	// park the tags so the click lands where the tag was measured
	g.nebula.Stop()
	if i := g.nebula.TagAt(r.Min.X+2, r.Min.Y+2); i < 0 {
		t.Fatalf("no tag under its own rect")
	}
	label := g.nebula.tags[g.nebula.TagAt(r.Min.X+2, r.Min.Y+2)].label
	click(g, in, r.Min.X+2, r.Min.Y+2)
	if page.copied != label || g.Toast().Message() != "Copied: "+label {
		t.Fatalf("copied=%q toast=%q", page.copied, g.Toast().Message())
	}

	g.SetMotion(false)
	if g.nebula.Running() {
		t.Fatalf("motion off should stop the nebula")
	}
	g.SetMotion(true)
	if !g.nebula.Running() {
		t.Fatalf("motion on should restart the nebula")
	}
}
