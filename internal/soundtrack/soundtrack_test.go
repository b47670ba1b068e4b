package soundtrack

import (
	"errors"
	"testing"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/prefs"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

type fakeOutput struct {
	playing bool
	volume  float64
	closed  bool
}

func (f *fakeOutput) Play()               { f.playing = true }
func (f *fakeOutput) Pause()              { f.playing = false }
func (f *fakeOutput) IsPlaying() bool     { return f.playing }
func (f *fakeOutput) SetVolume(v float64) { f.volume = v }
func (f *fakeOutput) Close() error        { f.closed = true; return nil }

func withFakeOutput(t *testing.T, err error) *fakeOutput {
	t.Helper()
	fake := &fakeOutput{}
	old := newOutput
	newOutput = func([]byte) (output, error) {
		if err != nil {
			return nil, err
		}
		return fake, nil
	}
	t.Cleanup(func() { newOutput = old })
	return fake
}

func TestPlayerRestoresAndPersists(t *testing.T) {
	fake := withFakeOutput(t, nil)
	store := prefs.NewMemory()
	_ = prefs.SetFloat(store, prefs.KeyVinylVolume, 0.25)
	_ = prefs.SetBool(store, prefs.KeyVinylCollapsed, true)

	p, err := New(content.Audio{Title: "Clair de Lune"}, "", store, game_log.Discard())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if p.Volume() != 0.25 || !p.Collapsed() || p.Muted() {
		t.Fatalf("state not restored: vol=%v collapsed=%v muted=%v", p.Volume(), p.Collapsed(), p.Muted())
	}

	p.Toggle()
	if !p.Playing() || !fake.playing || fake.volume != 0.25 {
		t.Fatalf("play should start the output at the saved volume")
	}
	p.ToggleMute()
	if fake.volume != 0 || !prefs.Bool(store, prefs.KeyVinylMuted, false) {
		t.Fatalf("mute should zero the output and persist")
	}
	p.SetVolume(1.7)
	if p.Volume() != 1 || p.Muted() || fake.volume != 1 {
		t.Fatalf("raising volume should clamp and unmute, vol=%v muted=%v", p.Volume(), p.Muted())
	}
	if prefs.Float(store, prefs.KeyVinylVolume, 0) != 1 {
		t.Fatalf("volume not persisted")
	}
	p.ToggleCollapsed()
	if prefs.Bool(store, prefs.KeyVinylCollapsed, true) {
		t.Fatalf("collapsed flag not persisted")
	}
	p.Toggle()
	if p.Playing() || fake.playing {
		t.Fatalf("second toggle should pause")
	}
	_ = p.Close()
	if !fake.closed {
		t.Fatalf("close should release the output")
	}
}

func TestPlayerFailSoftWithoutDevice(t *testing.T) {
	withFakeOutput(t, errors.New("no device"))
	p, _ := New(content.Audio{}, "", prefs.NewMemory(), game_log.Discard())
	p.Play()
	if p.Playing() || p.Available() {
		t.Fatalf("player should stay stopped when the device fails")
	}
	p.SetVolume(0.3)
	if p.Volume() != 0.3 {
		t.Fatalf("volume should still be tracked without a device")
	}
}

func TestNewMissingFile(t *testing.T) {
	withFakeOutput(t, nil)
	p, err := New(content.Audio{}, "/definitely/missing.mp3", prefs.NewMemory(), game_log.Discard())
	if err == nil || p == nil {
		t.Fatalf("expected error and a usable player for a missing file")
	}
}

func TestCrackleDeterministic(t *testing.T) {
	a := Crackle(8000, 0.5)
	b := Crackle(8000, 0.5)
	if len(a) != 4000*4 {
		t.Fatalf("len=%d want %d", len(a), 4000*4)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("crackle differs at byte %d", i)
		}
	}
	if a[0] != 0 || a[1] != 0 {
		t.Fatalf("loop seam should start silent")
	}
}

func TestLoadSwapsTrackAndResumes(t *testing.T) {
	var got [][]byte
	fake := &fakeOutput{}
	old := newOutput
	newOutput = func(data []byte) (output, error) {
		got = append(got, data)
		fake.closed = false
		return fake, nil
	}
	t.Cleanup(func() { newOutput = old })

	p, _ := New(content.Audio{Title: "Crackle"}, "", prefs.NewMemory(), game_log.Discard())
	p.Play()
	if err := p.Load([]byte("ID3 track"), "Clair de Lune"); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != 2 || string(got[1]) != "ID3 track" {
		t.Fatalf("new track should reopen the output, opens=%d", len(got))
	}
	if !p.Playing() || !fake.playing || p.Meta.Title != "Clair de Lune" {
		t.Fatalf("playback should resume on the new track")
	}
	if err := p.Load(nil, "x"); err == nil {
		t.Fatalf("empty track should be rejected")
	}
}
