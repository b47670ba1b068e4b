// Package soundtrack is the vinyl player in the corner of the site: one
// looping track with play/pause, mute, volume and a collapsed state, all
// remembered between visits.
package soundtrack

import (
	"fmt"
	"math"
	"os"

	"github.com/NimaJafariComp/NimaJafariComp.github.io/core/content"
	"github.com/NimaJafariComp/NimaJafariComp.github.io/internal/prefs"
	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

const defaultVolume = 0.6

// Player keeps the user-facing state; the device is opened on first Play so
// a missing audio device never blocks startup.
type Player struct {
	Meta content.Audio

	data      []byte
	out       output
	failed    bool
	playing   bool
	volume    float64
	muted     bool
	collapsed bool

	store prefs.Store
	log   *game_log.Logger
}

// New restores the saved state from store. path names an mp3 file; empty
// means the synthesized crackle loop.
func New(meta content.Audio, path string, store prefs.Store, logger *game_log.Logger) (*Player, error) {
	p := &Player{
		Meta:      meta,
		store:     store,
		log:       logger.Tag("VINYL"),
		volume:    clamp01(prefs.Float(store, prefs.KeyVinylVolume, defaultVolume)),
		muted:     prefs.Bool(store, prefs.KeyVinylMuted, false),
		collapsed: prefs.Bool(store, prefs.KeyVinylCollapsed, false),
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return p, fmt.Errorf("soundtrack: read %s: %w", path, err)
		}
		p.data = b
	}
	return p, nil
}

func (p *Player) Playing() bool   { return p.playing }
func (p *Player) Volume() float64 { return p.volume }
func (p *Player) Muted() bool     { return p.muted }
func (p *Player) Collapsed() bool { return p.collapsed }

// Available reports whether the device side has not failed.
func (p *Player) Available() bool { return !p.failed }

// Toggle flips play/pause.
func (p *Player) Toggle() {
	if p.playing {
		p.Pause()
		return
	}
	p.Play()
}

func (p *Player) Play() {
	if !p.ensure() {
		return
	}
	p.out.SetVolume(p.effectiveVolume())
	p.out.Play()
	p.playing = true
	p.log.Infof("play %q", p.Meta.Title)
}

func (p *Player) Pause() {
	if p.out != nil {
		p.out.Pause()
	}
	p.playing = false
}

// SetVolume stores v clamped to [0,1]. Raising the volume above zero unmutes.
func (p *Player) SetVolume(v float64) {
	p.volume = clamp01(v)
	if p.volume > 0 && p.muted {
		p.muted = false
		p.save(prefs.KeyVinylMuted, prefs.SetBool(p.store, prefs.KeyVinylMuted, false))
	}
	p.apply()
	p.save(prefs.KeyVinylVolume, prefs.SetFloat(p.store, prefs.KeyVinylVolume, p.volume))
}

func (p *Player) ToggleMute() {
	p.muted = !p.muted
	p.apply()
	p.save(prefs.KeyVinylMuted, prefs.SetBool(p.store, prefs.KeyVinylMuted, p.muted))
}

func (p *Player) ToggleCollapsed() {
	p.collapsed = !p.collapsed
	p.save(prefs.KeyVinylCollapsed, prefs.SetBool(p.store, prefs.KeyVinylCollapsed, p.collapsed))
}

// Load swaps in an mp3 track. Playback continues on the new track when the
// old one was playing.
func (p *Player) Load(data []byte, title string) error {
	if len(data) == 0 {
		return fmt.Errorf("soundtrack: empty track")
	}
	was := p.playing
	if err := p.Close(); err != nil {
		p.log.Warnf("close: %v", err)
	}
	p.data = data
	p.failed = false
	if title != "" {
		p.Meta.Title = title
	}
	p.log.Infof("loaded %q, %d bytes", p.Meta.Title, len(data))
	if was {
		p.Play()
	}
	return nil
}

// Close releases the device player.
func (p *Player) Close() error {
	if p.out == nil {
		return nil
	}
	err := p.out.Close()
	p.out = nil
	p.playing = false
	return err
}

func (p *Player) effectiveVolume() float64 {
	if p.muted {
		return 0
	}
	return p.volume
}

func (p *Player) apply() {
	if p.out != nil {
		p.out.SetVolume(p.effectiveVolume())
	}
}

func (p *Player) ensure() bool {
	if p.out != nil {
		return true
	}
	if p.failed {
		return false
	}
	out, err := newOutput(p.data)
	if err != nil {
		p.failed = true
		p.log.Warnf("audio unavailable: %v", err)
		return false
	}
	p.out = out
	return true
}

func (p *Player) save(key string, err error) {
	if err != nil {
		p.log.Warnf("save %s: %v", key, err)
	}
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
