// Package pin implements the FREE/PINNED switch that decides which timeline
// entry the HUD reports.
package pin

import "fmt"

type Mode int

const (
	Free Mode = iota
	Pinned
)

func (m Mode) String() string {
	if m == Pinned {
		return "PINNED"
	}
	return "FREE"
}

// State is the pin switch. The zero value is FREE.
type State struct {
	mode  Mode
	index int
}

// Pin fixes entry i out of n. Out of range indices are rejected and leave the
// state untouched.
func (s *State) Pin(i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("pin: index %d out of range [0,%d)", i, n)
	}
	s.mode, s.index = Pinned, i
	return nil
}

// Unpin returns to FREE. It reports whether anything changed.
func (s *State) Unpin() bool {
	was := s.mode == Pinned
	s.mode, s.index = Free, 0
	return was
}

// Leave is called when the timeline section stops being the current one.
func (s *State) Leave() bool { return s.Unpin() }

func (s State) Mode() Mode { return s.mode }

func (s State) IsPinned() bool { return s.mode == Pinned }

// Index returns the pinned entry, or -1 when FREE.
func (s State) Index() int {
	if s.mode != Pinned {
		return -1
	}
	return s.index
}

// Resolve returns the entry the HUD should show given the nearest one.
func (s State) Resolve(nearest int) int {
	if s.mode == Pinned {
		return s.index
	}
	return nearest
}

func (s State) String() string {
	if s.mode == Pinned {
		return fmt.Sprintf("PINNED(%d)", s.index)
	}
	return "FREE"
}
