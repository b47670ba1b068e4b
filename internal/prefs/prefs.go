// Package prefs persists the small set of UI flags the site remembers
// between visits: theme, motion and the soundtrack player state.
package prefs

import (
	"errors"
	"strconv"
	"sync"
)

// ErrNotFound is returned by Get for a key that was never set.
var ErrNotFound = errors.New("prefs: key not found")

const (
	KeyTheme          = "theme"
	KeyMotion         = "motion"
	KeyVinylVolume    = "vinylVolume"
	KeyVinylMuted     = "vinylMuted"
	KeyVinylCollapsed = "vinylCollapsed"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Close() error
}

// Memory is an in-process Store. It backs tests and is the fallback when the
// on-disk store cannot be opened.
type Memory struct {
	mu sync.Mutex
	m  map[string]string
}

func NewMemory() *Memory { return &Memory{m: map[string]string{}} }

func (s *Memory) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *Memory) Set(key, value string) error {
	s.mu.Lock()
	s.m[key] = value
	s.mu.Unlock()
	return nil
}

func (s *Memory) Close() error { return nil }

// String returns the stored value or def.
func String(s Store, key, def string) string {
	v, err := s.Get(key)
	if err != nil {
		return def
	}
	return v
}

// Bool reads "1"/"0" (and anything strconv.ParseBool accepts).
func Bool(s Store, key string, def bool) bool {
	v, err := s.Get(key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func SetBool(s Store, key string, v bool) error {
	if v {
		return s.Set(key, "1")
	}
	return s.Set(key, "0")
}

// Float reads a number, falling back to def when missing or malformed.
func Float(s Store, key string, def float64) float64 {
	v, err := s.Get(key)
	if err != nil {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func SetFloat(s Store, key string, v float64) error {
	return s.Set(key, strconv.FormatFloat(v, 'f', -1, 64))
}
