//go:build js

package prefs

import (
	"syscall/js"

	game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"
)

// LocalStorage stores preferences in window.localStorage.
type LocalStorage struct {
	ls js.Value
}

func (s *LocalStorage) Get(key string) (string, error) {
	v := s.ls.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", ErrNotFound
	}
	return v.String(), nil
}

func (s *LocalStorage) Set(key, value string) error {
	s.ls.Call("setItem", key, value)
	return nil
}

func (s *LocalStorage) Close() error { return nil }

// Open returns window.localStorage, or memory when storage is blocked.
// path is ignored in the browser.
func Open(_ string, logger *game_log.Logger) Store {
	ls := js.Global().Get("localStorage")
	if ls.IsUndefined() || ls.IsNull() {
		logger.Tag("PREFS").Warnf("localStorage unavailable; using in-memory prefs")
		return NewMemory()
	}
	return &LocalStorage{ls: ls}
}
