//go:build !js

package prefs

import game_log "github.com/NimaJafariComp/NimaJafariComp.github.io/internal/log"

// Open returns the platform store. On desktop that is the sqlite file at
// path; when it cannot be opened the store falls back to memory.
func Open(path string, logger *game_log.Logger) Store {
	if path == "" {
		return NewMemory()
	}
	s, err := OpenSQLite(path)
	if err != nil {
		logger.Tag("PREFS").Warnf("%v; using in-memory prefs", err)
		return NewMemory()
	}
	return s
}
