package history

import (
	"path/filepath"
	"strings"

	"github.com/unkn0wn-root/richlist/internal/errdef"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Open returns the backend named by kind, storing its data under dir.
func Open(kind, dir string, maxEntries int) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", BackendJSON:
		store := NewStore(filepath.Join(dir, "history.json"), maxEntries)
		if err := store.Load(); err != nil {
			return nil, err
		}
		return store, nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "history.db"), maxEntries)
	default:
		return nil, errdef.New(errdef.CodeConfig, "unknown history backend %q", kind)
	}
}
