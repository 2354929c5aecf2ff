// Package snapshot implements core/snapshot.Store on a JSONL file or a
// SQLite database.
package snapshot

import (
	"fmt"

	"github.com/kilianp07/greenslot/core/snapshot"
)

// Open creates the store for backend. "none" or an empty backend returns a
// store that keeps nothing.
func Open(backend, path string) (snapshot.Store, error) {
	switch backend {
	case "", "none":
		return snapshot.Nop{}, nil
	case "jsonl":
		return NewJSONLStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	default:
		return nil, fmt.Errorf("unknown snapshot backend %s", backend)
	}
}
