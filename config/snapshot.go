package config

import "fmt"

// Snapshot backends.
const (
	SnapshotNone   = "none"
	SnapshotJSONL  = "jsonl"
	SnapshotSQLite = "sqlite"
)

// SnapshotConfig defines where committed delivery slots are persisted
// between runs.
type SnapshotConfig struct {
	// Backend selects the store type: "none", "jsonl" or "sqlite".
	Backend string `json:"backend"`
	// Path is the file location of the store.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *SnapshotConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = SnapshotNone
	}
	if c.Path == "" {
		switch c.Backend {
		case SnapshotJSONL:
			c.Path = "slots.jsonl"
		case SnapshotSQLite:
			c.Path = "slots.db"
		}
	}
}

// Validate checks mandatory fields.
func (c SnapshotConfig) Validate() error {
	switch c.Backend {
	case SnapshotNone:
		return nil
	case SnapshotJSONL, SnapshotSQLite:
	default:
		return fmt.Errorf("unknown snapshot backend %s", c.Backend)
	}
	if c.Path == "" {
		return fmt.Errorf("snapshot path is required")
	}
	return nil
}
