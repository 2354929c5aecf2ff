package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/greenslot/core/metrics"
	"github.com/kilianp07/greenslot/core/scheduler"
)

// EnvPrefix prefixes environment overrides. GS_SCHEDULER__HORIZON_DAYS=21
// sets scheduler.horizon_days.
const EnvPrefix = "GS_"

type Config struct {
	Scheduler scheduler.SchedulerConfig `json:"scheduler"`
	Metrics   metrics.Config            `json:"metrics"`
	Snapshot  SnapshotConfig            `json:"snapshot"`
	API       APIConfig                 `json:"api"`
}

// Load reads the configuration file at path, applies environment overrides
// and defaults, then validates the result. An empty path loads defaults and
// environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Scheduler.SetDefaults()
	cfg.Snapshot.SetDefaults()
	cfg.API.SetDefaults()
	if err := cfg.Scheduler.Validate(); err != nil {
		return nil, fmt.Errorf("scheduler: %w", err)
	}
	if err := cfg.Snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
