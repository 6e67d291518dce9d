// pkg/config/config.go
package config

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
)

// Manager handles loading and accessing application configuration.
type Manager struct {
	k             *koanf.Koanf
	sources       []Source
	currentConfig Config
	mu            sync.RWMutex
}

// NewManager creates a Manager with the built-in source chain. Additional
// sources (secrets, system paths) can be appended before Load.
func NewManager(configFilePath string, flags *pflag.FlagSet) *Manager {
	return &Manager{
		k: koanf.New("."),
		sources: []Source{
			&DefaultSource{},
			&FileSource{Path: configFilePath},
			&EnvSource{},
			&FlagSource{Flags: flags},
		},
	}
}

// AddSource registers an extra configuration source.
func (m *Manager) AddSource(s Source) {
	m.sources = append(m.sources, s)
}

// Load loads all sources in priority order, unmarshals the merged result and
// validates it.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sources := append([]Source(nil), m.sources...)
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority() < sources[j].Priority()
	})

	for _, src := range sources {
		if err := src.Load(m.k); err != nil {
			return fmt.Errorf("config source %s: %w", src.Name(), err)
		}
	}

	var cfg Config
	if err := m.k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return fmt.Errorf("error unmarshaling final config: %w", err)
	}

	// Flag values for repeatable string flags arrive as []any through some
	// providers; normalize before validation.
	cfg.Database.Paths = cast.ToStringSlice(m.k.Get("database.paths"))

	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	m.currentConfig = cfg
	return nil
}

// Get returns a copy of the current configuration.
func (m *Manager) Get() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentConfig
}
