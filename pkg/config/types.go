// pkg/config/types.go
package config

// Config is the full application configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Database  DatabaseConfig  `koanf:"database"`
	Output    OutputConfig    `koanf:"output"`
	Fuzzy     FuzzyConfig     `koanf:"fuzzy"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

// LogConfig controls logging behaviour.
type LogConfig struct {
	Level string `koanf:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic"`
}

// DatabaseConfig locates fingerprint catalogs.
type DatabaseConfig struct {
	Paths []string `koanf:"paths"`
	Watch bool     `koanf:"watch"`
}

// OutputConfig controls CLI output rendering.
type OutputConfig struct {
	Format  string `koanf:"format" validate:"omitempty,oneof=json table"`
	Quiet   bool   `koanf:"quiet"`
	NoColor bool   `koanf:"no_color"`
}

// FuzzyConfig carries defaults for similarity-based matching.
type FuzzyConfig struct {
	Threshold float64 `koanf:"threshold" validate:"gte=0,lte=1"`
}

// TelemetryConfig controls the JSONL match-event log.
type TelemetryConfig struct {
	Path string `koanf:"path"`
}

// DefaultConfig returns a Config populated with hardcoded default values.
// These serve as the baseline configuration if no other sources override them.
func DefaultConfig() Config {
	return Config{
		Log:    LogConfig{Level: "error"},
		Output: OutputConfig{Format: "table"},
		Fuzzy:  FuzzyConfig{Threshold: 0.8},
	}
}

// DefaultConfigAsMap flattens the defaults into the koanf key space.
func DefaultConfigAsMap() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"log.level":       d.Log.Level,
		"database.paths":  d.Database.Paths,
		"database.watch":  d.Database.Watch,
		"output.format":   d.Output.Format,
		"output.quiet":    d.Output.Quiet,
		"output.no_color": d.Output.NoColor,
		"fuzzy.threshold": d.Fuzzy.Threshold,
		"telemetry.path":  d.Telemetry.Path,
	}
}
