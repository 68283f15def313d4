package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mgpai22/lyrisync/internal/logging"
	"github.com/mgpai22/lyrisync/internal/lyric"
)

// DefaultPath is used when --config is not given.
const DefaultPath = "lyrisync.toml"

// Config represents the application configuration
type Config struct {
	Merge    MergeConfig    `toml:"merge"`
	Output   OutputConfig   `toml:"output"`
	Playback PlaybackConfig `toml:"playback"`
	Logging  LoggingConfig  `toml:"logging"`
	Annotate AnnotateConfig `toml:"annotate"`
}

// MergeConfig controls track alignment
type MergeConfig struct {
	ToleranceMs int `toml:"tolerance_ms"`
}

// OutputConfig controls serialization
type OutputConfig struct {
	Order      []string `toml:"order"`
	WordByWord bool     `toml:"word_by_word"`
}

// PlaybackConfig controls the play command
type PlaybackConfig struct {
	OffsetSeconds float64 `toml:"offset_seconds"`
	TickMs        int     `toml:"tick_ms"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// AnnotateConfig contains AI track generation defaults
type AnnotateConfig struct {
	Provider    string `toml:"provider"`
	Model       string `toml:"model"`
	BatchSize   int    `toml:"batch_size"`
	Concurrency int    `toml:"concurrency"`
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Merge: MergeConfig{
			ToleranceMs: int(lyric.DefaultTolerance / time.Millisecond),
		},
		Output: OutputConfig{
			Order:      []string{"original", "translation", "romanization"},
			WordByWord: false,
		},
		Playback: PlaybackConfig{
			OffsetSeconds: 0,
			TickMs:        100,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Annotate: AnnotateConfig{
			Provider:    "gemini",
			Model:       "",
			BatchSize:   50,
			Concurrency: 3,
		},
	}
}

// LoadConfig loads configuration from a TOML file. A missing file yields the
// defaults; nothing is written.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	if _, err := toml.DecodeFile(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves the configuration to a TOML file
func (c *Config) SaveToFile(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	header := `# lyrisync configuration
# tolerance_ms: window under which translation/romanization lines join an original line
# order: track order used when writing merged lyrics

`
	if _, err := file.WriteString(header); err != nil {
		return fmt.Errorf("failed to write config header: %w", err)
	}

	encoder := toml.NewEncoder(file)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config to TOML: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Merge.ToleranceMs < 0 {
		return fmt.Errorf("merge tolerance cannot be negative")
	}

	if _, err := lyric.ParseOrder(c.Output.Order); err != nil {
		return fmt.Errorf("invalid output order: %w", err)
	}

	if c.Playback.TickMs <= 0 {
		return fmt.Errorf("playback tick must be positive")
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return err
	}

	validProviders := map[string]bool{
		"gemini": true, "openai": true, "anthropic": true,
	}
	if !validProviders[c.Annotate.Provider] {
		return fmt.Errorf("invalid annotate provider: %s (must be gemini, openai, or anthropic)", c.Annotate.Provider)
	}
	if c.Annotate.BatchSize < 1 {
		return fmt.Errorf("annotate batch size must be at least 1")
	}
	if c.Annotate.Concurrency < 1 {
		return fmt.Errorf("annotate concurrency must be at least 1")
	}

	return nil
}

// Tolerance returns the merge window as a duration
func (c *Config) Tolerance() time.Duration {
	return time.Duration(c.Merge.ToleranceMs) * time.Millisecond
}

// TrackOrder returns the parsed output order
func (c *Config) TrackOrder() []lyric.Kind {
	order, err := lyric.ParseOrder(c.Output.Order)
	if err != nil {
		return append([]lyric.Kind(nil), lyric.DefaultOrder...)
	}
	return order
}

// Tick returns the playback refresh interval
func (c *Config) Tick() time.Duration {
	return time.Duration(c.Playback.TickMs) * time.Millisecond
}
