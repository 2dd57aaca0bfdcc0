package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfig []byte

// TomlLanguage represents a catalog language
type TomlLanguage struct {
	Name    string   `toml:"name"`
	Code    string   `toml:"code"`
	Iso     string   `toml:"iso,omitempty"`
	Aliases []string `toml:"aliases,omitempty"`
}

// TomlKeywords holds keyword configurations
type TomlKeywords map[string][]string

// TomlFilter represents a filter configuration
type TomlFilter struct {
	Type      string   `toml:"type"`
	Languages []string `toml:"languages,omitempty"`
	Include   []string `toml:"include,omitempty"` // References to keyword lists
	Exclude   []string `toml:"exclude,omitempty"` // References to keyword lists
}

// TomlScoring represents a scoring strategy configuration
type TomlScoring struct {
	Type   string  `toml:"type"`
	Weight float64 `toml:"weight"`
}

// TomlFeed configures how a site template selects posts
type TomlFeed struct {
	Template string        `toml:"template"`
	Limit    int           `toml:"limit"`
	Filters  []TomlFilter  `toml:"filters"`
	Scoring  []TomlScoring `toml:"scoring"`
}

type TomlAnalytics struct {
	ShowLogsLimit int `toml:"show_logs_limit"`
}

type TomlDetection struct {
	Threshold float64 `toml:"threshold"`
}

// TomlConfig represents the top-level configuration
type TomlConfig struct {
	LogLevel  string         `toml:"log_level"`
	Languages []TomlLanguage `toml:"languages"`
	Keywords  TomlKeywords   `toml:"keywords"`
	Feeds     []TomlFeed     `toml:"feeds"`
	Analytics TomlAnalytics  `toml:"analytics"`
	Detection TomlDetection  `toml:"detection"`
}

func LoadConfig(path string) (*TomlConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses data on top of the defaults, so a file only needs the
// sections it overrides.
func ParseConfig(data []byte) (*TomlConfig, error) {
	config, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	var override TomlConfig
	if err := toml.Unmarshal(data, &override); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if override.LogLevel != "" {
		config.LogLevel = override.LogLevel
	}
	if len(override.Languages) > 0 {
		config.Languages = override.Languages
	}
	if len(override.Keywords) > 0 {
		config.Keywords = override.Keywords
	}
	if len(override.Feeds) > 0 {
		config.Feeds = override.Feeds
	}
	if override.Analytics.ShowLogsLimit > 0 {
		config.Analytics.ShowLogsLimit = override.Analytics.ShowLogsLimit
	}
	if override.Detection.Threshold > 0 {
		config.Detection.Threshold = override.Detection.Threshold
	}

	return config, nil
}

// DefaultConfig returns the embedded configuration
func DefaultConfig() (*TomlConfig, error) {
	var config TomlConfig
	if err := toml.Unmarshal(defaultConfig, &config); err != nil {
		return nil, fmt.Errorf("error parsing default config: %w", err)
	}
	return &config, nil
}
