// Package config holds the typed runtime configuration and the classification rule tables.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	m "assethub.dev/pkg/assethub/internal/model"
)

// Viper keys shared with the command layer.
const (
	SourceBaseKey   = "source.base"
	SourceRootsKey  = "source.roots"
	OutputKey       = "output"
	ScanParallelKey = "scan.parallel"
	ScanTemporalKey = "scan.temporal"
	BackupsKeepKey  = "backups.keep"
	RulesFileKey    = "rules.file"

	DefaultOutput       = "assets_index.json"
	DefaultScanParallel = 4
	DefaultBackupsKeep  = 5
)

// RootConfig maps a named scan root to a path relative to the source base.
type RootConfig struct {
	Key         string `mapstructure:"key" yaml:"key"`
	Path        string `mapstructure:"path" yaml:"path"`
	ProductLine string `mapstructure:"product_line" yaml:"product_line,omitempty"`
	Status      string `mapstructure:"status" yaml:"status,omitempty"`
}

// SourceConfig locates the packaging share.
type SourceConfig struct {
	Base  string       `mapstructure:"base"`
	Roots []RootConfig `mapstructure:"roots"`
}

// ScanConfig tunes the scan pipeline.
type ScanConfig struct {
	Parallel int  `mapstructure:"parallel"`
	Temporal bool `mapstructure:"temporal"`
}

// BackupsConfig controls index backup retention.
type BackupsConfig struct {
	Keep int `mapstructure:"keep"`
}

// RulesConfig points at an optional YAML rules file.
type RulesConfig struct {
	File string `mapstructure:"file"`
}

// Config holds all runtime configuration for assethub.
// Values are populated from assethub.yaml, ASSETHUB_* env vars, and CLI flags.
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Output  string        `mapstructure:"output"`
	Scan    ScanConfig    `mapstructure:"scan"`
	Backups BackupsConfig `mapstructure:"backups"`
	Rules   RulesConfig   `mapstructure:"rules"`
}

// DefaultRoots returns the four roots of the packaging share.
func DefaultRoots() []RootConfig {
	return []RootConfig{
		{Key: "human_current", Path: "Human/Current"},
		{Key: "human_wip", Path: "Human/Work in Progress"},
		{Key: "pet_current", Path: "Pet/Current"},
		{Key: "pet_wip", Path: "Pet/Work in Progress"},
	}
}

// SetDefaults registers the built-in defaults on viper.
func SetDefaults() {
	roots := make([]map[string]any, 0, len(DefaultRoots()))
	for _, root := range DefaultRoots() {
		roots = append(roots, map[string]any{"key": root.Key, "path": root.Path})
	}

	viper.SetDefault(SourceBaseKey, ".")
	viper.SetDefault(SourceRootsKey, roots)
	viper.SetDefault(OutputKey, DefaultOutput)
	viper.SetDefault(ScanParallelKey, DefaultScanParallel)
	viper.SetDefault(ScanTemporalKey, false)
	viper.SetDefault(BackupsKeepKey, DefaultBackupsKeep)
	viper.SetDefault(RulesFileKey, "")
}

// Load reads configuration from viper, applying built-in defaults for any
// values not set by config file, environment, or flags.
func Load() (Config, error) {
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if cfg.Scan.Parallel < 1 {
		cfg.Scan.Parallel = 1
	}

	if cfg.Backups.Keep < 1 {
		return Config{}, fmt.Errorf("%s must be at least 1, got %d", BackupsKeepKey, cfg.Backups.Keep)
	}

	if len(cfg.Source.Roots) == 0 {
		cfg.Source.Roots = DefaultRoots()
	}

	return cfg, nil
}

// ScanRoots resolves the configured roots against the source base. When keys is
// non-empty only those roots are returned, in the order given.
func (c Config) ScanRoots(keys []string) ([]m.ScanRoot, error) {
	byKey := make(map[string]RootConfig, len(c.Source.Roots))
	for _, root := range c.Source.Roots {
		byKey[root.Key] = root
	}

	selected := c.Source.Roots
	if len(keys) > 0 {
		selected = make([]RootConfig, 0, len(keys))

		for _, key := range keys {
			root, ok := byKey[key]
			if !ok {
				return nil, fmt.Errorf("unknown scan root %q (known: %s)", key, strings.Join(c.rootKeys(), ", "))
			}

			selected = append(selected, root)
		}
	}

	roots := make([]m.ScanRoot, 0, len(selected))
	for _, root := range selected {
		path := root.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(c.Source.Base, path)
		}

		roots = append(roots, m.ScanRoot{
			Key:         root.Key,
			Path:        m.Path(path),
			ProductLine: root.ProductLine,
			Status:      root.Status,
		})
	}

	return roots, nil
}

func (c Config) rootKeys() []string {
	keys := make([]string, 0, len(c.Source.Roots))
	for _, root := range c.Source.Roots {
		keys = append(keys, root.Key)
	}

	return keys
}

// SourceDescription renders the scanned roots for the index metadata.
func SourceDescription(roots []m.ScanRoot) string {
	parts := make([]string, 0, len(roots))
	for _, root := range roots {
		parts = append(parts, string(root.Path))
	}

	return strings.Join(parts, ", ")
}
