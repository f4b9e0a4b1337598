// # internal/core/config/config.go
package config

import (
	"runtime"
	"time"
)

const DefaultPath = "geiger.toml"

type Config struct {
	Version  int     `toml:"version"`
	Manifest string  `toml:"manifest"`
	Output   Output  `toml:"output"`
	Scan     Scan    `toml:"scan"`
	Exclude  Exclude `toml:"exclude"`
	Watch    Watch   `toml:"watch"`
}

type Output struct {
	Format string `toml:"format"`
	Color  *bool  `toml:"color"`
	Legend *bool  `toml:"legend"`
}

// ColorEnabled reports whether rows are colored. Unset means enabled.
func (o Output) ColorEnabled() bool {
	return o.Color == nil || *o.Color
}

func (o Output) LegendEnabled() bool {
	return o.Legend == nil || *o.Legend
}

type Scan struct {
	IncludeTests    bool     `toml:"include_tests"`
	ForbidPolicy    string   `toml:"forbid_policy"`
	Workers         int      `toml:"workers"`
	All             bool     `toml:"all"`
	DependencyKinds []string `toml:"dependency_kinds"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// MinInterval is the minimum time between two re-scans.
	MinInterval time.Duration `toml:"min_interval"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// WorkerCount resolves the configured worker count, 0 meaning GOMAXPROCS.
func (c *Config) WorkerCount() int {
	if c.Scan.Workers > 0 {
		return c.Scan.Workers
	}
	return runtime.GOMAXPROCS(0)
}
