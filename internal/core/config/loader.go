// # internal/core/config/loader.go
package config

import (
	"os"
	"strings"
	"time"

	"geiger/internal/core/errors"

	"github.com/BurntSushi/toml"
)

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		code := errors.CodeInternal
		if os.IsNotExist(err) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "read config"), errors.CtxPath, path)
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeParseFailed, "decode config"), errors.CtxPath, path)
	}

	applyDefaults(&cfg)
	normalize(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, errors.AddContext(err, errors.CtxPath, path)
	}
	return &cfg, nil
}

// LoadOptional loads path, falling back to defaults when the file does not
// exist.
func LoadOptional(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.IsCode(err, errors.CodeNotFound) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	if strings.TrimSpace(cfg.Manifest) == "" {
		cfg.Manifest = "geiger.workspace.toml"
	}

	if strings.TrimSpace(cfg.Output.Format) == "" {
		cfg.Output.Format = "utf8"
	}
	if cfg.Output.Color == nil {
		enabled := true
		cfg.Output.Color = &enabled
	}
	if cfg.Output.Legend == nil {
		enabled := true
		cfg.Output.Legend = &enabled
	}

	if strings.TrimSpace(cfg.Scan.ForbidPolicy) == "" {
		cfg.Scan.ForbidPolicy = "entry-point"
	}
	if len(cfg.Scan.DependencyKinds) == 0 {
		cfg.Scan.DependencyKinds = []string{"normal", "build", "dev"}
	}

	if cfg.Exclude.Dirs == nil {
		cfg.Exclude.Dirs = []string{"target", ".git"}
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.MinInterval == 0 {
		cfg.Watch.MinInterval = time.Second
	}
}

func normalize(cfg *Config) {
	cfg.Manifest = strings.TrimSpace(cfg.Manifest)
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	cfg.Scan.ForbidPolicy = strings.ToLower(strings.TrimSpace(cfg.Scan.ForbidPolicy))
	for i, kind := range cfg.Scan.DependencyKinds {
		cfg.Scan.DependencyKinds[i] = strings.ToLower(strings.TrimSpace(kind))
	}
}
