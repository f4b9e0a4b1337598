package config

import (
	"geiger/internal/core/errors"
	"geiger/internal/engine/graph"
	"geiger/internal/engine/scan"
	"geiger/internal/ui/report"

	"github.com/gobwas/glob"
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	for _, check := range []func(*Config) error{
		validateVersion,
		validateOutput,
		validateScan,
		validateExclude,
		validateWatch,
	} {
		if err := check(cfg); err != nil {
			return err
		}
	}
	return nil
}

func invalid(field, format string, args ...interface{}) error {
	return errors.AddContext(errors.Newf(errors.CodeValidationError, format, args...), errors.CtxField, field)
}

func validateVersion(cfg *Config) error {
	if cfg.Version != 1 {
		return invalid("version", "unsupported config version %d; supported version is 1", cfg.Version)
	}
	return nil
}

func validateOutput(cfg *Config) error {
	if _, err := report.ParseOutputFormat(cfg.Output.Format); err != nil {
		return errors.AddContext(err, errors.CtxField, "output.format")
	}
	return nil
}

func validateScan(cfg *Config) error {
	if _, err := scan.ParseForbidPolicy(cfg.Scan.ForbidPolicy); err != nil {
		return errors.AddContext(err, errors.CtxField, "scan.forbid_policy")
	}
	if cfg.Scan.Workers < 0 {
		return invalid("scan.workers", "scan.workers must be >= 0, got %d", cfg.Scan.Workers)
	}
	seen := make(map[string]bool, len(cfg.Scan.DependencyKinds))
	for _, kind := range cfg.Scan.DependencyKinds {
		if _, err := graph.ParseDependencyKind(kind); err != nil {
			return errors.AddContext(err, errors.CtxField, "scan.dependency_kinds")
		}
		if seen[kind] {
			return invalid("scan.dependency_kinds", "duplicate dependency kind %q", kind)
		}
		seen[kind] = true
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for _, pattern := range cfg.Exclude.Dirs {
		if _, err := glob.Compile(pattern); err != nil {
			return invalid("exclude.dirs", "invalid glob %q: %v", pattern, err)
		}
	}
	for _, pattern := range cfg.Exclude.Files {
		if _, err := glob.Compile(pattern); err != nil {
			return invalid("exclude.files", "invalid glob %q: %v", pattern, err)
		}
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return invalid("watch.debounce", "watch.debounce must not be negative")
	}
	if cfg.Watch.MinInterval < 0 {
		return invalid("watch.min_interval", "watch.min_interval must not be negative")
	}
	return nil
}
