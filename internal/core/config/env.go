package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvOverrides applies environment variable overrides to the configuration.
// Pattern: GEIGER_[SECTION]_[KEY] (e.g., GEIGER_OUTPUT_FORMAT).
func ApplyEnvOverrides(cfg *Config) {
	setEnvString(&cfg.Manifest, "GEIGER_MANIFEST")

	// Output
	setEnvString(&cfg.Output.Format, "GEIGER_OUTPUT_FORMAT")
	setEnvBoolPtr(&cfg.Output.Color, "GEIGER_OUTPUT_COLOR")
	setEnvBoolPtr(&cfg.Output.Legend, "GEIGER_OUTPUT_LEGEND")

	// Scan
	setEnvBool(&cfg.Scan.IncludeTests, "GEIGER_SCAN_INCLUDE_TESTS")
	setEnvString(&cfg.Scan.ForbidPolicy, "GEIGER_SCAN_FORBID_POLICY")
	setEnvInt(&cfg.Scan.Workers, "GEIGER_SCAN_WORKERS")
	setEnvBool(&cfg.Scan.All, "GEIGER_SCAN_ALL")
	setEnvList(&cfg.Scan.DependencyKinds, "GEIGER_SCAN_DEPENDENCY_KINDS")

	// Exclude
	setEnvList(&cfg.Exclude.Dirs, "GEIGER_EXCLUDE_DIRS")
	setEnvList(&cfg.Exclude.Files, "GEIGER_EXCLUDE_FILES")

	// Watch
	setEnvDuration(&cfg.Watch.Debounce, "GEIGER_WATCH_DEBOUNCE")
	setEnvDuration(&cfg.Watch.MinInterval, "GEIGER_WATCH_MIN_INTERVAL")

	normalize(cfg)
}

func applied(key, val string) {
	slog.Debug("applying env override", "key", key, "value", val)
}

func setEnvString(target *string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		applied(key, val)
		*target = val
	}
}

func setEnvList(target *[]string, key string) {
	if val, ok := os.LookupEnv(key); ok {
		applied(key, val)
		var items []string
		for _, item := range strings.Split(val, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		*target = items
	}
}

func setEnvInt(target *int, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			applied(key, val)
			*target = i
		}
	}
}

func setEnvBool(target *bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			applied(key, val)
			*target = b
		}
	}
}

func setEnvBoolPtr(target **bool, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.ToLower(val)); err == nil {
			applied(key, val)
			*target = &b
		}
	}
}

func setEnvDuration(target *time.Duration, key string) {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			applied(key, val)
			*target = d
		}
	}
}
