package config

import (
	"testing"
	"time"

	"geiger/internal/core/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"version", func(c *Config) { c.Version = 2 }, "version"},
		{"format", func(c *Config) { c.Output.Format = "json" }, "output.format"},
		{"policy", func(c *Config) { c.Scan.ForbidPolicy = "some" }, "scan.forbid_policy"},
		{"workers", func(c *Config) { c.Scan.Workers = -1 }, "scan.workers"},
		{"unknown kind", func(c *Config) { c.Scan.DependencyKinds = []string{"optional"} }, "scan.dependency_kinds"},
		{"duplicate kind", func(c *Config) { c.Scan.DependencyKinds = []string{"dev", "dev"} }, "scan.dependency_kinds"},
		{"dir glob", func(c *Config) { c.Exclude.Dirs = []string{"[target"} }, "exclude.dirs"},
		{"file glob", func(c *Config) { c.Exclude.Files = []string{"src/[a"} }, "exclude.files"},
		{"debounce", func(c *Config) { c.Watch.Debounce = -1 }, "watch.debounce"},
		{"min interval", func(c *Config) { c.Watch.MinInterval = -time.Second }, "watch.min_interval"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Validate(cfg)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.CodeValidationError))

			var de *errors.DomainError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Context[errors.CtxField])
		})
	}
}

func TestValidate_Default(t *testing.T) {
	assert.NoError(t, Validate(Default()))
}
