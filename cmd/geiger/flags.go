package main

import (
	"geiger/internal/core/config"

	"github.com/spf13/cobra"
)

// resolveConfig loads the config file, applies env overrides and then the
// flags the user set explicitly. The positional manifest wins over config.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}

	var cfg *config.Config
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOptional(path)
	}
	if err != nil {
		return nil, "", err
	}
	config.ApplyEnvOverrides(cfg)

	if err := applyFlags(cmd, cfg); err != nil {
		return nil, "", err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, "", err
	}

	manifest := cfg.Manifest
	if len(args) == 1 {
		manifest = args[0]
	}
	return cfg, manifest, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		v, err := flags.GetString("format")
		if err != nil {
			return err
		}
		cfg.Output.Format = v
	}
	if flags.Changed("forbid-policy") {
		v, err := flags.GetString("forbid-policy")
		if err != nil {
			return err
		}
		cfg.Scan.ForbidPolicy = v
	}
	if flags.Changed("include-tests") {
		v, err := flags.GetBool("include-tests")
		if err != nil {
			return err
		}
		cfg.Scan.IncludeTests = v
	}
	if flags.Changed("all") {
		v, err := flags.GetBool("all")
		if err != nil {
			return err
		}
		cfg.Scan.All = v
	}
	if noColor, err := flags.GetBool("no-color"); err != nil {
		return err
	} else if noColor {
		off := false
		cfg.Output.Color = &off
	}
	if noLegend, err := flags.GetBool("no-legend"); err != nil {
		return err
	} else if noLegend {
		off := false
		cfg.Output.Legend = &off
	}
	return nil
}
