// # cmd/geiger/cli.go
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"geiger/internal/core/app"
	"geiger/internal/core/config"
	"geiger/internal/shared/observability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func NewRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "geiger",
		Short: "Count unsafe Rust usage across a dependency tree",
		Long: `Geiger parses every Rust source file of every package in a workspace
manifest, counts safe and unsafe functions, expressions, impls, traits
and methods, and prints them as a dependency tree.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			setupLogging(cmd.ErrOrStderr(), verbose)
			return nil
		},
	}
	rootCmd.PersistentFlags().String("config", config.DefaultPath, "Path to config file")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose logging")

	scanCmd := &cobra.Command{
		Use:   "scan [manifest]",
		Short: "Scan the workspace once and print the report",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	addScanFlags(scanCmd)
	scanCmd.Flags().Bool("metrics", false, "Write collected metrics to stderr after the run")

	watchCmd := &cobra.Command{
		Use:   "watch [manifest]",
		Short: "Re-scan whenever Rust sources or manifests change",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runWatch,
	}
	addScanFlags(watchCmd)

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "geiger v%s\n", version)
		},
	}

	rootCmd.AddCommand(scanCmd, watchCmd, versionCmd)
	return rootCmd
}

func addScanFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "", "Output format: ascii|utf8|github-markdown|ratio|code")
	cmd.Flags().Bool("include-tests", false, "Count test functions and test modules")
	cmd.Flags().String("forbid-policy", "", "How a package's forbid flag is derived: entry-point|all|any")
	cmd.Flags().Bool("all", false, "Expand repeated dependencies in the tree")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().Bool("no-legend", false, "Omit the legend above the table")
}

func setupLogging(w io.Writer, verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})))
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, manifest, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	a, err := app.New(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	rep, err := a.Run(cmd.Context(), manifest)
	if err != nil {
		slog.Error("scan failed", "error", err)
		return err
	}
	if _, err := rep.WriteTo(cmd.OutOrStdout()); err != nil {
		return err
	}
	reportWarnings(cmd.ErrOrStderr(), rep)

	dump, err := cmd.Flags().GetBool("metrics")
	if err != nil {
		return err
	}
	if dump {
		return observability.WriteText(cmd.ErrOrStderr(), prometheus.DefaultGatherer)
	}
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, manifest, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	a, err := app.New(cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	return a.Watch(ctx, manifest, func(rep *app.Report, err error) {
		if err != nil {
			slog.Error("scan failed", "error", err)
			return
		}
		if _, err := rep.WriteTo(out); err != nil {
			slog.Error("failed to write report", "error", err)
		}
		reportWarnings(cmd.ErrOrStderr(), rep)
	})
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func reportWarnings(w io.Writer, rep *app.Report) {
	if rep.WarningCount > 0 {
		fmt.Fprintf(w, "WARNING: %d package(s) had no metrics\n", rep.WarningCount)
	}
}
