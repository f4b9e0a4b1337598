package app

import (
	"context"
	"io"
	"log/slog"

	"geiger/internal/core/config"
	"geiger/internal/core/errors"
	"geiger/internal/engine/graph"
	"geiger/internal/engine/parser"
	"geiger/internal/engine/scan"
	"geiger/internal/engine/visitor"
	"geiger/internal/shared/util"
	"geiger/internal/ui/report"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
)

// App runs unsafe-usage scans over a workspace manifest.
type App struct {
	Config  *config.Config
	Parser  *parser.Parser
	Palette report.Palette

	scanner *scan.Scanner
	format  report.OutputFormat
	policy  scan.ForbidPolicy
	kinds   []graph.DependencyKind
}

// Report is the outcome of one run.
type Report struct {
	RunID        string
	Lines        []string
	WarningCount int
}

// New builds an App from a validated configuration. Colors are detected
// against out.
func New(cfg *config.Config, out io.Writer) (*App, error) {
	format, err := report.ParseOutputFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}
	policy, err := scan.ParseForbidPolicy(cfg.Scan.ForbidPolicy)
	if err != nil {
		return nil, err
	}
	kinds := make([]graph.DependencyKind, 0, len(cfg.Scan.DependencyKinds))
	for _, k := range cfg.Scan.DependencyKinds {
		kind, err := graph.ParseDependencyKind(k)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}

	include := visitor.IncludeTestsNo
	if cfg.Scan.IncludeTests {
		include = visitor.IncludeTestsYes
	}

	p := parser.NewParser()
	scanner, err := scan.NewScanner(p, scan.Options{
		IncludeTests: include,
		Workers:      cfg.WorkerCount(),
		ExcludeDirs:  cfg.Exclude.Dirs,
		ExcludeFiles: cfg.Exclude.Files,
	})
	if err != nil {
		return nil, err
	}

	var renderer *lipgloss.Renderer
	if out != nil {
		renderer = lipgloss.NewRenderer(out)
	}

	return &App{
		Config:  cfg,
		Parser:  p,
		Palette: report.NewPalette(renderer, cfg.Output.ColorEnabled()),
		scanner: scanner,
		format:  format,
		policy:  policy,
		kinds:   kinds,
	}, nil
}

// Run loads the manifest, scans every package in its tree and renders the
// report.
func (a *App) Run(ctx context.Context, manifestPath string) (*Report, error) {
	runID := uuid.NewString()
	logger := slog.With("run_id", runID)

	m, err := graph.LoadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	for _, cycle := range m.DetectCycles(graph.KindNormal, graph.KindBuild) {
		logger.Warn("dependency cycle in manifest", "cycle", cycle)
	}

	tree, err := graph.BuildTree(m, graph.TreeOptions{
		All:     a.Config.Scan.All,
		Charset: a.format.TreeCharset(),
		Kinds:   a.kinds,
	})
	if err != nil {
		return nil, err
	}

	lookup, err := a.scanPackages(ctx, logger, m, tree)
	if err != nil {
		return nil, err
	}

	var lines []string
	if a.Config.Output.LegendEnabled() {
		lines = append(lines, report.KeyLines(a.format, a.Palette)...)
	}
	table := report.CreateTable(ctx, tree, lookup, report.TableParameters{
		Format:  a.format,
		Palette: a.Palette,
	})
	lines = append(lines, table.Lines...)

	logger.Info("scan complete", "packages", len(lookup), "warnings", table.WarningCount)
	return &Report{RunID: runID, Lines: lines, WarningCount: table.WarningCount}, nil
}

// scanPackages scans each distinct package of the tree once. A package that
// cannot be scanned is logged and left out, which renders it as a warning
// row.
func (a *App) scanPackages(ctx context.Context, logger *slog.Logger, m *graph.Manifest, tree []graph.TreeLine) (report.MapLookup, error) {
	ids := make(map[string]struct{})
	for _, line := range tree {
		if pl, ok := line.(graph.PackageLine); ok {
			ids[pl.ID] = struct{}{}
		}
	}

	lookup := make(report.MapLookup, len(ids))
	for _, id := range util.SortedStringKeys(ids) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		pkg, _ := m.Package(id)
		res, err := a.scanner.ScanPackage(ctx, scan.PackageSource{
			ID:    id,
			Root:  m.PackageDir(pkg),
			Entry: pkg.Entry,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("failed to scan package", "package", id, "error", err)
			continue
		}
		if len(res.Metrics) == 0 {
			logger.Warn("package has no scannable sources", "package", id)
			continue
		}
		if res.Entry == "" {
			logger.Debug("package has no entry point", "package", id)
		} else if _, ok := res.Metrics[res.Entry]; !ok {
			logger.Warn("package entry point was not scanned", "package", id, "entry", res.Entry)
		}

		lookup[id] = report.PackageInfo{
			Label:   pkg.Label(),
			Metrics: scan.Split(res.Metrics, res.UsedFiles(), a.policy),
		}
	}
	return lookup, nil
}

// WriteTo prints the report lines.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, line := range r.Lines {
		n, err := io.WriteString(w, line+"\n")
		total += int64(n)
		if err != nil {
			return total, errors.Wrap(err, errors.CodeInternal, "write report")
		}
	}
	return total, nil
}
