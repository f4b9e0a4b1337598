package report

import (
	"context"
	"log/slog"
	"strings"

	"geiger/internal/engine/graph"
	"geiger/internal/engine/scan"
	"geiger/internal/shared/observability"

	"github.com/charmbracelet/lipgloss"
	"go.opentelemetry.io/otel/attribute"
)

// PackageInfo is what the renderer needs to know about one package.
type PackageInfo struct {
	Label   string
	Metrics scan.SplitResult
}

// PackageLookup resolves tree line ids to scanned packages. ok is false
// when the package has no metrics.
type PackageLookup interface {
	Lookup(id string) (info PackageInfo, ok bool)
}

// MapLookup is a PackageLookup backed by a map.
type MapLookup map[string]PackageInfo

func (m MapLookup) Lookup(id string) (PackageInfo, bool) {
	info, ok := m[id]
	return info, ok
}

type TableParameters struct {
	Format  OutputFormat
	Palette Palette
}

type ScanResult struct {
	Lines        []string
	WarningCount int
}

type tableState struct {
	params  TableParameters
	lookup  PackageLookup
	totals  TotalPackageCounts
	visited map[string]struct{}
	lines   []string
	warned  int
}

// CreateTable renders one row per tree line followed by the totals footer.
// A package that appears several times in the tree adds to the totals only
// once.
func CreateTable(ctx context.Context, treeLines []graph.TreeLine, lookup PackageLookup, params TableParameters) ScanResult {
	_, span := observability.Tracer().Start(ctx, "geiger.render_table")
	defer span.End()

	st := &tableState{
		params:  params,
		lookup:  lookup,
		visited: make(map[string]struct{}),
		lines:   make([]string, 0, len(treeLines)+3),
	}
	for _, line := range treeLines {
		switch l := line.(type) {
		case graph.ExtraDepsGroup:
			st.extraDepsGroup(l)
		case graph.PackageLine:
			st.packageLine(l)
		}
	}

	status := st.totals.DetectionStatus()
	st.lines = append(st.lines,
		"",
		TableFooter(st.totals.TotalCounterBlock, st.totals.TotalUnusedCounterBlock, params.Format, status, params.Palette),
		"",
	)

	span.SetAttributes(
		attribute.Int("report.packages", len(st.visited)),
		attribute.Int("report.warnings", st.warned),
		attribute.String("report.status", status.String()),
	)
	return ScanResult{Lines: st.lines, WarningCount: st.warned}
}

func (st *tableState) extraDepsGroup(l graph.ExtraDepsGroup) {
	var name string
	switch l.Kind {
	case graph.KindBuild:
		name = "[build-dependencies]"
	case graph.KindDev:
		name = "[dev-dependencies]"
	default:
		return
	}
	st.lines = append(st.lines, TableRowEmpty()+l.Vines+name)
}

func (st *tableState) packageLine(l graph.PackageLine) {
	info, ok := st.lookup.Lookup(l.ID)
	if !ok {
		st.warned++
		observability.WarningRowsTotal.Inc()
		slog.Warn("no metrics found for package", "package", l.ID)
		st.lines = append(st.lines, TableRowEmpty()+l.Vines+l.ID)
		return
	}

	status := Classify(info.Metrics)
	if _, seen := st.visited[l.ID]; !seen {
		st.visited[l.ID] = struct{}{}
		st.totals.Add(info.Metrics, status)
		observability.PackagesRenderedTotal.WithLabelValues(status.String()).Inc()
	}

	format, palette := st.params.Format, st.params.Palette
	cells := TableRow(info.Metrics.Used, info.Metrics.Unused, format)
	pad := emptyRowWidth - symbolWidth - 1 - lipgloss.Width(cells)
	if pad < 0 {
		pad = 0
	}

	var b strings.Builder
	b.WriteString(palette.Colorize(status, format, cells))
	b.WriteString(strings.Repeat(" ", pad))
	b.WriteString(padSymbol(Symbol(status, format)))
	b.WriteString(" ")
	b.WriteString(l.Vines)
	b.WriteString(palette.Colorize(status, format, info.Label))
	st.lines = append(st.lines, b.String())
}
