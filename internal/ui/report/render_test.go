package report

import (
	"context"
	"strings"
	"testing"

	"geiger/internal/engine/counter"
	"geiger/internal/engine/graph"
	"geiger/internal/engine/scan"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zeroCells = "0/0        0/0          0/0    0/0     0/0    "

func TestCreateTable(t *testing.T) {
	lookup := MapLookup{
		"app": {
			Label:   "app 0.1.0",
			Metrics: scan.SplitResult{Used: counter.CounterBlock{Functions: counter.Count{Safe: 1}}, ForbidsUnsafe: true},
		},
		"libc": {
			Label: "libc 0.2.0",
			Metrics: scan.SplitResult{
				Used:   counter.CounterBlock{Functions: counter.Count{Unsafe: 2}},
				Unused: counter.CounterBlock{Exprs: counter.Count{Unsafe: 3}},
			},
		},
		"cc": {Label: "cc 1.0.0"},
	}
	lines := []graph.TreeLine{
		graph.PackageLine{ID: "app"},
		graph.PackageLine{ID: "libc", Vines: "├── "},
		graph.PackageLine{ID: "missing", Vines: "└── "},
		graph.ExtraDepsGroup{Kind: graph.KindBuild},
		graph.PackageLine{ID: "cc", Vines: "└── "},
		graph.ExtraDepsGroup{Kind: graph.KindNormal, Vines: "    "},
	}

	res := CreateTable(context.Background(), lines, lookup, TableParameters{Format: FormatAscii})

	libcCells := "2/2        0/3          0/0    0/0     0/0    "
	gap := strings.Repeat(" ", 6)
	assert.Equal(t, []string{
		zeroCells + gap + ":)" + " " + "app 0.1.0",
		libcCells + gap + "! " + " " + "├── libc 0.2.0",
		TableRowEmpty() + "└── missing",
		TableRowEmpty() + "[build-dependencies]",
		zeroCells + gap + "? " + " " + "└── cc 1.0.0",
		"",
		libcCells,
		"",
	}, res.Lines)
	assert.Equal(t, 1, res.WarningCount)
}

func TestCreateTable_VinesAlignWithPlaceholders(t *testing.T) {
	lookup := MapLookup{"a": {Label: "a"}}
	lines := []graph.TreeLine{
		graph.PackageLine{ID: "a", Vines: "└── "},
		graph.PackageLine{ID: "b", Vines: "└── "},
	}
	for _, format := range []OutputFormat{FormatAscii, FormatUtf8} {
		res := CreateTable(context.Background(), lines, lookup, TableParameters{Format: format})
		row, placeholder := res.Lines[0], res.Lines[1]
		assert.Equal(t,
			lipgloss.Width(placeholder[:strings.Index(placeholder, "└── ")]),
			lipgloss.Width(row[:strings.Index(row, "└── ")]),
			"format %s", format)
	}
	assert.Equal(t, 1, CreateTable(context.Background(), lines, lookup, TableParameters{}).WarningCount)
}

func TestCreateTable_SharedPackageCountedOnce(t *testing.T) {
	shared := scan.SplitResult{Used: counter.CounterBlock{Methods: counter.Count{Safe: 1, Unsafe: 1}}}
	lookup := MapLookup{
		"root":   {Label: "root", Metrics: scan.SplitResult{ForbidsUnsafe: true}},
		"left":   {Label: "left"},
		"shared": {Label: "shared", Metrics: shared},
	}
	orders := [][]graph.TreeLine{
		{
			graph.PackageLine{ID: "root"},
			graph.PackageLine{ID: "shared", Vines: "├── "},
			graph.PackageLine{ID: "left", Vines: "└── "},
			graph.PackageLine{ID: "shared", Vines: "    └── "},
		},
		{
			graph.PackageLine{ID: "root"},
			graph.PackageLine{ID: "left", Vines: "├── "},
			graph.PackageLine{ID: "shared", Vines: "│   └── "},
			graph.PackageLine{ID: "shared", Vines: "└── "},
		},
	}

	want := TableRow(shared.Used, shared.Unused, FormatAscii)
	for _, lines := range orders {
		res := CreateTable(context.Background(), lines, lookup, TableParameters{Format: FormatAscii})
		footer := res.Lines[len(res.Lines)-2]
		assert.Equal(t, want, footer)
		assert.Zero(t, res.WarningCount)

		var repeated []string
		for _, l := range res.Lines {
			if strings.HasSuffix(l, "shared") {
				repeated = append(repeated, l[:55])
			}
		}
		require.Len(t, repeated, 2)
		assert.Equal(t, repeated[0], repeated[1], "repeat rows render the same cells")
	}
}

func TestCreateTable_EmptyTree(t *testing.T) {
	res := CreateTable(context.Background(), nil, MapLookup{}, TableParameters{Format: FormatRatio})
	assert.Equal(t, []string{"", TableRow(counter.CounterBlock{}, counter.CounterBlock{}, FormatRatio), ""}, res.Lines)
	assert.Zero(t, res.WarningCount)
}

func TestCreateTable_ColorsWholeRowNotMarkdown(t *testing.T) {
	lookup := MapLookup{"u": {Label: "u 1.0", Metrics: scan.SplitResult{Used: counter.CounterBlock{Exprs: counter.Count{Unsafe: 1}}}}}
	lines := []graph.TreeLine{graph.PackageLine{ID: "u"}}
	p := ansiPalette()

	colored := CreateTable(context.Background(), lines, lookup, TableParameters{Format: FormatUtf8, Palette: p})
	assert.Contains(t, colored.Lines[0], p.Colorize(UnsafeDetected, FormatUtf8, "u 1.0"))
	assert.Contains(t, colored.Lines[0], "☢️")

	md := CreateTable(context.Background(), lines, lookup, TableParameters{Format: FormatGitHubMarkdown, Palette: p})
	assert.NotContains(t, md.Lines[0], "\x1b[")
	assert.True(t, strings.HasSuffix(md.Lines[0], ":radioactive: u 1.0"))
}
