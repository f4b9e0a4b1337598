// # internal/ui/report/table.go
package report

import (
	"fmt"
	"strings"

	"geiger/internal/engine/counter"
)

// UnsafeCountersHeader holds the column labels. The trailing spaces are
// part of the labels and feed the placeholder width.
var UnsafeCountersHeader = [6]string{
	"Functions ",
	"Expressions ",
	"Impls ",
	"Traits ",
	"Methods ",
	"Dependency",
}

var (
	countWidths = [5]int{10, 12, 6, 7, 7}
	ratioWidths = [5]int{12, 18, 18, 12, 12}
)

// emptyRowWidth is the width of the counter columns plus the symbol column.
var emptyRowWidth = func() int {
	n := 0
	for _, h := range UnsafeCountersHeader[:5] {
		n += len(h)
	}
	return n + 5 + 4 + symbolWidth + 1
}()

// TableRow formats the five counter cells of one package.
func TableRow(used, unused counter.CounterBlock, format OutputFormat) string {
	usedKinds, unusedKinds := used.Kinds(), unused.Kinds()
	widths := countWidths
	cell := unsafeCountCell
	if format.SafeRatio() {
		widths = ratioWidths
		cell = safeRatioCell
	}

	cells := make([]string, len(widths))
	for i := range widths {
		cells[i] = fmt.Sprintf("%-*s", widths[i], cell(usedKinds[i], unusedKinds[i]))
	}
	return strings.Join(cells, " ")
}

func unsafeCountCell(used, unused counter.Count) string {
	return fmt.Sprintf("%d/%d", used.Unsafe, used.Unsafe+unused.Unsafe)
}

func safeRatioCell(used, unused counter.Count) string {
	safe := used.Safe + unused.Safe
	total := used.Total() + unused.Total()
	pct := 100.0
	if total > 0 {
		pct = 100 * float64(safe) / float64(total)
	}
	return fmt.Sprintf("%5d/%d=%.2f%%", safe, total, pct)
}

// TableRowEmpty is the placeholder printed where counters are missing or
// not applicable.
func TableRowEmpty() string {
	return strings.Repeat(" ", emptyRowWidth)
}

// TableFooter formats the grand totals colored with the overall status.
func TableFooter(used, unused counter.CounterBlock, format OutputFormat, status DetectionStatus, p Palette) string {
	return p.Colorize(status, format, TableRow(used, unused, format))
}

// HeaderLine is the column header row.
func HeaderLine() string {
	return strings.Join(UnsafeCountersHeader[:], " ")
}
