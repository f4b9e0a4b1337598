package report

import "fmt"

var symbolDescriptions = [3]string{
	"No `unsafe` usage found, declares #![forbid(unsafe_code)]",
	"No `unsafe` usage found, missing #![forbid(unsafe_code)]",
	"`unsafe` usage found",
}

// KeyLines explains the cell format and the symbols, then prints the
// column header. It goes above the table.
func KeyLines(format OutputFormat, p Palette) []string {
	lines := []string{""}
	if format.SafeRatio() {
		lines = append(lines,
			"Metric output format: x/y=z%",
			"    x = safe code found in the package",
			"    y = total code found in the package",
			"    z = x as a percentage of y",
		)
	} else {
		lines = append(lines,
			"Metric output format: x/y",
			"    x = unsafe code used by the build",
			"    y = total unsafe code found in the package",
		)
	}

	lines = append(lines, "", "Symbols: ")
	for _, status := range statuses {
		lines = append(lines, fmt.Sprintf("    %s = %s", padSymbol(Symbol(status, format)), symbolDescriptions[status]))
	}
	return append(lines, "", p.Bold(format, HeaderLine()), "")
}
