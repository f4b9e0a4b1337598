package report

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const symbolWidth = 2

var symbolSets = map[OutputFormat][3]string{
	FormatUtf8:           {"🔒", "❓", "☢️"},
	FormatGitHubMarkdown: {":lock:", ":question:", ":radioactive:"},
}

var plainSymbols = [3]string{":)", "?", "!"}

// Symbol returns the glyph for status in format.
func Symbol(status DetectionStatus, format OutputFormat) string {
	set, ok := symbolSets[format]
	if !ok {
		set = plainSymbols
	}
	return set[status]
}

// padSymbol right-pads s to the symbol column width by display cells.
func padSymbol(s string) string {
	if w := lipgloss.Width(s); w < symbolWidth {
		return s + strings.Repeat(" ", symbolWidth-w)
	}
	return s
}
