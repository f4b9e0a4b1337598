// Package report renders scan results as the dependency tree table.
package report

import (
	"strings"

	"geiger/internal/core/errors"
	"geiger/internal/engine/graph"
)

type OutputFormat int

const (
	FormatAscii OutputFormat = iota
	FormatUtf8
	FormatGitHubMarkdown
	FormatRatio
	FormatCode
)

var formatNames = map[OutputFormat]string{
	FormatAscii:          "ascii",
	FormatUtf8:           "utf8",
	FormatGitHubMarkdown: "github-markdown",
	FormatRatio:          "ratio",
	FormatCode:           "code",
}

func (f OutputFormat) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return "unknown"
}

func ParseOutputFormat(s string) (OutputFormat, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == s {
			return f, nil
		}
	}
	return 0, errors.Newf(errors.CodeValidationError, "unknown output format %q (want ascii, utf8, github-markdown, ratio or code)", s)
}

// SafeRatio reports whether cells show safe ratios instead of unsafe counts.
func (f OutputFormat) SafeRatio() bool {
	return f == FormatRatio || f == FormatCode
}

// TreeCharset is the vine charset matching the format.
func (f OutputFormat) TreeCharset() graph.Charset {
	switch f {
	case FormatUtf8, FormatGitHubMarkdown:
		return graph.CharsetUTF8
	default:
		return graph.CharsetASCII
	}
}
