package syntax

import "strings"

// NormalizeAttr strips the #[ ] / #![ ] wrapper and all whitespace.
func NormalizeAttr(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "#!")
	s = strings.TrimPrefix(s, "#")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	return strings.Join(strings.Fields(s), "")
}

// ForbidsUnsafe reports whether the inner attributes contain
// forbid(unsafe_code), alone or in a lint list.
func ForbidsUnsafe(attrs []Attr) bool {
	for _, a := range attrs {
		if !a.Inner {
			continue
		}
		if lintListContains(a.Text, "forbid", "unsafe_code") {
			return true
		}
	}
	return false
}

// IsTestFnAttr matches #[test], path-qualified variants like #[tokio::test]
// and #[cfg(test)] helpers.
func IsTestFnAttr(text string) bool {
	if text == "test" || IsTestModAttr(text) {
		return true
	}
	if strings.HasSuffix(text, "::test") {
		return true
	}
	return strings.Contains(text, "::test(")
}

// IsTestModAttr matches #[cfg(test)].
func IsTestModAttr(text string) bool {
	return text == "cfg(test)"
}

func lintListContains(text, level, lint string) bool {
	prefix := level + "("
	if !strings.HasPrefix(text, prefix) || !strings.HasSuffix(text, ")") {
		return false
	}
	inner := text[len(prefix) : len(text)-1]
	for _, item := range strings.Split(inner, ",") {
		if item == lint {
			return true
		}
	}
	return false
}
