package scan

import (
	"path"
	"strings"

	"geiger/internal/engine/syntax"
	"geiger/internal/engine/visitor"
)

// ModDecl is an out-of-line `mod name;` declaration. Parents lists the
// inline modules enclosing it.
type ModDecl struct {
	Name     string
	PathAttr string
	Parents  []string
}

func collectModDecls(items []syntax.Node, parents []string, include visitor.IncludeTests) []ModDecl {
	var out []ModDecl
	for _, item := range items {
		m, ok := item.(*syntax.Mod)
		if !ok {
			continue
		}
		if m.IsTest && include == visitor.IncludeTestsNo {
			continue
		}
		if !m.Inline {
			out = append(out, ModDecl{
				Name:     m.Name,
				PathAttr: m.PathAttr,
				Parents:  append([]string(nil), parents...),
			})
			continue
		}
		nested := append(append([]string(nil), parents...), m.Name)
		out = append(out, collectModDecls(m.Items, nested, include)...)
	}
	return out
}

// UsedFiles follows module declarations from the entry point and returns
// every scanned file reachable that way. Files outside the module tree
// (tests/, benches/, examples/, dead files) are not used.
func (ps *PackageScan) UsedFiles() UsedFiles {
	used := make(UsedFiles)
	if ps.Entry == "" {
		return used
	}
	if _, ok := ps.Metrics[ps.Entry]; !ok {
		return used
	}

	queue := []string{ps.Entry}
	used[ps.Entry] = struct{}{}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, decl := range ps.modules[current] {
			target, ok := ps.resolveMod(current, decl)
			if !ok || used.Contains(target) {
				continue
			}
			used[target] = struct{}{}
			queue = append(queue, target)
		}
	}
	return used
}

func (ps *PackageScan) resolveMod(file string, decl ModDecl) (string, bool) {
	if decl.PathAttr != "" {
		base := path.Dir(file)
		if len(decl.Parents) > 0 {
			base = path.Join(moduleDir(file, ps.Entry), path.Join(decl.Parents...))
		}
		target := path.Clean(path.Join(base, decl.PathAttr))
		_, ok := ps.Metrics[target]
		return target, ok
	}

	base := path.Join(moduleDir(file, ps.Entry), path.Join(decl.Parents...))
	for _, candidate := range []string{
		path.Join(base, decl.Name+".rs"),
		path.Join(base, decl.Name, "mod.rs"),
	} {
		if _, ok := ps.Metrics[candidate]; ok {
			return candidate, true
		}
	}
	return "", false
}

// moduleDir is the directory holding the children of the module defined by
// file: its own directory for crate roots and mod.rs files, otherwise a
// directory named after the file stem.
func moduleDir(file, entry string) string {
	dir := path.Dir(file)
	base := path.Base(file)
	if file == entry || base == "mod.rs" || base == "lib.rs" || base == "main.rs" {
		return dir
	}
	return path.Join(dir, strings.TrimSuffix(base, ".rs"))
}
