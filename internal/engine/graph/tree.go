// # internal/engine/graph/tree.go
package graph

import (
	"strings"

	"geiger/internal/core/errors"
)

type DependencyKind int

const (
	KindNormal DependencyKind = iota
	KindBuild
	KindDev
)

// AllKinds lists the dependency kinds in tree order.
var AllKinds = []DependencyKind{KindNormal, KindBuild, KindDev}

func (k DependencyKind) String() string {
	switch k {
	case KindBuild:
		return "build"
	case KindDev:
		return "dev"
	default:
		return "normal"
	}
}

func ParseDependencyKind(s string) (DependencyKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal":
		return KindNormal, nil
	case "build":
		return KindBuild, nil
	case "dev":
		return KindDev, nil
	default:
		return 0, errors.Newf(errors.CodeValidationError, "unknown dependency kind %q", s)
	}
}

// TreeLine is one line of the dependency tree: either a package or the
// header of a build/dev dependency group.
type TreeLine interface {
	treeLine()
}

type PackageLine struct {
	ID    string
	Vines string
}

type ExtraDepsGroup struct {
	Kind  DependencyKind
	Vines string
}

func (PackageLine) treeLine()    {}
func (ExtraDepsGroup) treeLine() {}

// Charset selects the glyphs used to draw tree vines.
type Charset int

const (
	CharsetUTF8 Charset = iota
	CharsetASCII
)

type vineSymbols struct {
	down, tee, ell, right string
}

var (
	utf8Symbols  = vineSymbols{down: "│", tee: "├", ell: "└", right: "─"}
	asciiSymbols = vineSymbols{down: "|", tee: "|", ell: "`", right: "-"}
)

type TreeOptions struct {
	// All expands a package every time it appears instead of only the first.
	All     bool
	Charset Charset
	// Kinds restricts which dependency kinds of the root are shown. Empty
	// means all. Below the root normal dependencies are always followed,
	// build dependencies only when selected, dev dependencies never.
	Kinds []DependencyKind
}

// BuildTree walks the manifest depth-first from its root. Normal
// dependencies are direct children; build and dev dependencies follow under
// a group line. Dev dependencies are only shown for the root. A package already printed is repeated without its children
// unless All is set, and a package is never expanded inside itself.
func BuildTree(m *Manifest, opts TreeOptions) ([]TreeLine, error) {
	if _, ok := m.Package(m.Root); !ok {
		return nil, errors.AddContext(errors.New(errors.CodeNotFound, "root package not found"), errors.CtxPackage, m.Root)
	}

	b := &treeBuilder{
		manifest: m,
		all:      opts.All,
		symbols:  utf8Symbols,
		kinds:    opts.Kinds,
		visited:  make(map[string]bool),
		onPath:   make(map[string]bool),
	}
	if opts.Charset == CharsetASCII {
		b.symbols = asciiSymbols
	}
	if len(b.kinds) == 0 {
		b.kinds = AllKinds
	}

	b.walk(m.Root)
	return b.lines, nil
}

type treeBuilder struct {
	manifest *Manifest
	all      bool
	symbols  vineSymbols
	kinds    []DependencyKind

	visited   map[string]bool
	onPath    map[string]bool
	continues []bool
	lines     []TreeLine
}

func (b *treeBuilder) walk(id string) {
	b.lines = append(b.lines, PackageLine{ID: id, Vines: b.vines()})

	first := !b.visited[id]
	b.visited[id] = true
	if (!first && !b.all) || b.onPath[id] {
		return
	}

	b.onPath[id] = true
	defer delete(b.onPath, id)

	pkg, _ := b.manifest.Package(id)
	for _, kind := range b.edgeKinds(len(b.continues) == 0) {
		b.walkKind(kind, pkg.Deps(kind))
	}
}

// edgeKinds returns the dependency kinds followed out of a package. Dev
// dependencies of a dependency are never built, so only the root shows them.
func (b *treeBuilder) edgeKinds(root bool) []DependencyKind {
	if root {
		return b.kinds
	}
	kinds := []DependencyKind{KindNormal}
	for _, k := range b.kinds {
		if k == KindBuild {
			kinds = append(kinds, KindBuild)
		}
	}
	return kinds
}

func (b *treeBuilder) walkKind(kind DependencyKind, deps []string) {
	if len(deps) == 0 {
		return
	}
	if kind != KindNormal {
		b.lines = append(b.lines, ExtraDepsGroup{Kind: kind, Vines: b.vines()})
	}
	for i, dep := range deps {
		b.continues = append(b.continues, i < len(deps)-1)
		b.walk(dep)
		b.continues = b.continues[:len(b.continues)-1]
	}
}

func (b *treeBuilder) vines() string {
	if len(b.continues) == 0 {
		return ""
	}
	var sb strings.Builder
	last := len(b.continues) - 1
	for _, cont := range b.continues[:last] {
		if cont {
			sb.WriteString(b.symbols.down)
		} else {
			sb.WriteString(" ")
		}
		sb.WriteString("   ")
	}
	branch := b.symbols.ell
	if b.continues[last] {
		branch = b.symbols.tee
	}
	sb.WriteString(branch + b.symbols.right + b.symbols.right + " ")
	return sb.String()
}
