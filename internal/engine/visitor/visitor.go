// Package visitor counts safe and unsafe constructs in a syntax tree.
package visitor

import (
	"geiger/internal/engine/counter"
	"geiger/internal/engine/syntax"
)

type IncludeTests bool

const (
	IncludeTestsNo  IncludeTests = false
	IncludeTestsYes IncludeTests = true
)

// Visitor accumulates metrics for a single file. It is not safe for
// concurrent use; create one per file.
type Visitor struct {
	includeTests IncludeTests
	metrics      counter.FileMetrics

	// unsafeScopes is the number of enclosing unsafe scopes. An unsafe fn
	// containing an unsafe block puts the block body at depth 2.
	unsafeScopes int
}

func New(include IncludeTests) *Visitor {
	return &Visitor{includeTests: include}
}

// ScanFile visits file with a fresh Visitor and returns its metrics.
func ScanFile(file *syntax.File, include IncludeTests) counter.FileMetrics {
	v := New(include)
	v.VisitFile(file)
	return v.Metrics()
}

func (v *Visitor) Metrics() counter.FileMetrics {
	return v.metrics
}

// Depth is the current unsafe scope depth.
func (v *Visitor) Depth() int {
	return v.unsafeScopes
}

// enterUnsafeScope increments the depth and returns the matching release.
// Callers defer the release so panics unwind the depth as well.
func (v *Visitor) enterUnsafeScope() func() {
	v.unsafeScopes++
	released := false
	return func() {
		if released {
			return
		}
		released = true
		v.unsafeScopes--
	}
}

func (v *Visitor) VisitFile(file *syntax.File) {
	if file == nil {
		return
	}
	v.metrics.ForbidsUnsafe = syntax.ForbidsUnsafe(file.Attrs)
	v.visitAll(file.Items)
}

func (v *Visitor) visitAll(nodes []syntax.Node) {
	for _, n := range nodes {
		v.visit(n)
	}
}

func (v *Visitor) visit(n syntax.Node) {
	switch n := n.(type) {
	case *syntax.Fn:
		v.visitFn(n)
	case *syntax.Expr:
		v.visitExpr(n)
	case *syntax.Mod:
		v.visitMod(n)
	case *syntax.Trait:
		v.metrics.Counters.ItemTraits.Record(n.Unsafe)
		v.visitAll(n.Items)
	case *syntax.Impl:
		v.metrics.Counters.ItemImpls.Record(n.Unsafe)
		v.visitAll(n.Items)
	case *syntax.Method:
		v.visitMethod(n)
	case *syntax.File:
		// Nested files do not occur in parsed input; treat as a container.
		v.visitAll(n.Items)
	}
}

func (v *Visitor) visitFn(fn *syntax.Fn) {
	if v.includeTests == IncludeTestsNo && fn.IsTest {
		return
	}
	if fn.Unsafe {
		defer v.enterUnsafeScope()()
	}
	v.metrics.Counters.Functions.Record(fn.Unsafe)
	v.visitAll(fn.Body)
}

func (v *Visitor) visitExpr(e *syntax.Expr) {
	switch e.Kind {
	case syntax.ExprUnsafeBlock:
		release := v.enterUnsafeScope()
		defer release()
		v.visitAll(e.Children)
	case syntax.ExprPath, syntax.ExprLit:
		// Not counted: `f(x)` is one expression, not three.
	default:
		v.metrics.Counters.Exprs.Record(v.unsafeScopes > 0)
		v.visitAll(e.Children)
	}
}

func (v *Visitor) visitMod(m *syntax.Mod) {
	if v.includeTests == IncludeTestsNo && m.IsTest {
		return
	}
	v.visitAll(m.Items)
}

func (v *Visitor) visitMethod(m *syntax.Method) {
	if m.Unsafe {
		defer v.enterUnsafeScope()()
	}
	v.metrics.Counters.Methods.Record(m.Unsafe)
	v.visitAll(m.Body)
}
