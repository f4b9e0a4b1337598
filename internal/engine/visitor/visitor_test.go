package visitor

import (
	"testing"

	"geiger/internal/engine/counter"
	"geiger/internal/engine/syntax"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(children ...syntax.Node) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprOther, Children: children}
}

func path() *syntax.Expr { return &syntax.Expr{Kind: syntax.ExprPath} }

func lit() *syntax.Expr { return &syntax.Expr{Kind: syntax.ExprLit} }

func unsafeBlock(children ...syntax.Node) *syntax.Expr {
	return &syntax.Expr{Kind: syntax.ExprUnsafeBlock, Children: children}
}

func TestScanFile_Empty(t *testing.T) {
	m := ScanFile(&syntax.File{}, IncludeTestsNo)
	assert.Equal(t, counter.FileMetrics{}, m)

	assert.Equal(t, counter.FileMetrics{}, ScanFile(nil, IncludeTestsNo))
}

func TestScanFile_ForbidsUnsafe(t *testing.T) {
	file := &syntax.File{
		Attrs: []syntax.Attr{{Text: "forbid(unsafe_code)", Inner: true}},
		Items: []syntax.Node{
			&syntax.Fn{Name: "f", Body: []syntax.Node{call(path(), lit())}},
		},
	}
	m := ScanFile(file, IncludeTestsNo)
	assert.True(t, m.ForbidsUnsafe)
	assert.Equal(t, counter.Count{Safe: 1}, m.Counters.Functions)
	assert.Equal(t, counter.Count{Safe: 1}, m.Counters.Exprs)
}

func TestScanFile_PathAndLiteralNotCounted(t *testing.T) {
	file := &syntax.File{Items: []syntax.Node{
		&syntax.Fn{Name: "f", Body: []syntax.Node{path(), lit(), lit()}},
	}}
	m := ScanFile(file, IncludeTestsNo)
	assert.Equal(t, counter.Count{}, m.Counters.Exprs)
}

func TestScanFile_UnsafeFnAttribution(t *testing.T) {
	// unsafe fn f() { g(x); unsafe { h(y) } }
	file := &syntax.File{Items: []syntax.Node{
		&syntax.Fn{Name: "f", Unsafe: true, Body: []syntax.Node{
			call(path(), path()),
			unsafeBlock(call(path(), path())),
		}},
		// fn safe() { k() }
		&syntax.Fn{Name: "safe", Body: []syntax.Node{call(path())}},
	}}
	m := ScanFile(file, IncludeTestsNo)
	assert.Equal(t, counter.Count{Safe: 1, Unsafe: 1}, m.Counters.Functions)
	assert.Equal(t, counter.Count{Safe: 1, Unsafe: 2}, m.Counters.Exprs)
}

func TestScanFile_UnsafeBlockInSafeFn(t *testing.T) {
	// fn f() { a(); unsafe { b(c()) }; d() }
	file := &syntax.File{Items: []syntax.Node{
		&syntax.Fn{Name: "f", Body: []syntax.Node{
			call(path()),
			unsafeBlock(call(path(), call(path()))),
			call(path()),
		}},
	}}
	m := ScanFile(file, IncludeTestsNo)
	assert.Equal(t, counter.Count{Safe: 1}, m.Counters.Functions)
	assert.Equal(t, counter.Count{Safe: 2, Unsafe: 2}, m.Counters.Exprs)
}

func TestScanFile_TraitAndImplDoNotPushScope(t *testing.T) {
	file := &syntax.File{Items: []syntax.Node{
		&syntax.Trait{Name: "Send2", Unsafe: true},
		&syntax.Impl{Unsafe: true, Items: []syntax.Node{
			&syntax.Method{Name: "m", Body: []syntax.Node{call()}},
			&syntax.Method{Name: "raw", Unsafe: true, Body: []syntax.Node{call()}},
		}},
		&syntax.Impl{Items: []syntax.Node{
			&syntax.Method{Name: "n"},
		}},
	}}
	m := ScanFile(file, IncludeTestsNo)
	assert.Equal(t, counter.Count{Unsafe: 1}, m.Counters.ItemTraits)
	assert.Equal(t, counter.Count{Safe: 1, Unsafe: 1}, m.Counters.ItemImpls)
	assert.Equal(t, counter.Count{Safe: 2, Unsafe: 1}, m.Counters.Methods)
	// The expression in the safe method of an unsafe impl stays safe.
	assert.Equal(t, counter.Count{Safe: 1, Unsafe: 1}, m.Counters.Exprs)
}

func TestScanFile_TestCodeSkipping(t *testing.T) {
	file := &syntax.File{
		Attrs: []syntax.Attr{{Text: "forbid(unsafe_code)", Inner: true}},
		Items: []syntax.Node{
			&syntax.Fn{Name: "it_works", IsTest: true, Body: []syntax.Node{unsafeBlock(call())}},
			&syntax.Mod{Name: "tests", Inline: true, IsTest: true, Items: []syntax.Node{
				&syntax.Fn{Name: "helper", Unsafe: true},
			}},
			&syntax.Mod{Name: "inner", Inline: true, Items: []syntax.Node{
				&syntax.Fn{Name: "real"},
			}},
		},
	}

	without := ScanFile(file, IncludeTestsNo)
	assert.Equal(t, counter.Count{Safe: 1}, without.Counters.Functions)
	assert.Equal(t, counter.Count{}, without.Counters.Exprs)
	assert.True(t, without.ForbidsUnsafe)

	with := ScanFile(file, IncludeTestsYes)
	assert.Equal(t, counter.Count{Safe: 2, Unsafe: 1}, with.Counters.Functions)
	assert.Equal(t, counter.Count{Unsafe: 1}, with.Counters.Exprs)
	assert.True(t, with.ForbidsUnsafe)
}

func TestScanFile_NestedFnInsideUnsafeFn(t *testing.T) {
	// unsafe fn outer() { fn inner() { x() } }
	// The inner fn counts as safe by its own marker, but its expressions
	// are still inside the outer unsafe scope.
	file := &syntax.File{Items: []syntax.Node{
		&syntax.Fn{Name: "outer", Unsafe: true, Body: []syntax.Node{
			&syntax.Fn{Name: "inner", Body: []syntax.Node{call(path())}},
		}},
	}}
	m := ScanFile(file, IncludeTestsNo)
	assert.Equal(t, counter.Count{Safe: 1, Unsafe: 1}, m.Counters.Functions)
	assert.Equal(t, counter.Count{Unsafe: 1}, m.Counters.Exprs)
}

func TestVisitor_DepthReturnsToZero(t *testing.T) {
	file := &syntax.File{Items: []syntax.Node{
		&syntax.Fn{Unsafe: true, Body: []syntax.Node{
			unsafeBlock(unsafeBlock(call())),
		}},
		&syntax.Impl{Items: []syntax.Node{
			&syntax.Method{Unsafe: true, Body: []syntax.Node{unsafeBlock()}},
		}},
	}}
	v := New(IncludeTestsYes)
	v.VisitFile(file)
	assert.Equal(t, 0, v.Depth())
	assert.Equal(t, counter.Count{Unsafe: 1}, v.Metrics().Counters.Exprs)
}

func TestVisitor_ReleaseIsIdempotent(t *testing.T) {
	v := New(IncludeTestsNo)
	release := v.enterUnsafeScope()
	require.Equal(t, 1, v.Depth())
	release()
	release()
	assert.Equal(t, 0, v.Depth())
}

func TestVisitor_DepthRestoredOnPanic(t *testing.T) {
	v := New(IncludeTestsNo)
	func() {
		defer func() { _ = recover() }()
		// The deferred release runs while the panic unwinds.
		release := v.enterUnsafeScope()
		defer release()
		panic("boom")
	}()
	assert.Equal(t, 0, v.Depth())
}

func TestScanFile_Idempotent(t *testing.T) {
	file := &syntax.File{Items: []syntax.Node{
		&syntax.Fn{Unsafe: true, Body: []syntax.Node{call(unsafeBlock(call()))}},
		&syntax.Trait{Items: []syntax.Node{call()}},
	}}
	first := ScanFile(file, IncludeTestsNo)
	second := ScanFile(file, IncludeTestsNo)
	assert.Equal(t, first, second)
}
