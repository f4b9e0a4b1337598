// # internal/engine/parser/pool_test.go
package parser

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParserPool_GetPut(t *testing.T) {
	pool := NewParserPool(RustLanguage())

	sp := pool.Get()
	require.NotNil(t, sp)
	assert.Equal(t, 1, pool.Leased())

	pool.Put(sp)
	assert.Equal(t, 0, pool.Leased())
}

func TestParserPool_PutNil(t *testing.T) {
	pool := NewParserPool(RustLanguage())
	pool.Put(nil)
	assert.Equal(t, 0, pool.Leased())
}

func TestParserPool_ParsesValidRust(t *testing.T) {
	pool := NewParserPool(RustLanguage())

	sp := pool.Get()
	defer pool.Put(sp)

	tree := sp.Parse([]byte("fn main() {}\n"), nil)
	require.NotNil(t, tree)
	defer tree.Close()

	root := tree.RootNode()
	require.NotNil(t, root)
	assert.False(t, root.HasError())
	assert.Equal(t, "source_file", root.Kind())
}

func TestParserPool_ConcurrentAccess(t *testing.T) {
	pool := NewParserPool(RustLanguage())

	const goroutines = 16
	const iters = 25

	var wg sync.WaitGroup
	errs := make(chan string, goroutines*iters)
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < iters; i++ {
				sp := pool.Get()
				tree := sp.Parse([]byte("unsafe fn f() { g() }\n"), nil)
				if tree == nil {
					errs <- "nil tree"
					pool.Put(sp)
					continue
				}
				if tree.RootNode().HasError() {
					errs <- "unexpected parse error"
				}
				tree.Close()
				pool.Put(sp)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
	assert.Equal(t, 0, pool.Leased())
}
