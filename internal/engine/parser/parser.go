// # internal/engine/parser/parser.go

// Package parser turns Rust source files into the syntax tree consumed by
// the unsafe visitor.
package parser

import (
	"path/filepath"
	"strings"
	"time"

	"geiger/internal/core/errors"
	"geiger/internal/engine/syntax"
	"geiger/internal/shared/observability"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
)

const rustExtension = ".rs"

func RustLanguage() *sitter.Language {
	return sitter.NewLanguage(tree_sitter_rust.Language())
}

type Parser struct {
	pool *ParserPool
}

func NewParser() *Parser {
	return &Parser{pool: NewParserPool(RustLanguage())}
}

// IsSupportedPath reports whether path is a Rust source file.
func (p *Parser) IsSupportedPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), rustExtension)
}

// ParseFile parses content as Rust. Sources with syntax errors are
// rejected rather than half-counted.
func (p *Parser) ParseFile(path string, content []byte) (*syntax.File, error) {
	start := time.Now()
	defer func() {
		observability.ParseDuration.Observe(time.Since(start).Seconds())
	}()

	sp := p.pool.Get()
	defer p.pool.Put(sp)

	tree := sp.Parse(content, nil)
	if tree == nil {
		return nil, errors.AddContext(errors.New(errors.CodeParseFailed, "parse failed"), errors.CtxPath, path)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.AddContext(errors.New(errors.CodeParseFailed, "source contains syntax errors"), errors.CtxPath, path)
	}

	c := &rustConverter{source: content}
	return c.convertFile(root, path), nil
}
