package parser

import (
	"strings"

	"geiger/internal/engine/syntax"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type itemContext int

const (
	ctxItems itemContext = iota
	ctxImpl
	ctxTrait
)

var pathKinds = map[string]bool{
	"identifier":        true,
	"scoped_identifier": true,
	"generic_function":  true,
	"self":              true,
	"super":             true,
	"crate":             true,
	"metavariable":      true,
}

var literalKinds = map[string]bool{
	"string_literal":     true,
	"raw_string_literal": true,
	"char_literal":       true,
	"boolean_literal":    true,
	"integer_literal":    true,
	"float_literal":      true,
	"negative_literal":   true,
}

var expressionKinds = map[string]bool{
	"array_expression":         true,
	"assignment_expression":    true,
	"async_block":              true,
	"await_expression":         true,
	"binary_expression":        true,
	"break_expression":         true,
	"closure_expression":       true,
	"compound_assignment_expr": true,
	"const_block":              true,
	"continue_expression":      true,
	"field_expression":         true,
	"for_expression":           true,
	"gen_block":                true,
	"if_expression":            true,
	"index_expression":         true,
	"let_chain":                true,
	"let_condition":            true,
	"loop_expression":          true,
	"match_expression":         true,
	"parenthesized_expression": true,
	"range_expression":         true,
	"reference_expression":     true,
	"return_expression":        true,
	"struct_expression":        true,
	"try_block":                true,
	"try_expression":           true,
	"tuple_expression":         true,
	"type_cast_expression":     true,
	"unary_expression":         true,
	"unit_expression":          true,
	"while_expression":         true,
	"yield_expression":         true,
}

// Blocks directly under these nodes are bodies, not block expressions.
var bodyBlockParents = map[string]bool{
	"function_item":    true,
	"if_expression":    true,
	"while_expression": true,
	"loop_expression":  true,
	"for_expression":   true,
	"unsafe_block":     true,
	"async_block":      true,
	"const_block":      true,
	"try_block":        true,
	"gen_block":        true,
}

var skippedKinds = map[string]bool{
	"attribute_item":          true,
	"inner_attribute_item":    true,
	"line_comment":            true,
	"block_comment":           true,
	"token_tree":              true,
	"macro_definition":        true,
	"use_declaration":         true,
	"function_signature_item": true,
}

type rustConverter struct {
	source []byte
}

func (c *rustConverter) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return string(c.source[node.StartByte():node.EndByte()])
}

func (c *rustConverter) fieldText(node *sitter.Node, field string) string {
	return c.text(node.ChildByFieldName(field))
}

func (c *rustConverter) convertFile(root *sitter.Node, path string) *syntax.File {
	file := &syntax.File{Path: path}
	for i := uint(0); i < root.NamedChildCount(); i++ {
		child := root.NamedChild(i)
		if child.Kind() == "inner_attribute_item" {
			file.Attrs = append(file.Attrs, syntax.Attr{
				Text:  syntax.NormalizeAttr(c.text(child)),
				Inner: true,
			})
		}
	}
	file.Items = c.convertChildren(root, ctxItems)
	return file
}

// convertChildren converts the named children of parent. Outer attributes
// are siblings in the tree-sitter grammar, so they are collected here and
// handed to the item that follows them.
func (c *rustConverter) convertChildren(parent *sitter.Node, ctx itemContext) []syntax.Node {
	var out []syntax.Node
	var attrs []string
	for i := uint(0); i < parent.NamedChildCount(); i++ {
		child := parent.NamedChild(i)
		switch child.Kind() {
		case "attribute_item":
			attrs = append(attrs, syntax.NormalizeAttr(c.text(child)))
			continue
		case "line_comment", "block_comment":
			continue
		}
		out = append(out, c.convertNode(parent, child, ctx, attrs)...)
		attrs = nil
	}
	return out
}

func (c *rustConverter) convertNode(parent, node *sitter.Node, ctx itemContext, attrs []string) []syntax.Node {
	kind := node.Kind()
	if skippedKinds[kind] {
		return nil
	}

	switch kind {
	case "function_item":
		return c.convertFunction(node, ctx, attrs)
	case "impl_item":
		return []syntax.Node{&syntax.Impl{
			Unsafe: hasToken(node, "unsafe"),
			Items:  c.convertBody(node, ctxImpl),
		}}
	case "trait_item":
		return []syntax.Node{&syntax.Trait{
			Name:   c.fieldText(node, "name"),
			Unsafe: hasToken(node, "unsafe"),
			Items:  c.convertBody(node, ctxTrait),
		}}
	case "mod_item":
		return []syntax.Node{c.convertMod(node, attrs)}
	case "unsafe_block":
		return []syntax.Node{&syntax.Expr{
			Kind:     syntax.ExprUnsafeBlock,
			Children: c.convertChildren(node, ctxItems),
		}}
	case "macro_invocation":
		// Item-position macros are items, not expressions. Macro bodies
		// are opaque either way.
		if isItemList(parent) || c.isBracedStatementMacro(parent, node) {
			return nil
		}
		return []syntax.Node{&syntax.Expr{Kind: syntax.ExprOther}}
	case "call_expression":
		return []syntax.Node{c.convertCall(node)}
	case "block":
		children := c.convertChildren(node, ctxItems)
		if bodyBlockParents[parent.Kind()] {
			return children
		}
		return []syntax.Node{&syntax.Expr{Kind: syntax.ExprOther, Children: children}}
	}

	switch {
	case pathKinds[kind]:
		return []syntax.Node{&syntax.Expr{Kind: syntax.ExprPath}}
	case literalKinds[kind]:
		return []syntax.Node{&syntax.Expr{Kind: syntax.ExprLit}}
	case expressionKinds[kind]:
		return []syntax.Node{&syntax.Expr{
			Kind:     syntax.ExprOther,
			Children: c.convertChildren(node, ctxItems),
		}}
	}
	return c.convertChildren(node, ctxItems)
}

func (c *rustConverter) convertBody(node *sitter.Node, ctx itemContext) []syntax.Node {
	body := node.ChildByFieldName("body")
	if body == nil {
		return nil
	}
	return c.convertChildren(body, ctx)
}

func (c *rustConverter) convertFunction(node *sitter.Node, ctx itemContext, attrs []string) []syntax.Node {
	name := c.fieldText(node, "name")
	isUnsafe := hasModifier(node, "unsafe")
	var body []syntax.Node
	if b := node.ChildByFieldName("body"); b != nil {
		body = c.convertNode(node, b, ctxItems, nil)
	}

	switch ctx {
	case ctxImpl:
		return []syntax.Node{&syntax.Method{Name: name, Unsafe: isUnsafe, Body: body}}
	case ctxTrait:
		// Provided trait methods are neither functions nor impl methods;
		// only their bodies count.
		return body
	default:
		return []syntax.Node{&syntax.Fn{
			Name:   name,
			Unsafe: isUnsafe,
			IsTest: anyAttr(attrs, syntax.IsTestFnAttr),
			Body:   body,
		}}
	}
}

func (c *rustConverter) convertMod(node *sitter.Node, attrs []string) *syntax.Mod {
	m := &syntax.Mod{
		Name:     c.fieldText(node, "name"),
		IsTest:   anyAttr(attrs, syntax.IsTestModAttr),
		PathAttr: pathAttr(attrs),
	}
	if body := node.ChildByFieldName("body"); body != nil {
		m.Inline = true
		m.Items = c.convertChildren(body, ctxItems)
	}
	return m
}

// convertCall folds `recv.method(args)` into a single expression the way
// method-call syntax is one expression, keeping the receiver as a child.
func (c *rustConverter) convertCall(node *sitter.Node) *syntax.Expr {
	e := &syntax.Expr{Kind: syntax.ExprOther}
	if fn := node.ChildByFieldName("function"); fn != nil {
		if recv := methodReceiver(fn); recv != nil {
			e.Children = append(e.Children, c.convertNode(fn, recv, ctxItems, nil)...)
		} else {
			e.Children = append(e.Children, c.convertNode(node, fn, ctxItems, nil)...)
		}
	}
	if args := node.ChildByFieldName("arguments"); args != nil {
		e.Children = append(e.Children, c.convertChildren(args, ctxItems)...)
	}
	return e
}

func methodReceiver(fn *sitter.Node) *sitter.Node {
	if fn.Kind() == "generic_function" {
		inner := fn.ChildByFieldName("function")
		if inner == nil {
			return nil
		}
		fn = inner
	}
	if fn.Kind() != "field_expression" {
		return nil
	}
	return fn.ChildByFieldName("value")
}

// isBracedStatementMacro reports whether node is a `name! { ... }` macro in
// statement position. Those expand to items, like `thread_local!`.
func (c *rustConverter) isBracedStatementMacro(parent, node *sitter.Node) bool {
	if parent == nil {
		return false
	}
	switch parent.Kind() {
	case "block", "expression_statement":
	default:
		return false
	}
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "token_tree" {
			return strings.HasPrefix(c.text(child), "{")
		}
	}
	return false
}

func isItemList(node *sitter.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind() {
	case "source_file", "declaration_list":
		return true
	}
	return false
}

// hasToken reports whether node has a direct anonymous child token of kind.
func hasToken(node *sitter.Node, kind string) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)
		if !child.IsNamed() && child.Kind() == kind {
			return true
		}
	}
	return false
}

func hasModifier(fn *sitter.Node, modifier string) bool {
	for i := uint(0); i < fn.ChildCount(); i++ {
		child := fn.Child(i)
		if child.Kind() == "function_modifiers" && hasToken(child, modifier) {
			return true
		}
	}
	return false
}

func anyAttr(attrs []string, match func(string) bool) bool {
	for _, a := range attrs {
		if match(a) {
			return true
		}
	}
	return false
}

func pathAttr(attrs []string) string {
	for _, a := range attrs {
		if value, ok := strings.CutPrefix(a, "path="); ok {
			return strings.Trim(value, `"`)
		}
	}
	return ""
}
