// Package syntax is the language-neutral tree the unsafe visitor walks.
//
// The node set is closed: only the types declared here implement Node.
// Parsers translate their concrete trees into this shape, dropping
// everything the visitor has no rule for and keeping the children of
// such nodes in place.
package syntax

type Node interface {
	node()
}

type ExprKind int

const (
	ExprOther ExprKind = iota
	ExprPath
	ExprLit
	ExprUnsafeBlock
)

// File is the root of one parsed source file.
type File struct {
	Path  string
	Attrs []Attr
	Items []Node
}

// Attr is an attribute in normalized text form, e.g. "forbid(unsafe_code)".
type Attr struct {
	Text  string
	Inner bool
}

// Fn is a free function.
type Fn struct {
	Name   string
	Unsafe bool
	IsTest bool
	Body   []Node
}

type Expr struct {
	Kind     ExprKind
	Children []Node
}

// Mod is a module item. Inline is false for `mod name;` declarations,
// whose contents live in another file; PathAttr carries a #[path = "..."]
// override for those.
type Mod struct {
	Name     string
	Inline   bool
	IsTest   bool
	PathAttr string
	Items    []Node
}

type Trait struct {
	Name   string
	Unsafe bool
	Items  []Node
}

type Impl struct {
	Unsafe bool
	Items  []Node
}

// Method is a function inside an impl block.
type Method struct {
	Name   string
	Unsafe bool
	Body   []Node
}

func (*File) node()   {}
func (*Fn) node()     {}
func (*Expr) node()   {}
func (*Mod) node()    {}
func (*Trait) node()  {}
func (*Impl) node()   {}
func (*Method) node() {}
