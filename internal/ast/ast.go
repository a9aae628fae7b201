// Package ast defines the IR-level syntax tree the compiler middle end
// operates on. The frontend parser runs as a separate tool and hands over
// units as JSON documents; internal/ir decodes them into these nodes.
//
// The tree is intentionally narrow: it models the call-expression boundary
// (function calls, static calls, instantiations and their operands), not the
// full surface language.
package ast

// Position is a source coordinate carried over from the frontend IR.
// Line and Char are 1-based; a zero Position means "unknown".
type Position struct {
	File string
	Line int
	Char int
}

// Node is the base interface for all AST nodes.
type Node interface {
	Pos() Position
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a Node that appears in a function body.
type Statement interface {
	Node
	statementNode()
}

// Unit is the root node of a single compiled IR unit (one source file).
type Unit struct {
	File      string // Frontend source path, used in diagnostics and headers
	Namespace string // Joined namespace ("" = global namespace)
	Uses      []*UseStatement
	Functions []*FunctionDecl
}

// UseStatement registers a namespace alias for the unit.
// "use Vendor\Collections as Coll" carries Alias "Coll";
// "use Vendor\Collections" carries Alias "" (defaults to the last segment).
type UseStatement struct {
	Position Position
	Target   string
	Alias    string
}

func (us *UseStatement) Pos() Position {
	if us == nil {
		return Position{}
	}
	return us.Position
}

// FunctionDecl is a free function defined by the unit.
type FunctionDecl struct {
	Position Position
	Name     string
	Params   []string
	Body     []Statement
}

func (fd *FunctionDecl) Pos() Position {
	if fd == nil {
		return Position{}
	}
	return fd.Position
}

// ClassName is a class or interface reference as written at a call site.
// Raw is the identifier from the source; FQN is filled in by the resolver,
// exactly once, and is never re-resolved afterwards.
type ClassName struct {
	Position Position
	Raw      string
	FQN      string
}

func (cn *ClassName) Pos() Position {
	if cn == nil {
		return Position{}
	}
	return cn.Position
}

// Resolved reports whether the resolver has produced the canonical name.
func (cn *ClassName) Resolved() bool {
	return cn != nil && cn.FQN != ""
}
