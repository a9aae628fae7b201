// Package ir decodes frontend IR documents into the compiler's syntax
// tree. The frontend serializes one unit per file as JSON; this package
// owns the schema and rejects documents the rest of the pipeline cannot
// trust.
package ir

import (
	"encoding/json"

	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/diagnostics"
	"github.com/zetalang/zeta/internal/resolver"
)

// Version is the IR schema version this compiler accepts.
const Version = 1

type jsonUnit struct {
	Version   int             `json:"version"`
	File      string          `json:"file,omitempty"`
	Namespace string          `json:"namespace,omitempty"`
	Uses      []*jsonUse      `json:"uses,omitempty"`
	Functions []*jsonFunction `json:"functions,omitempty"`
}

type jsonUse struct {
	Target string `json:"target"`
	Alias  string `json:"alias,omitempty"`
	Line   int    `json:"line,omitempty"`
	Char   int    `json:"char,omitempty"`
}

type jsonFunction struct {
	Name   string      `json:"name"`
	Params []string    `json:"params,omitempty"`
	Body   []*jsonNode `json:"body,omitempty"`
	Line   int         `json:"line,omitempty"`
	Char   int         `json:"char,omitempty"`
}

// jsonNode is the single node shape used for both statements and
// expressions; Kind discriminates. Literal payloads are pointers so an
// absent field is distinguishable from a zero value.
type jsonNode struct {
	Kind   string      `json:"kind"`
	Line   int         `json:"line,omitempty"`
	Char   int         `json:"char,omitempty"`
	Name   string      `json:"name,omitempty"`
	Target string      `json:"target,omitempty"`
	Class  string      `json:"class,omitempty"`
	Method string      `json:"method,omitempty"`
	Value  *jsonNode   `json:"value,omitempty"`
	Args   []*jsonNode `json:"args,omitempty"`
	Int    *int64      `json:"int,omitempty"`
	Double *float64    `json:"double,omitempty"`
	Str    *string     `json:"str,omitempty"`
	Bool   *bool       `json:"bool,omitempty"`
}

type decoder struct {
	file string
}

// DecodeUnit parses one IR document. path is the document's disk path,
// used in diagnostics until the document names its own source file. All
// returned errors are *diagnostics.DiagnosticError values.
func DecodeUnit(data []byte, path string) (*ast.Unit, error) {
	var raw jsonUnit
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, diagnostics.NewErrorf(diagnostics.ErrI002,
			ast.Position{File: path}, "malformed IR document: %v", err)
	}

	file := raw.File
	if file == "" {
		file = path
	}
	if raw.Version != Version {
		return nil, diagnostics.NewErrorf(diagnostics.ErrI002,
			ast.Position{File: file}, "unsupported IR version %d, expected %d", raw.Version, Version)
	}
	// An empty namespace is the global namespace; anything else must be a
	// well-formed name, or resolution would qualify references with it
	// verbatim.
	if raw.Namespace != "" && !resolver.ValidName(raw.Namespace) {
		return nil, diagnostics.NewErrorf(diagnostics.ErrI004,
			ast.Position{File: file}, "malformed namespace %q", raw.Namespace)
	}

	d := &decoder{file: file}
	unit := &ast.Unit{File: file, Namespace: raw.Namespace}

	for i, use := range raw.Uses {
		decoded, err := d.decodeUse(use, i)
		if err != nil {
			return nil, err
		}
		unit.Uses = append(unit.Uses, decoded)
	}
	for i, fn := range raw.Functions {
		decoded, err := d.decodeFunction(fn, i)
		if err != nil {
			return nil, err
		}
		unit.Functions = append(unit.Functions, decoded)
	}
	return unit, nil
}

func (d *decoder) pos(line, char int) ast.Position {
	return ast.Position{File: d.file, Line: line, Char: char}
}

func (d *decoder) decodeUse(use *jsonUse, index int) (*ast.UseStatement, error) {
	if use == nil || use.Target == "" {
		return nil, diagnostics.NewErrorf(diagnostics.ErrI004,
			ast.Position{File: d.file}, "uses[%d]: target is required", index)
	}
	return &ast.UseStatement{
		Position: d.pos(use.Line, use.Char),
		Target:   use.Target,
		Alias:    use.Alias,
	}, nil
}

func (d *decoder) decodeFunction(fn *jsonFunction, index int) (*ast.FunctionDecl, error) {
	if fn == nil || fn.Name == "" {
		return nil, diagnostics.NewErrorf(diagnostics.ErrI004,
			ast.Position{File: d.file}, "functions[%d]: name is required", index)
	}
	pos := d.pos(fn.Line, fn.Char)

	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		if p == "" {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos,
				"function %s: empty parameter name", fn.Name)
		}
		if seen[p] {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos,
				"function %s: duplicate parameter %q", fn.Name, p)
		}
		seen[p] = true
	}

	decl := &ast.FunctionDecl{Position: pos, Name: fn.Name, Params: fn.Params}
	for i, stmt := range fn.Body {
		decoded, err := d.decodeStmt(stmt, fn.Name, i)
		if err != nil {
			return nil, err
		}
		decl.Body = append(decl.Body, decoded)
	}
	return decl, nil
}

func (d *decoder) decodeStmt(n *jsonNode, fnName string, index int) (ast.Statement, error) {
	if n == nil {
		return nil, diagnostics.NewErrorf(diagnostics.ErrI004,
			ast.Position{File: d.file}, "function %s: body[%d] is null", fnName, index)
	}
	pos := d.pos(n.Line, n.Char)

	switch n.Kind {
	case "assign":
		if n.Target == "" {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "assign: target is required")
		}
		value, err := d.decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.AssignStmt{Position: pos, Target: n.Target, Value: value}, nil
	case "expr":
		value, err := d.decodeExpr(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.ExprStmt{Position: pos, Value: value}, nil
	case "return":
		stmt := &ast.ReturnStmt{Position: pos}
		if n.Value != nil {
			value, err := d.decodeExpr(n.Value)
			if err != nil {
				return nil, err
			}
			stmt.Value = value
		}
		return stmt, nil
	default:
		return nil, diagnostics.NewErrorf(diagnostics.ErrI003, pos,
			"unknown statement kind %q", n.Kind)
	}
}

func (d *decoder) decodeExpr(n *jsonNode) (ast.Expression, error) {
	if n == nil {
		return nil, diagnostics.NewErrorf(diagnostics.ErrI004,
			ast.Position{File: d.file}, "missing expression")
	}
	pos := d.pos(n.Line, n.Char)

	switch n.Kind {
	case "var":
		if n.Name == "" {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "var: name is required")
		}
		return &ast.Variable{Position: pos, Name: n.Name}, nil
	case "int":
		if n.Int == nil {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "int: value is required")
		}
		return &ast.IntLit{Position: pos, Value: *n.Int}, nil
	case "double":
		if n.Double == nil {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "double: value is required")
		}
		return &ast.DoubleLit{Position: pos, Value: *n.Double}, nil
	case "string":
		if n.Str == nil {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "string: value is required")
		}
		return &ast.StringLit{Position: pos, Value: *n.Str}, nil
	case "bool":
		if n.Bool == nil {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "bool: value is required")
		}
		return &ast.BoolLit{Position: pos, Value: *n.Bool}, nil
	case "null":
		return &ast.NullLit{Position: pos}, nil
	case "call":
		if n.Name == "" {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "call: name is required")
		}
		args, err := d.decodeArgs(n.Args)
		if err != nil {
			return nil, err
		}
		return &ast.FunctionCall{Position: pos, Name: n.Name, Args: args}, nil
	case "static_call":
		if n.Class == "" || n.Method == "" {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "static_call: class and method are required")
		}
		args, err := d.decodeArgs(n.Args)
		if err != nil {
			return nil, err
		}
		return &ast.StaticCall{
			Position: pos,
			Class:    &ast.ClassName{Position: pos, Raw: n.Class},
			Method:   n.Method,
			Args:     args,
		}, nil
	case "new":
		if n.Class == "" {
			return nil, diagnostics.NewErrorf(diagnostics.ErrI004, pos, "new: class is required")
		}
		args, err := d.decodeArgs(n.Args)
		if err != nil {
			return nil, err
		}
		return &ast.NewInstance{
			Position: pos,
			Class:    &ast.ClassName{Position: pos, Raw: n.Class},
			Args:     args,
		}, nil
	default:
		return nil, diagnostics.NewErrorf(diagnostics.ErrI003, pos,
			"unknown expression kind %q", n.Kind)
	}
}

func (d *decoder) decodeArgs(nodes []*jsonNode) ([]ast.Expression, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	args := make([]ast.Expression, 0, len(nodes))
	for _, n := range nodes {
		expr, err := d.decodeExpr(n)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}
	return args, nil
}
