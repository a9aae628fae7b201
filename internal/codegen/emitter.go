package codegen

import (
	"fmt"
	"strings"

	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/config"
	"github.com/zetalang/zeta/internal/utils"
)

// contextVar is the runtime context parameter threaded through every
// emitted function.
const contextVar = "zctx"

const contextParam = "zeta_context *" + contextVar

// localVar maps a source-level variable to its C slot name. The prefix
// keeps generated locals clear of C keywords and runtime symbols.
func localVar(name string) string {
	return "z_" + name
}

// MangleFunction builds the C symbol for a unit function: the symbol
// prefix, the uncamelized namespace segments and the uncamelized function
// name, joined by underscores.
func MangleFunction(namespace, name string) string {
	parts := []string{config.FunctionSymbolPrefix}
	if namespace != "" {
		for _, seg := range strings.Split(namespace, config.NamespaceSeparator) {
			parts = append(parts, utils.Uncamelize(seg))
		}
	}
	parts = append(parts, utils.Uncamelize(name))
	return strings.Join(parts, "_")
}

// Generator assembles the C translation unit for one compiled unit.
type Generator struct {
	buf      strings.Builder
	indent   int
	compiler *Compiler
}

func NewGenerator(compiler *Compiler) *Generator {
	return &Generator{compiler: compiler}
}

// EmitUnit renders the whole translation unit: header, runtime include and
// one C function per unit function.
func (g *Generator) EmitUnit(unit *ast.Unit) (string, error) {
	g.buf.Reset()
	g.indent = 0

	if unit.File != "" {
		g.linef("/* Generated by zetac from %s. Do not edit. */", unit.File)
	} else {
		g.line("/* Generated by zetac. Do not edit. */")
	}
	g.linef("#include <%s>", config.RuntimeHeader)

	for _, fn := range unit.Functions {
		g.line("")
		if err := g.emitFunction(unit, fn); err != nil {
			return "", fmt.Errorf("function %s: %w", fn.Name, err)
		}
	}
	return g.buf.String(), nil
}

func (g *Generator) emitFunction(unit *ast.Unit, fn *ast.FunctionDecl) error {
	params := make([]string, 0, len(fn.Params)+1)
	params = append(params, contextParam)
	for _, p := range fn.Params {
		params = append(params, "zeta_value *"+localVar(p))
	}
	g.linef("zeta_value *%s(%s) {", MangleFunction(unit.Namespace, fn.Name), strings.Join(params, ", "))
	g.indent++

	for _, name := range localNames(fn) {
		g.linef("zeta_value *%s = %s;", localVar(name), config.NullValueSymbol)
	}

	returned := false
	for _, stmt := range fn.Body {
		var err error
		returned, err = g.emitStmt(stmt)
		if err != nil {
			return err
		}
	}
	if !returned {
		g.linef("return %s;", config.NullValueSymbol)
	}

	g.indent--
	g.line("}")
	return nil
}

// emitStmt renders one statement and reports whether it was a return, so
// the function emitter knows if it still owes the implicit trailing return.
func (g *Generator) emitStmt(stmt ast.Statement) (bool, error) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		compiled, err := g.compiler.CompileExpr(s.Value)
		if err != nil {
			return false, err
		}
		g.linef("%s = %s;", localVar(s.Target), compiled.ValueCode())
		return false, nil
	case *ast.ExprStmt:
		compiled, err := g.compiler.CompileExpr(s.Value)
		if err != nil {
			return false, err
		}
		if compiled.Type == TypeValue {
			g.linef("%s;", compiled.Code)
		} else {
			g.linef("(void) (%s);", compiled.Code)
		}
		return false, nil
	case *ast.ReturnStmt:
		if s.Value == nil {
			g.linef("return %s;", config.NullValueSymbol)
			return true, nil
		}
		compiled, err := g.compiler.CompileExpr(s.Value)
		if err != nil {
			return false, err
		}
		g.linef("return %s;", compiled.ValueCode())
		return true, nil
	default:
		return false, fmt.Errorf("unsupported statement kind %T", stmt)
	}
}

// localNames returns the function's assignment targets in first-assignment
// order, skipping parameters, which already arrive as slots.
func localNames(fn *ast.FunctionDecl) []string {
	seen := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		seen[p] = true
	}
	var names []string
	for _, stmt := range fn.Body {
		if assign, ok := stmt.(*ast.AssignStmt); ok && !seen[assign.Target] {
			seen[assign.Target] = true
			names = append(names, assign.Target)
		}
	}
	return names
}

func (g *Generator) line(s string) {
	if s == "" {
		g.buf.WriteByte('\n')
		return
	}
	for i := 0; i < g.indent; i++ {
		g.buf.WriteString("    ")
	}
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func (g *Generator) linef(format string, args ...interface{}) {
	g.line(fmt.Sprintf(format, args...))
}
