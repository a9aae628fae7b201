// Package codegen lowers resolved units into C translation units for the
// zeta runtime. The expression compiler decides, per call site, between a
// specialized native call supplied by an optimizer and the generic dynamic
// call path; the emitter assembles whole functions around the compiled
// expressions.
package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/config"
	"github.com/zetalang/zeta/internal/utils"
)

// CType is the C-level type of a compiled expression.
type CType string

const (
	TypeValue  CType = "value"  // boxed runtime value (zeta_value *)
	TypeLong   CType = "long"   // native integer
	TypeDouble CType = "double" // native double
	TypeBool   CType = "bool"   // native 0/1
	TypeString CType = "string" // C string literal, already escaped
)

// Compiled is a C expression together with its type. Consumers box native
// results into runtime values at the statement boundary, never inside the
// expression compiler.
type Compiled struct {
	Type CType
	Code string
}

// ValueCode returns C code producing the expression as a boxed runtime
// value, wrapping native results in the matching runtime constructor.
func (c Compiled) ValueCode() string {
	switch c.Type {
	case TypeLong:
		return fmt.Sprintf("%s(%s, %s)", config.ValueFromLongSymbol, contextVar, c.Code)
	case TypeDouble:
		return fmt.Sprintf("%s(%s, %s)", config.ValueFromDoubleSymbol, contextVar, c.Code)
	case TypeBool:
		return fmt.Sprintf("%s(%s, %s)", config.ValueFromBoolSymbol, contextVar, c.Code)
	case TypeString:
		return fmt.Sprintf("%s(%s, %s)", config.ValueFromStringSymbol, contextVar, c.Code)
	default:
		return c.Code
	}
}

// CallOptimizer is a strategy that may replace a generic dynamic call with a
// specialized native call. TryCompile returns (result, true) on success and
// (zero, false) to decline; declining is not an error and routes the call to
// the generic path.
type CallOptimizer interface {
	TryCompile(args []Compiled) (Compiled, bool)
}

// OptimizerTable is the read-only registry the compiler consults per call
// site. A lookup miss is a normal outcome, not a failure.
type OptimizerTable interface {
	Lookup(name string) (CallOptimizer, bool)
}

// Compiler lowers expressions of one unit. It holds no per-expression state
// and may be reused across units.
type Compiler struct {
	optimizers OptimizerTable
}

// NewCompiler builds a Compiler. optimizers may be nil, in which case every
// call takes the generic path.
func NewCompiler(optimizers OptimizerTable) *Compiler {
	return &Compiler{optimizers: optimizers}
}

// CompileExpr lowers a single expression. It fails only on a node kind the
// backend does not know; optimizer misses and declines fall back silently.
func (c *Compiler) CompileExpr(expr ast.Expression) (Compiled, error) {
	switch e := expr.(type) {
	case *ast.Variable:
		return Compiled{Type: TypeValue, Code: localVar(e.Name)}, nil
	case *ast.IntLit:
		return Compiled{Type: TypeLong, Code: strconv.FormatInt(e.Value, 10)}, nil
	case *ast.DoubleLit:
		return Compiled{Type: TypeDouble, Code: strconv.FormatFloat(e.Value, 'g', -1, 64)}, nil
	case *ast.StringLit:
		return Compiled{Type: TypeString, Code: `"` + utils.EscapeCString(e.Value) + `"`}, nil
	case *ast.BoolLit:
		if e.Value {
			return Compiled{Type: TypeBool, Code: "1"}, nil
		}
		return Compiled{Type: TypeBool, Code: "0"}, nil
	case *ast.NullLit:
		return Compiled{Type: TypeValue, Code: config.NullValueSymbol}, nil
	case *ast.FunctionCall:
		return c.compileFunctionCall(e)
	case *ast.StaticCall:
		return c.compileStaticCall(e)
	case *ast.NewInstance:
		return c.compileNewInstance(e)
	default:
		return Compiled{}, fmt.Errorf("unsupported expression kind %T", expr)
	}
}

// compileFunctionCall dispatches a bare function call. Registry hit plus a
// successful TryCompile yields the specialized call; a miss or a decline
// falls back to the generic dynamic call. This path never fails on account
// of a missing optimizer.
func (c *Compiler) compileFunctionCall(call *ast.FunctionCall) (Compiled, error) {
	args, err := c.compileArgs(call.Args)
	if err != nil {
		return Compiled{}, err
	}
	if c.optimizers != nil {
		if opt, ok := c.optimizers.Lookup(call.Name); ok {
			if out, ok := opt.TryCompile(args); ok {
				return out, nil
			}
		}
	}
	return c.genericCall(config.CallFunctionSymbol, call.Name, args), nil
}

func (c *Compiler) compileStaticCall(call *ast.StaticCall) (Compiled, error) {
	args, err := c.compileArgs(call.Args)
	if err != nil {
		return Compiled{}, err
	}
	code := fmt.Sprintf("%s(%s, \"%s\", \"%s\", %d%s",
		config.StaticCallSymbol, contextVar,
		utils.EscapeCString(classRef(call.Class)),
		utils.EscapeCString(call.Method),
		len(args), valueArgs(args))
	return Compiled{Type: TypeValue, Code: code + ")"}, nil
}

func (c *Compiler) compileNewInstance(inst *ast.NewInstance) (Compiled, error) {
	args, err := c.compileArgs(inst.Args)
	if err != nil {
		return Compiled{}, err
	}
	code := fmt.Sprintf("%s(%s, \"%s\", %d%s",
		config.NewInstanceSymbol, contextVar,
		utils.EscapeCString(classRef(inst.Class)),
		len(args), valueArgs(args))
	return Compiled{Type: TypeValue, Code: code + ")"}, nil
}

func (c *Compiler) compileArgs(exprs []ast.Expression) ([]Compiled, error) {
	args := make([]Compiled, 0, len(exprs))
	for _, expr := range exprs {
		compiled, err := c.CompileExpr(expr)
		if err != nil {
			return nil, err
		}
		args = append(args, compiled)
	}
	return args, nil
}

func (c *Compiler) genericCall(symbol, name string, args []Compiled) Compiled {
	code := fmt.Sprintf("%s(%s, \"%s\", %d%s",
		symbol, contextVar, utils.EscapeCString(name), len(args), valueArgs(args))
	return Compiled{Type: TypeValue, Code: code + ")"}
}

// valueArgs renders args boxed, each preceded by ", " so the caller can
// append them after the argc slot.
func valueArgs(args []Compiled) string {
	if len(args) == 0 {
		return ""
	}
	var b strings.Builder
	for _, arg := range args {
		b.WriteString(", ")
		b.WriteString(arg.ValueCode())
	}
	return b.String()
}

// classRef returns the canonical name of a class reference, or the raw
// spelling when resolution failed earlier. In that case the unit already
// carries a diagnostic and its output is discarded.
func classRef(cn *ast.ClassName) string {
	if cn == nil {
		return ""
	}
	if cn.Resolved() {
		return cn.FQN
	}
	return cn.Raw
}
