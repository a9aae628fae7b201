package resolver

import (
	"errors"

	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/diagnostics"
	"github.com/zetalang/zeta/internal/pipeline"
)

// ResolverProcessor is the resolution stage. It builds the unit's use-alias
// table and fills in the FQN of every class reference in the tree. Each
// reference is resolved at most once; references that fail resolution stay
// unresolved and carry a diagnostic instead.
type ResolverProcessor struct{}

func (rp *ResolverProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Unit == nil {
		return ctx
	}

	uses := NewUseTable()
	for _, use := range ctx.Unit.Uses {
		if err := uses.Register(use.Target, use.Alias); err != nil {
			code := diagnostics.ErrR002
			var invalid *InvalidIdentifierError
			if errors.As(err, &invalid) {
				code = diagnostics.ErrR001
			}
			ctx.AddError(diagnostics.NewErrorf(code, use.Pos(), "%v", err))
		}
	}

	for _, fn := range ctx.Unit.Functions {
		for _, stmt := range fn.Body {
			rp.resolveStmt(ctx, stmt, uses)
		}
	}
	return ctx
}

func (rp *ResolverProcessor) resolveStmt(ctx *pipeline.PipelineContext, stmt ast.Statement, uses *UseTable) {
	switch s := stmt.(type) {
	case *ast.AssignStmt:
		rp.resolveExpr(ctx, s.Value, uses)
	case *ast.ExprStmt:
		rp.resolveExpr(ctx, s.Value, uses)
	case *ast.ReturnStmt:
		if s.Value != nil {
			rp.resolveExpr(ctx, s.Value, uses)
		}
	}
}

func (rp *ResolverProcessor) resolveExpr(ctx *pipeline.PipelineContext, expr ast.Expression, uses *UseTable) {
	switch e := expr.(type) {
	case *ast.FunctionCall:
		// Bare function callees are dispatched by name, not resolved.
		for _, arg := range e.Args {
			rp.resolveExpr(ctx, arg, uses)
		}
	case *ast.StaticCall:
		rp.resolveClass(ctx, e.Class, uses)
		for _, arg := range e.Args {
			rp.resolveExpr(ctx, arg, uses)
		}
	case *ast.NewInstance:
		rp.resolveClass(ctx, e.Class, uses)
		for _, arg := range e.Args {
			rp.resolveExpr(ctx, arg, uses)
		}
	}
}

func (rp *ResolverProcessor) resolveClass(ctx *pipeline.PipelineContext, cn *ast.ClassName, uses *UseTable) {
	if cn == nil || cn.Resolved() {
		return
	}
	fqn, err := Resolve(cn.Raw, ctx.Unit.Namespace, uses)
	if err != nil {
		ctx.AddError(diagnostics.NewErrorf(diagnostics.ErrR001, cn.Pos(), "%v", err))
		return
	}
	cn.FQN = fqn
}
