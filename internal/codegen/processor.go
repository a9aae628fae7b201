package codegen

import (
	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/diagnostics"
	"github.com/zetalang/zeta/internal/pipeline"
)

// CodegenProcessor is the code generation stage. It runs even when earlier
// stages reported errors so a unit surfaces backend diagnostics in the same
// pass; the driver discards the output of a unit that has any errors.
type CodegenProcessor struct {
	optimizers OptimizerTable
}

func NewCodegenProcessor(optimizers OptimizerTable) *CodegenProcessor {
	return &CodegenProcessor{optimizers: optimizers}
}

func (cp *CodegenProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Unit == nil {
		return ctx
	}

	gen := NewGenerator(NewCompiler(cp.optimizers))
	source, err := gen.EmitUnit(ctx.Unit)
	if err != nil {
		ctx.AddError(diagnostics.NewErrorf(diagnostics.ErrC001,
			ast.Position{File: ctx.Unit.File}, "%v", err))
		return ctx
	}
	ctx.CSource = source
	return ctx
}
