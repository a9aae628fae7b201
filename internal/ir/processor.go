package ir

import (
	"errors"

	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/diagnostics"
	"github.com/zetalang/zeta/internal/pipeline"
)

// DecoderProcessor is the decode stage. The driver loads the document
// bytes; this stage turns them into the unit tree the rest of the pipeline
// works on.
type DecoderProcessor struct{}

func (dp *DecoderProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if len(ctx.Source) == 0 {
		ctx.AddError(diagnostics.NewError(diagnostics.ErrI001,
			ast.Position{File: ctx.UnitPath}, "empty IR document"))
		return ctx
	}

	unit, err := DecodeUnit(ctx.Source, ctx.UnitPath)
	if err != nil {
		var diag *diagnostics.DiagnosticError
		if errors.As(err, &diag) {
			ctx.AddError(diag)
		} else {
			ctx.AddError(diagnostics.NewErrorf(diagnostics.ErrI002,
				ast.Position{File: ctx.UnitPath}, "%v", err))
		}
		return ctx
	}
	ctx.Unit = unit
	return ctx
}
