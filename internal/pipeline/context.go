package pipeline

import (
	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/diagnostics"
)

// PipelineContext carries one unit through the pipeline. Stages read the
// fields earlier stages filled in and append their own errors; a stage that
// finds its input missing (because an earlier stage failed) passes through.
type PipelineContext struct {
	UnitPath string    // path of the IR document being compiled
	Source   []byte    // raw IR bytes, loaded by the driver
	Unit     *ast.Unit // decoded unit, set by the ir stage
	CSource  string    // generated C translation unit, set by the codegen stage

	Errors []*diagnostics.DiagnosticError
}

func NewPipelineContext(unitPath string, source []byte) *PipelineContext {
	return &PipelineContext{UnitPath: unitPath, Source: source}
}

// AddError appends a diagnostic to the context.
func (c *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether any stage recorded a diagnostic.
func (c *PipelineContext) HasErrors() bool {
	return len(c.Errors) > 0
}
