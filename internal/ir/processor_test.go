package ir_test

import (
	"strings"
	"testing"

	"github.com/zetalang/zeta/internal/codegen"
	"github.com/zetalang/zeta/internal/diagnostics"
	"github.com/zetalang/zeta/internal/ir"
	"github.com/zetalang/zeta/internal/optimizer"
	"github.com/zetalang/zeta/internal/pipeline"
	"github.com/zetalang/zeta/internal/resolver"
)

func compileDocument(t *testing.T, document string) *pipeline.PipelineContext {
	t.Helper()
	reg, err := optimizer.Default()
	if err != nil {
		t.Fatalf("optimizer.Default() failed: %v", err)
	}
	p := pipeline.New(
		&ir.DecoderProcessor{},
		&resolver.ResolverProcessor{},
		codegen.NewCodegenProcessor(reg),
	)
	return p.Run(pipeline.NewPipelineContext("app.zir", []byte(document)))
}

// End to end: decode, resolve, generate. The specialized cosine call and
// the alias-resolved class reference both land in the emitted C.
func TestPipelineCompilesUnit(t *testing.T) {
	ctx := compileDocument(t, sampleDocument)
	if ctx.HasErrors() {
		t.Fatalf("pipeline reported errors: %v", ctx.Errors)
	}
	if ctx.CSource == "" {
		t.Fatal("pipeline produced no C source")
	}

	checks := []string{
		"zeta_value *zf_app_calc(zeta_context *zctx, zeta_value *z_x)",
		"z_v = zeta_value_double(zctx, cos(z_x));",
		`zeta_static_call(zctx, "Vendor\\Collections\\Vector", "push", 1, zeta_value_long(zctx, 3));`,
		"return z_v;",
	}
	for _, want := range checks {
		if !strings.Contains(ctx.CSource, want) {
			t.Errorf("missing %q in generated source:\n%s", want, ctx.CSource)
		}
	}
}

func TestPipelineCollectsErrorsAcrossStages(t *testing.T) {
	document := `{
	  "version": 1,
	  "file": "bad.zeta",
	  "namespace": "App",
	  "functions": [{
	    "name": "f",
	    "body": [
	      {"kind": "expr", "value": {"kind": "new", "class": "Foo\\\\Bar", "line": 3, "char": 5}},
	      {"kind": "expr", "value": {"kind": "new", "class": "9Bad", "line": 4, "char": 5}}
	    ]
	  }]
	}`
	ctx := compileDocument(t, document)

	if len(ctx.Errors) != 2 {
		t.Fatalf("expected 2 resolution errors, got %d: %v", len(ctx.Errors), ctx.Errors)
	}
	for _, err := range ctx.Errors {
		if err.Code != diagnostics.ErrR001 {
			t.Errorf("code = %s, want %s", err.Code, diagnostics.ErrR001)
		}
	}
	// Later stages still ran; the driver is the one discarding output of a
	// failed unit.
	if ctx.CSource == "" {
		t.Error("codegen should still run to surface its own diagnostics")
	}
}

func TestPipelineEmptySource(t *testing.T) {
	ctx := compileDocument(t, "")
	if len(ctx.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(ctx.Errors), ctx.Errors)
	}
	if ctx.Errors[0].Code != diagnostics.ErrI001 {
		t.Errorf("code = %s, want %s", ctx.Errors[0].Code, diagnostics.ErrI001)
	}
	if ctx.Unit != nil || ctx.CSource != "" {
		t.Error("failed decode must leave unit and output empty")
	}
}

func TestPipelineMalformedDocument(t *testing.T) {
	ctx := compileDocument(t, `{"version": 1`)
	if !ctx.HasErrors() {
		t.Fatal("expected a decode error")
	}
	if ctx.Errors[0].Code != diagnostics.ErrI002 {
		t.Errorf("code = %s, want %s", ctx.Errors[0].Code, diagnostics.ErrI002)
	}
}

// A malformed unit namespace must stop the unit at decode. Resolution
// qualifies bare references with the namespace verbatim, so letting one
// through would plant leading separators in every emitted FQN.
func TestPipelineRejectsMalformedNamespace(t *testing.T) {
	document := `{
	  "version": 1,
	  "file": "app.zeta",
	  "namespace": "\\App",
	  "functions": [{
	    "name": "f",
	    "body": [{"kind": "expr", "value": {"kind": "new", "class": "Logger"}}]
	  }]
	}`
	ctx := compileDocument(t, document)

	if len(ctx.Errors) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(ctx.Errors), ctx.Errors)
	}
	if ctx.Errors[0].Code != diagnostics.ErrI004 {
		t.Errorf("code = %s, want %s", ctx.Errors[0].Code, diagnostics.ErrI004)
	}
	if ctx.Unit != nil || ctx.CSource != "" {
		t.Error("failed decode must leave unit and output empty")
	}
}
