package codegen_test

import (
	"strings"
	"testing"

	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/codegen"
	"github.com/zetalang/zeta/internal/optimizer"
	"github.com/zetalang/zeta/internal/pipeline"
)

func TestMangleFunction(t *testing.T) {
	testCases := []struct {
		namespace string
		name      string
		expected  string
	}{
		{"", "main", "zf_main"},
		{"App", "main", "zf_app_main"},
		{`App\Http`, "getUrl", "zf_app_http_get_url"},
		{`App\HttpClient`, "fetchAll", "zf_app_http_client_fetch_all"},
		{`Vendor\Collections`, "Create", "zf_vendor_collections_create"},
	}

	for _, tc := range testCases {
		actual := codegen.MangleFunction(tc.namespace, tc.name)
		if actual != tc.expected {
			t.Errorf("MangleFunction(%q, %q) = %q, want %q", tc.namespace, tc.name, actual, tc.expected)
		}
	}
}

func TestEmitUnit(t *testing.T) {
	reg, err := optimizer.Default()
	if err != nil {
		t.Fatalf("optimizer.Default() failed: %v", err)
	}
	gen := codegen.NewGenerator(codegen.NewCompiler(reg))

	unit := &ast.Unit{
		File:      "app.zeta",
		Namespace: "App",
		Functions: []*ast.FunctionDecl{
			{
				Name:   "calc",
				Params: []string{"x"},
				Body: []ast.Statement{
					&ast.AssignStmt{Target: "v", Value: &ast.FunctionCall{
						Name: "cos",
						Args: []ast.Expression{&ast.Variable{Name: "x"}},
					}},
					&ast.ReturnStmt{Value: &ast.Variable{Name: "v"}},
				},
			},
		},
	}

	actual, err := gen.EmitUnit(unit)
	if err != nil {
		t.Fatalf("EmitUnit failed: %v", err)
	}

	expected := `/* Generated by zetac from app.zeta. Do not edit. */
#include <zeta/runtime.h>

zeta_value *zf_app_calc(zeta_context *zctx, zeta_value *z_x) {
    zeta_value *z_v = ZETA_NULL;
    z_v = zeta_value_double(zctx, cos(z_x));
    return z_v;
}
`
	if actual != expected {
		t.Errorf("emitted unit mismatch:\n--- expected\n%s\n--- actual\n%s", expected, actual)
	}
}

func TestEmitUnitImplicitReturn(t *testing.T) {
	gen := codegen.NewGenerator(codegen.NewCompiler(nil))

	unit := &ast.Unit{
		Namespace: "App",
		Functions: []*ast.FunctionDecl{
			{
				Name: "ping",
				Body: []ast.Statement{
					&ast.ExprStmt{Value: &ast.FunctionCall{Name: "notify"}},
				},
			},
		},
	}

	actual, err := gen.EmitUnit(unit)
	if err != nil {
		t.Fatalf("EmitUnit failed: %v", err)
	}
	if !strings.Contains(actual, `    zeta_call_function(zctx, "notify", 0);`) {
		t.Errorf("missing generic call statement in:\n%s", actual)
	}
	if !strings.Contains(actual, "    return ZETA_NULL;\n}") {
		t.Errorf("missing implicit trailing return in:\n%s", actual)
	}
}

func TestEmitUnitDeclaresLocalsOnce(t *testing.T) {
	gen := codegen.NewGenerator(codegen.NewCompiler(nil))

	unit := &ast.Unit{
		Functions: []*ast.FunctionDecl{
			{
				Name:   "twice",
				Params: []string{"a"},
				Body: []ast.Statement{
					&ast.AssignStmt{Target: "tmp", Value: &ast.IntLit{Value: 1}},
					&ast.AssignStmt{Target: "tmp", Value: &ast.IntLit{Value: 2}},
					&ast.AssignStmt{Target: "a", Value: &ast.IntLit{Value: 3}},
				},
			},
		},
	}

	actual, err := gen.EmitUnit(unit)
	if err != nil {
		t.Fatalf("EmitUnit failed: %v", err)
	}
	if n := strings.Count(actual, "zeta_value *z_tmp = ZETA_NULL;"); n != 1 {
		t.Errorf("z_tmp declared %d times, want 1:\n%s", n, actual)
	}
	// Parameters arrive as slots and must not be redeclared.
	if strings.Contains(actual, "zeta_value *z_a = ZETA_NULL;") {
		t.Errorf("parameter a redeclared as local:\n%s", actual)
	}
}

func TestProcessorFillsCSource(t *testing.T) {
	reg, err := optimizer.Default()
	if err != nil {
		t.Fatalf("optimizer.Default() failed: %v", err)
	}

	ctx := pipeline.NewPipelineContext("app.zir", nil)
	ctx.Unit = &ast.Unit{
		File:      "app.zeta",
		Namespace: "App",
		Functions: []*ast.FunctionDecl{
			{Name: "main", Body: []ast.Statement{&ast.ReturnStmt{}}},
		},
	}

	out := codegen.NewCodegenProcessor(reg).Process(ctx)
	if out.HasErrors() {
		t.Fatalf("unexpected errors: %v", out.Errors)
	}
	if !strings.Contains(out.CSource, "zeta_value *zf_app_main(zeta_context *zctx)") {
		t.Errorf("CSource missing function definition:\n%s", out.CSource)
	}
}

func TestProcessorPassesThroughWithoutUnit(t *testing.T) {
	out := codegen.NewCodegenProcessor(nil).Process(pipeline.NewPipelineContext("missing.zir", nil))
	if out.CSource != "" || out.HasErrors() {
		t.Errorf("expected untouched context, got CSource=%q errors=%v", out.CSource, out.Errors)
	}
}
