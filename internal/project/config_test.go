package project_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xyproto/env/v2"

	"github.com/zetalang/zeta/internal/optimizer"
	"github.com/zetalang/zeta/internal/project"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
name: collections
namespace: Vendor\Collections
units:
  - src/vector.zir
  - src/map.zir
optimizers:
  - name: fast_hash
    symbol: zeta_fast_hash
    arity: 1
`)
	cfg, err := project.ParseConfig(data, "zeta.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}
	if cfg.Name != "collections" {
		t.Errorf("Name = %q, want %q", cfg.Name, "collections")
	}
	if cfg.Namespace != `Vendor\Collections` {
		t.Errorf("Namespace = %q, want %q", cfg.Namespace, `Vendor\Collections`)
	}
	if len(cfg.Units) != 2 || cfg.Units[0] != "src/vector.zir" {
		t.Errorf("Units = %v", cfg.Units)
	}
	if len(cfg.Optimizers) != 1 || cfg.Optimizers[0].Symbol != "zeta_fast_hash" {
		t.Errorf("Optimizers = %+v", cfg.Optimizers)
	}
	// Defaults fill in after validation.
	if cfg.BuildDir != ".zeta" {
		t.Errorf("BuildDir default = %q, want %q", cfg.BuildDir, ".zeta")
	}
}

func TestParseConfigErrors(t *testing.T) {
	testCases := []struct {
		name     string
		yaml     string
		contains string
	}{
		{"not_yaml", "name: [", "parsing"},
		{"missing_name", "units: [a.zir]", "name is required"},
		{"name_with_separator", "name: a/b", "path separators"},
		{"empty_unit", "name: x\nunits: [\"\"]", "units[0]"},
		{"optimizer_without_name", "name: x\noptimizers:\n  - symbol: s\n    arity: 1", "optimizers[0]: name is required"},
		{"optimizer_without_symbol", "name: x\noptimizers:\n  - name: f\n    arity: 1", "symbol is required"},
		{"optimizer_bad_arity", "name: x\noptimizers:\n  - name: f\n    symbol: s\n    arity: 0", "arity must be at least 1"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := project.ParseConfig([]byte(tc.yaml), "zeta.yaml")
			if err == nil {
				t.Fatal("ParseConfig succeeded, want error")
			}
			if !strings.Contains(err.Error(), tc.contains) {
				t.Errorf("error %q does not mention %q", err, tc.contains)
			}
		})
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	configPath := filepath.Join(root, "zeta.yaml")
	if err := os.WriteFile(configPath, []byte("name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}

	found, err := project.FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if found != configPath {
		t.Errorf("FindConfig = %q, want %q", found, configPath)
	}
}

func TestFindConfigPrefersYamlThenYml(t *testing.T) {
	root := t.TempDir()
	yamlPath := filepath.Join(root, "zeta.yaml")
	ymlPath := filepath.Join(root, "zeta.yml")
	for _, path := range []string{yamlPath, ymlPath} {
		if err := os.WriteFile(path, []byte("name: x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	found, err := project.FindConfig(root)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if found != yamlPath {
		t.Errorf("FindConfig with both files = %q, want %q", found, yamlPath)
	}

	if err := os.Remove(yamlPath); err != nil {
		t.Fatal(err)
	}
	found, err = project.FindConfig(root)
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if found != ymlPath {
		t.Errorf("FindConfig with yml only = %q, want %q", found, ymlPath)
	}
}

func TestFindConfigNotFound(t *testing.T) {
	found, err := project.FindConfig(t.TempDir())
	if err != nil {
		t.Fatalf("FindConfig failed: %v", err)
	}
	if found != "" {
		t.Errorf("FindConfig = %q, want empty", found)
	}
}

func TestBuildRegistryMergesConfigOptimizers(t *testing.T) {
	cfg, err := project.ParseConfig([]byte(`
name: x
optimizers:
  - name: fast_hash
    symbol: zeta_fast_hash
    arity: 2
`), "zeta.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	reg, err := cfg.BuildRegistry()
	if err != nil {
		t.Fatalf("BuildRegistry failed: %v", err)
	}
	if reg.Len() != len(optimizer.MathTable())+1 {
		t.Errorf("registry has %d entries, want %d", reg.Len(), len(optimizer.MathTable())+1)
	}
	opt, ok := reg.Lookup("fast_hash")
	if !ok {
		t.Fatal("Lookup(fast_hash) missed")
	}
	if fwd := opt.(*optimizer.Forwarder); fwd.Symbol() != "zeta_fast_hash" || fwd.Arity() != 2 {
		t.Errorf("forwarder = symbol %q arity %d", fwd.Symbol(), fwd.Arity())
	}
}

// A configured optimizer shadowing a builtin is a configuration defect
// that fails before any unit compiles.
func TestBuildRegistryRejectsBuiltinCollision(t *testing.T) {
	cfg, err := project.ParseConfig([]byte(`
name: x
optimizers:
  - name: cos
    symbol: my_cos
    arity: 1
`), "zeta.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	if _, err := cfg.BuildRegistry(); err == nil {
		t.Fatal("expected BuildRegistry to fail on builtin collision")
	}
}

func TestEffectiveBuildDir(t *testing.T) {
	cfg, err := project.ParseConfig([]byte("name: x\n"), "zeta.yaml")
	if err != nil {
		t.Fatalf("ParseConfig failed: %v", err)
	}

	dir := cfg.EffectiveBuildDir("/proj")
	if dir != filepath.Join("/proj", ".zeta") {
		t.Errorf("EffectiveBuildDir = %q", dir)
	}

	// env/v2 snapshots os.Environ on first read; reload after Setenv so
	// EffectiveBuildDir sees the override, and again on cleanup.
	t.Cleanup(env.Load)
	t.Setenv("ZETA_BUILD_DIR", "/tmp/override")
	env.Load()
	if dir := cfg.EffectiveBuildDir("/proj"); dir != "/tmp/override" {
		t.Errorf("EffectiveBuildDir with override = %q", dir)
	}
}

func TestFindUnits(t *testing.T) {
	root := t.TempDir()
	mk := func(rel string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			t.Fatal(err)
		}
	}
	mk("vector.zir")
	mk(filepath.Join("src", "map.zir.json"))
	mk(filepath.Join("src", "notes.txt"))
	mk(filepath.Join(".zeta", "cached.zir"))
	mk(filepath.Join(".git", "stray.zir"))

	units, err := project.FindUnits(root)
	if err != nil {
		t.Fatalf("FindUnits failed: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("FindUnits = %v, want 2 entries", units)
	}
	for _, unit := range units {
		if strings.Contains(unit, ".zeta") || strings.Contains(unit, ".git") {
			t.Errorf("FindUnits included skipped directory entry %q", unit)
		}
	}
}
