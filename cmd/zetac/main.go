package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zetalang/zeta/internal/ast"
	"github.com/zetalang/zeta/internal/cache"
	"github.com/zetalang/zeta/internal/codegen"
	"github.com/zetalang/zeta/internal/config"
	"github.com/zetalang/zeta/internal/diagnostics"
	"github.com/zetalang/zeta/internal/ir"
	"github.com/zetalang/zeta/internal/optimizer"
	"github.com/zetalang/zeta/internal/pipeline"
	"github.com/zetalang/zeta/internal/platform"
	"github.com/zetalang/zeta/internal/project"
	"github.com/zetalang/zeta/internal/resolver"
	"github.com/zetalang/zeta/internal/utils"
)

// Version is stamped at build time using: -ldflags "-X main.Version=v0.4.0"
var Version = "dev"

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	if handleHelp() {
		return
	}
	if handleVersion() {
		return
	}
	if handleOptimizers() {
		return
	}
	if handleClean() {
		return
	}

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel(), err)
		fmt.Fprintf(os.Stderr, "Run '%s help' for usage.\n", os.Args[0])
		os.Exit(1)
	}
	runBuild(opts)
}

func handleHelp() bool {
	if len(os.Args) < 2 {
		return false
	}
	if os.Args[1] != "-help" && os.Args[1] != "--help" && os.Args[1] != "help" {
		return false
	}

	fmt.Print(`zetac compiles Zeta IR units to C sources for the zeta runtime.

Usage:
  zetac [flags] [unit...]   compile IR units
  zetac optimizers          list the call optimizers active for this project
  zetac clean               remove the build directory
  zetac help                show this help
  zetac version             show the compiler version

Flags:
  -force     recompile every unit, ignoring the unit cache
  -verbose   also report up-to-date units

Without unit arguments, zetac compiles the units listed in zeta.yaml, or
scans the project directory for ` + config.IRFileExt + ` documents when none are listed.
The configuration file is searched upwards from the working directory.
`)
	return true
}

func handleVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	if os.Args[1] != "-version" && os.Args[1] != "--version" && os.Args[1] != "version" {
		return false
	}
	fmt.Printf("zetac %s\n", Version)
	return true
}

// handleOptimizers prints the merged optimizer table: builtins plus the
// project's zeta.yaml extensions.
func handleOptimizers() bool {
	if len(os.Args) < 2 || os.Args[1] != "optimizers" {
		return false
	}

	cfg, _, configPath := loadProject()
	registry, err := cfg.BuildRegistry()
	if err != nil {
		fatalRegistry(configPath, err)
	}

	fmt.Printf("%d call optimizers:\n", registry.Len())
	for _, name := range registry.Names() {
		opt, _ := registry.Lookup(name)
		fwd := opt.(*optimizer.Forwarder)
		fmt.Printf("  %-12s -> %s (%d arg)\n", name, fwd.Symbol(), fwd.Arity())
	}
	return true
}

// handleClean removes the build directory, cache included.
func handleClean() bool {
	if len(os.Args) < 2 || os.Args[1] != "clean" {
		return false
	}

	cfg, projectDir, _ := loadProject()
	buildDir := cfg.EffectiveBuildDir(projectDir)
	if err := os.RemoveAll(buildDir); err != nil {
		fatalf("%v", err)
	}
	fmt.Printf("Removed %s\n", buildDir)
	return true
}

type buildOptions struct {
	force   bool
	verbose bool
	units   []string
}

func parseArgs(args []string) (buildOptions, error) {
	var opts buildOptions
	for _, arg := range args {
		switch arg {
		case "-force", "--force":
			opts.force = true
		case "-v", "-verbose", "--verbose":
			opts.verbose = true
		default:
			if strings.HasPrefix(arg, "-") {
				return opts, fmt.Errorf("unknown flag %s", arg)
			}
			opts.units = append(opts.units, arg)
		}
	}
	return opts, nil
}

// loadProject resolves the project configuration by walking up from the
// working directory. Without a config file the defaults apply and the
// project root is the working directory.
func loadProject() (*project.Config, string, string) {
	configPath, err := project.FindConfig(".")
	if err != nil {
		fatalf("%v", err)
	}
	if configPath == "" {
		dir, err := filepath.Abs(".")
		if err != nil {
			fatalf("%v", err)
		}
		return &project.Config{Name: "zeta", BuildDir: config.BuildDirName}, dir, ""
	}

	cfg, err := project.LoadConfig(configPath)
	if err != nil {
		fatalf("%v", err)
	}
	return cfg, filepath.Dir(configPath), configPath
}

func runBuild(opts buildOptions) {
	cfg, projectDir, configPath := loadProject()

	// The registry is built before any unit compiles; a duplicate or
	// invalid optimizer aborts the whole run here.
	registry, err := cfg.BuildRegistry()
	if err != nil {
		fatalRegistry(configPath, err)
	}

	target := platform.Detect()
	buildDir := cfg.EffectiveBuildDir(projectDir)
	outDir := target.OutputDir(buildDir)

	if err := os.MkdirAll(buildDir, 0755); err != nil {
		fatalf("creating build directory: %v", err)
	}
	unitCache, err := cache.Open(filepath.Join(buildDir, config.CacheFileName))
	if err != nil {
		// A dead cache costs full rebuilds, never the run.
		fmt.Fprintf(os.Stderr, "warning: unit cache disabled: %v\n", err)
		unitCache = nil
	} else {
		defer unitCache.Close()
	}
	if opts.force && unitCache != nil {
		if err := unitCache.Reset(); err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		}
	}

	units := opts.units
	if len(units) == 0 {
		for _, unit := range cfg.Units {
			pattern := filepath.Join(projectDir, unit)
			if strings.ContainsAny(unit, "*?[") {
				matches, err := filepath.Glob(pattern)
				if err != nil {
					fatalf("unit pattern %s: %v", unit, err)
				}
				units = append(units, matches...)
				continue
			}
			units = append(units, pattern)
		}
	}
	if len(units) == 0 {
		units, err = project.FindUnits(projectDir)
		if err != nil {
			fatalf("%v", err)
		}
	}
	if len(units) == 0 {
		fmt.Println("No units to compile")
		return
	}

	p := pipeline.New(
		&ir.DecoderProcessor{},
		&resolver.ResolverProcessor{},
		codegen.NewCodegenProcessor(registry),
	)

	var compiled, upToDate, failed int
	for _, unitPath := range units {
		source, err := os.ReadFile(unitPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s %v\n", errorLabel(), err)
			failed++
			continue
		}

		outPath := outputPath(outDir, projectDir, unitPath)
		hash := utils.ContentHash(source)
		changed := true
		if !opts.force && unitCache != nil {
			if ch, err := unitCache.Changed(unitPath, hash); err == nil {
				changed = ch
			}
		}
		if !changed {
			if _, err := os.Stat(outPath); err == nil {
				upToDate++
				if opts.verbose {
					fmt.Printf("Up to date: %s\n", unitPath)
				}
				continue
			}
		}

		ctx := p.Run(pipeline.NewPipelineContext(unitPath, source))

		if ctx.HasErrors() {
			fmt.Fprintf(os.Stderr, "%s %s failed with %d error(s):\n", errorLabel(), unitPath, len(ctx.Errors))
			for _, diag := range ctx.Errors {
				fmt.Fprintf(os.Stderr, "- %s\n", diag.Error())
			}
			failed++
			continue
		}

		if _, err := utils.WriteIfChanged(outPath, []byte(ctx.CSource)); err != nil {
			fmt.Fprintf(os.Stderr, "%s writing %s: %v\n", errorLabel(), outPath, err)
			failed++
			continue
		}
		if unitCache != nil {
			if err := unitCache.Store(unitPath, hash); err != nil && opts.verbose {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}
		compiled++
		fmt.Printf("Compiled %s -> %s\n", unitPath, outPath)
	}

	fmt.Printf("%s: %d compiled, %d up to date, %d failed (%s-%s %s)\n",
		cfg.Name, compiled, upToDate, failed, target.Family, target.Arch, target.Flavor())
	if failed > 0 {
		os.Exit(1)
	}
}

// outputPath maps a unit to its generated C file: the unit's path relative
// to the project root, moved under the target output directory with the IR
// extension swapped for .c. Units outside the project flatten to their
// base name.
func outputPath(outDir, projectDir, unitPath string) string {
	rel := filepath.Base(unitPath)
	if abs, err := filepath.Abs(unitPath); err == nil {
		if r, err := filepath.Rel(projectDir, abs); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	for _, ext := range config.IRFileExtensions {
		if strings.HasSuffix(rel, ext) {
			rel = strings.TrimSuffix(rel, ext)
			break
		}
	}
	return filepath.Join(outDir, rel+".c")
}

// fatalRegistry reports a broken optimizer table in diagnostic form,
// attributed to the configuration file that declared it.
func fatalRegistry(configPath string, err error) {
	code := diagnostics.ErrO002
	var dup *optimizer.DuplicateRegistrationError
	if errors.As(err, &dup) {
		code = diagnostics.ErrO001
	}
	var file string
	if configPath != "" {
		file = filepath.Base(configPath)
	}
	fatalf("%s", diagnostics.NewError(code, ast.Position{File: file}, err.Error()).Error())
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", errorLabel(), fmt.Sprintf(format, args...))
	os.Exit(1)
}
