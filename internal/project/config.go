// Package project loads the zeta.yaml project configuration: the extension
// name, the IR units to compile and the optimizer table extensions. The
// driver resolves one configuration per run before any unit compiles.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/zetalang/zeta/internal/config"
	"github.com/zetalang/zeta/internal/optimizer"
)

// Config represents the top-level zeta.yaml configuration.
type Config struct {
	// Name is the extension name, used in logs and as the linked library
	// name. Required.
	Name string `yaml:"name"`

	// Namespace is the project's root namespace. Informational; units
	// carry their own namespace in the IR.
	Namespace string `yaml:"namespace,omitempty"`

	// BuildDir is the working directory for generated sources and the unit
	// cache, relative to zeta.yaml unless absolute. Defaults to ".zeta".
	// The ZETA_BUILD_DIR environment variable overrides it.
	BuildDir string `yaml:"build_dir,omitempty"`

	// Units lists the IR documents to compile, relative to zeta.yaml.
	// When empty, the driver scans the project directory instead.
	Units []string `yaml:"units,omitempty"`

	// Optimizers appends forwarding strategies to the builtin math table.
	// A name colliding with a builtin or another entry fails the run
	// before any unit compiles.
	Optimizers []optimizer.Descriptor `yaml:"optimizers,omitempty"`
}

// LoadConfig reads and parses a zeta.yaml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses zeta.yaml content from bytes.
// The path argument is used only for error messages.
func ParseConfig(data []byte, path string) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.validate(path); err != nil {
		return nil, err
	}
	cfg.setDefaults()
	return &cfg, nil
}

// FindConfig searches for zeta.yaml starting from dir and walking up to
// parent directories. Returns the path to the config file and nil error if
// found, or empty string and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range config.ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", nil
		}
		dir = parent
	}
}

// validate checks the configuration for semantic errors.
func (c *Config) validate(path string) error {
	if c.Name == "" {
		return fmt.Errorf("%s: name is required", path)
	}
	if strings.ContainsAny(c.Name, `/\`) {
		return fmt.Errorf("%s: name %q must not contain path separators", path, c.Name)
	}

	for i, unit := range c.Units {
		if unit == "" {
			return fmt.Errorf("%s: units[%d]: path is empty", path, i)
		}
	}

	for i, opt := range c.Optimizers {
		if opt.Name == "" {
			return fmt.Errorf("%s: optimizers[%d]: name is required", path, i)
		}
		if opt.Symbol == "" {
			return fmt.Errorf("%s: optimizers[%d] (%s): symbol is required", path, i, opt.Name)
		}
		if opt.Arity < 1 {
			return fmt.Errorf("%s: optimizers[%d] (%s): arity must be at least 1", path, i, opt.Name)
		}
	}
	return nil
}

// setDefaults fills in default values for omitted fields.
func (c *Config) setDefaults() {
	if c.BuildDir == "" {
		c.BuildDir = config.BuildDirName
	}
}

// EffectiveBuildDir resolves the working directory for a run. The
// ZETA_BUILD_DIR environment variable wins over the configured value;
// relative paths are anchored at the config file's directory.
func (c *Config) EffectiveBuildDir(configDir string) string {
	dir := env.Str("ZETA_BUILD_DIR", c.BuildDir)
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(configDir, dir)
	}
	return dir
}

// BuildRegistry builds the optimizer registry for this project: the
// builtin math table plus the configured extensions. Duplicate names fail
// here, before any unit compiles.
func (c *Config) BuildRegistry() (*optimizer.Registry, error) {
	descriptors := append(optimizer.MathTable(), c.Optimizers...)
	return optimizer.NewRegistry(descriptors...)
}

// FindUnits scans root for IR documents when the configuration does not
// list them explicitly. The build directory and dot-directories are
// skipped; results are sorted by walk order, which is deterministic.
func FindUnits(root string) ([]string, error) {
	var units []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (strings.HasPrefix(name, ".") || name == config.BuildDirName) {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range config.IRFileExtensions {
			if strings.HasSuffix(name, ext) {
				units = append(units, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return units, nil
}
