package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/generator"
	"github.com/toyz/mockslot/internal/utils"
)

// DefaultOutputDir is the output directory used when none is configured
const DefaultOutputDir = "mocks"

// Config holds the configuration for one generation run
type Config struct {
	// Root is the directory scanned for interface declarations
	Root string

	// OutputDir receives one file per interface. Relative paths are resolved
	// against Root. The directory is removed and recreated on every run.
	OutputDir string

	// PackageName is the package clause of generated files
	PackageName string

	// ModuleName overrides the module path read from go.mod
	ModuleName string

	// Formatter is one of gofmt, imports or none
	Formatter string

	// Diff prints unified diffs against the existing output instead of writing
	Diff bool
}

// withDefaults fills empty fields with their defaults
func (c Config) withDefaults() Config {
	if c.Root == "" {
		c.Root = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.PackageName == "" {
		c.PackageName = generator.DefaultPackageName
	}
	if c.Formatter == "" {
		c.Formatter = utils.FormatterGofmt
	}
	return c
}

// ResolvedOutputDir returns the absolute output directory
func (c Config) ResolvedOutputDir() (string, error) {
	c = c.withDefaults()
	dir := c.OutputDir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(c.Root, dir)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", dir, err)
	}
	return abs, nil
}

// Validate rejects configurations that could destroy source files or produce
// uncompilable output
func (c Config) Validate() error {
	c = c.withDefaults()

	if err := utils.NewValidatorChain(
		utils.NotEmpty("package"),
		utils.IsValidGoIdentifier("package"),
	).Validate(c.PackageName); err != nil {
		return errors.WrapConfigurationError("package", "validate", err)
	}

	if err := utils.IsOneOf("formatter", utils.FormatterNames...)(c.Formatter); err != nil {
		return errors.WrapConfigurationError("formatter", "validate", err)
	}

	root, err := filepath.Abs(c.Root)
	if err != nil {
		return errors.WrapFileSystemError("resolve", c.Root, err)
	}
	out, err := c.ResolvedOutputDir()
	if err != nil {
		return err
	}

	// the output directory must not be the root or one of its ancestors
	rel, err := filepath.Rel(out, root)
	if err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return errors.NewConfigurationError("out", "output directory "+out+" contains the scanned root "+root).
			WithSuggestion("choose a dedicated directory such as " + DefaultOutputDir)
	}

	return nil
}
