package utils

import (
	"bytes"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"

	"golang.org/x/tools/imports"

	"github.com/toyz/mockslot/internal/errors"
)

// Formatter names accepted by NewFormatter
const (
	FormatterGofmt   = "gofmt"
	FormatterImports = "imports"
	FormatterNone    = "none"
)

// FormatterNames lists every accepted formatter name
var FormatterNames = []string{FormatterGofmt, FormatterImports, FormatterNone}

// Formatter reformats generated Go files. Format is the in-memory equivalent of
// FormatFile and is used when nothing may be written.
type Formatter interface {
	Name() string
	Format(path string, src []byte) ([]byte, error)
	FormatFile(path string) error
}

// NewFormatter returns the formatter registered under name
func NewFormatter(name string) (Formatter, error) {
	switch name {
	case FormatterGofmt, "":
		return GofmtFormatter{}, nil
	case FormatterImports:
		return ImportsFormatter{}, nil
	case FormatterNone:
		return NoopFormatter{}, nil
	default:
		return nil, errors.NewConfigurationError("formatter", "unknown formatter "+name).
			WithSuggestion("use one of gofmt, imports or none")
	}
}

// GofmtFormatter runs the external gofmt binary with simplification on the absolute path
type GofmtFormatter struct{}

// Name returns the formatter name
func (GofmtFormatter) Name() string { return FormatterGofmt }

// Format applies gofmt formatting in process
func (GofmtFormatter) Format(path string, src []byte) ([]byte, error) {
	formatted, err := format.Source(src)
	if err != nil {
		return nil, errors.WrapGenerateError("gofmt", path, err)
	}
	return formatted, nil
}

// FormatFile runs `gofmt -s -w` on path
func (GofmtFormatter) FormatFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.WrapFileSystemError("resolve", path, err)
	}

	cmd := exec.Command("gofmt", "-s", "-w", absPath)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return errors.WrapGenerateError("gofmt", absPath, err).WithContext("stderr", stderr.String())
	}
	return nil
}

// ImportsFormatter formats in process with golang.org/x/tools/imports in format-only mode
type ImportsFormatter struct{}

// Name returns the formatter name
func (ImportsFormatter) Name() string { return FormatterImports }

// Format groups and sorts the imports of src
func (ImportsFormatter) Format(path string, src []byte) ([]byte, error) {
	formatted, err := imports.Process(path, src, &imports.Options{
		FormatOnly: true,
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
	})
	if err != nil {
		return nil, errors.WrapGenerateError("imports", path, err)
	}
	return formatted, nil
}

// FormatFile rewrites path with its imports grouped and sorted
func (f ImportsFormatter) FormatFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return errors.WrapFileSystemError("read", path, err)
	}

	formatted, err := f.Format(path, src)
	if err != nil {
		return err
	}

	if bytes.Equal(src, formatted) {
		return nil
	}
	if err := os.WriteFile(path, formatted, 0644); err != nil {
		return errors.WrapFileSystemError("write", path, err)
	}
	return nil
}

// NoopFormatter leaves files untouched
type NoopFormatter struct{}

// Name returns the formatter name
func (NoopFormatter) Name() string { return FormatterNone }

// Format returns src unchanged
func (NoopFormatter) Format(_ string, src []byte) ([]byte, error) { return src, nil }

// FormatFile does nothing
func (NoopFormatter) FormatFile(string) error { return nil }

// FormatGoCode formats Go source code using the same logic as gofmt
func FormatGoCode(source []byte) ([]byte, error) {
	formatted, err := format.Source(source)
	if err != nil {
		if parseErr := ValidateGoCode(string(source)); parseErr != nil {
			return nil, errors.WrapGenerateError("format", "source", parseErr)
		}
		return nil, errors.WrapGenerateError("format", "source", err)
	}
	return formatted, nil
}

// ValidateGoCode checks if the provided code is valid Go syntax
func ValidateGoCode(code string) error {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "", code, parser.ParseComments)
	return err
}
