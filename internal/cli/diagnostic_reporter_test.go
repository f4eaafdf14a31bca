package cli

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/toyz/mockslot/internal/errors"
)

func newTestReporter(verbose bool) (*DiagnosticReporter, *bytes.Buffer) {
	var out bytes.Buffer
	reporter := NewDiagnosticReporter(verbose)
	reporter.SetOutput(&out)
	return reporter, &out
}

func TestDiagnosticReporter_ReportError(t *testing.T) {
	err := errors.NewSyntaxErrorWithToken("cannot parse method", "Stop(error").
		WithLocation(errors.SourceLocation{File: "engine/engine.go", Line: 5}).
		WithSuggestion("close the parenthesis")
	err.WithContext("interface", "Engine")

	reporter, out := newTestReporter(false)
	reporter.ReportError(fmt.Errorf("run: %w", err))

	report := out.String()
	assert.Contains(t, report, "Type: Syntax Error\n")
	assert.Contains(t, report, "Location: engine/engine.go:5\n")
	assert.Contains(t, report, "   Interface: Engine\n")
	assert.Contains(t, report, "   1. close the parenthesis\n")
	assert.Contains(t, report, "Interface Declaration Help:")
	assert.NotContains(t, report, "Error Chain:")
}

func TestDiagnosticReporter_ReportError_Verbose(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := errors.WrapFileSystemError("write", "mocks/a.go", cause)

	reporter, out := newTestReporter(true)
	reporter.ReportError(err)

	report := out.String()
	assert.Contains(t, report, "Type: File System Error\n")
	assert.Contains(t, report, "   Operation: write\n")
	assert.Contains(t, report, "   Path: mocks/a.go\n")
	assert.Contains(t, report, "Error Chain:\n")
	assert.Contains(t, report, "    2. permission denied\n")
}

func TestDiagnosticReporter_ReportError_HidesMultiLineContext(t *testing.T) {
	err := errors.WrapGenerateError("format", "io.Reader", fmt.Errorf("bad")).
		WithContext("source", "package mocks\nfunc {")

	reporter, out := newTestReporter(false)
	reporter.ReportError(err)

	assert.Contains(t, out.String(), "Source: (hidden, run with -verbose)")
}

func TestDiagnosticReporter_ReportError_PlainError(t *testing.T) {
	reporter, out := newTestReporter(false)
	reporter.ReportError(fmt.Errorf("boom"))

	assert.Contains(t, out.String(), "Message: boom\n")
	assert.NotContains(t, out.String(), "Type:")
}

func TestDiagnosticReporter_ReportWarning(t *testing.T) {
	reporter, out := newTestReporter(false)
	reporter.ReportWarning("formatter failed", "install gofmt")

	assert.Equal(t, "! formatter failed\n  hint: install gofmt\n", out.String())
}
