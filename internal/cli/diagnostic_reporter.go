package cli

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/toyz/mockslot/internal/errors"
)

// DiagnosticReporter provides user-friendly error reporting and diagnostics
type DiagnosticReporter struct {
	verbose bool
	out     io.Writer
}

// NewDiagnosticReporter creates a new diagnostic reporter writing to stderr
func NewDiagnosticReporter(verbose bool) *DiagnosticReporter {
	return &DiagnosticReporter{
		verbose: verbose,
		out:     os.Stderr,
	}
}

// SetOutput redirects the report
func (r *DiagnosticReporter) SetOutput(out io.Writer) {
	r.out = out
}

// ReportWarning prints a one-line warning followed by its suggestions
func (r *DiagnosticReporter) ReportWarning(message string, suggestions ...string) {
	warn := color.New(color.FgYellow, color.Bold)
	if r.out != os.Stderr {
		warn.DisableColor()
	}
	warn.Fprint(r.out, "! ")
	fmt.Fprintf(r.out, "%s\n", message)
	for _, suggestion := range suggestions {
		fmt.Fprintf(r.out, "  hint: %s\n", suggestion)
	}
}

// ReportError explains err: its kind, where it happened, what to try next
func (r *DiagnosticReporter) ReportError(err error) {
	fmt.Fprintf(r.out, "\nERROR: Mock Generation Failed\n")
	fmt.Fprintf(r.out, "=============================\n\n")

	if me := findMockslotError(err); me != nil {
		r.reportMockslotError(me, err)
	} else {
		fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())
	}

	fmt.Fprintf(r.out, "\n")
}

func (r *DiagnosticReporter) reportMockslotError(me errors.MockslotError, err error) {
	r.printErrorHeader(me.ErrorCode())

	fmt.Fprintf(r.out, "Message: %s\n\n", err.Error())

	if loc := me.Location(); !loc.IsEmpty() {
		fmt.Fprintf(r.out, "Location: %s\n\n", loc.String())
	}

	if ctx := me.Context(); len(ctx) > 0 {
		r.printContext(ctx)
	}

	if len(me.Suggestions()) > 0 {
		r.printSuggestions(me.Suggestions())
	}

	r.printAdditionalHelp(me.ErrorCode())

	if r.verbose {
		r.printErrorChain(err)
	}
}

// printErrorHeader prints a formatted error header based on the error code
func (r *DiagnosticReporter) printErrorHeader(code errors.ErrorCode) {
	var title string

	switch code {
	case errors.SyntaxErrorCode:
		title = "Syntax Error"
	case errors.GenerationErrorCode:
		title = "Code Generation Error"
	case errors.TemplateErrorCode:
		title = "Template Error"
	case errors.FileSystemErrorCode:
		title = "File System Error"
	case errors.ConfigurationErrorCode:
		title = "Configuration Error"
	case errors.UnsupportedErrorCode:
		title = "Unsupported Construct"
	default:
		title = "Unknown Error"
	}

	fmt.Fprintf(r.out, "Type: %s\n", title)
	fmt.Fprintf(r.out, "%s\n\n", strings.Repeat("-", len(title)+6))
}

// printContext prints context entries sorted by key. Multi-line values such as
// rendered source are only shown in verbose mode.
func (r *DiagnosticReporter) printContext(context map[string]interface{}) {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Fprintf(r.out, "Context:\n")
	for _, key := range keys {
		value := fmt.Sprint(context[key])
		if strings.Contains(value, "\n") && !r.verbose {
			value = "(hidden, run with -verbose)"
		}
		fmt.Fprintf(r.out, "   %s: %s\n", formatContextKey(key), value)
	}
	fmt.Fprintf(r.out, "\n")
}

// formatContextKey turns snake_case keys into title case
func formatContextKey(key string) string {
	parts := strings.Split(key, "_")
	for i, part := range parts {
		if part != "" {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

// printSuggestions prints actionable suggestions
func (r *DiagnosticReporter) printSuggestions(suggestions []string) {
	fmt.Fprintf(r.out, "Suggestions:\n")
	for i, suggestion := range suggestions {
		fmt.Fprintf(r.out, "   %d. %s\n", i+1, suggestion)
	}
	fmt.Fprintf(r.out, "\n")
}

// printAdditionalHelp prints additional help based on the error code
func (r *DiagnosticReporter) printAdditionalHelp(code errors.ErrorCode) {
	switch code {
	case errors.SyntaxErrorCode:
		fmt.Fprintf(r.out, "Interface Declaration Help:\n")
		fmt.Fprintf(r.out, "  - Method declarations must have balanced parentheses\n")
		fmt.Fprintf(r.out, "  - Qualified types must refer to an import of the same file\n")
		fmt.Fprintf(r.out, "  - Run 'go vet' on the package to locate the problem\n\n")

	case errors.ConfigurationErrorCode:
		fmt.Fprintf(r.out, "Configuration Help:\n")
		fmt.Fprintf(r.out, "  - Run from a directory inside a Go module or pass -module\n")
		fmt.Fprintf(r.out, "  - The output directory is deleted on every run, keep it dedicated\n\n")

	case errors.FileSystemErrorCode:
		fmt.Fprintf(r.out, "File System Help:\n")
		fmt.Fprintf(r.out, "  - Check read permissions on the scanned tree\n")
		fmt.Fprintf(r.out, "  - Check write permissions on the output directory\n\n")
	}

	fmt.Fprintf(r.out, "For more help:\n")
	fmt.Fprintf(r.out, "  - Run with -verbose for more detailed output\n")
	fmt.Fprintf(r.out, "  - Run with -help to list the available flags\n")
}

// printErrorChain prints every error in the wrap chain
func (r *DiagnosticReporter) printErrorChain(err error) {
	fmt.Fprintf(r.out, "\nError Chain:\n")
	level := 1
	for err != nil {
		fmt.Fprintf(r.out, "    %d. %s\n", level, err.Error())
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = unwrapper.Unwrap()
		level++
	}
}

// findMockslotError returns the outermost MockslotError in the chain of err
func findMockslotError(err error) errors.MockslotError {
	for err != nil {
		if me, ok := err.(errors.MockslotError); ok {
			return me
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return nil
		}
		err = unwrapper.Unwrap()
	}
	return nil
}

// GenerationSummary contains information about one run
type GenerationSummary struct {
	RunID             string
	FilesScanned      int
	InterfacesFound   int
	InterfacesSkipped int
	MocksWritten      int
	FilesChanged      int // diff mode only
	GeneratedFiles    []string
}

// Stats returns the summary as key/value pairs for DiagnosticSystem.Summary
func (s GenerationSummary) Stats() map[string]interface{} {
	return map[string]interface{}{
		"files scanned":      s.FilesScanned,
		"interfaces found":   s.InterfacesFound,
		"interfaces skipped": s.InterfacesSkipped,
		"mocks written":      s.MocksWritten,
		"run id":             s.RunID,
	}
}
