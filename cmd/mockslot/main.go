package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/toyz/mockslot/internal/cli"
	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/generator"
	"github.com/toyz/mockslot/internal/utils"
)

// Exit codes
const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitOutdated = 3
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, executes one generation run and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("mockslot", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		rootFlag      = flags.String("root", ".", "Directory scanned for interface declarations")
		outFlag       = flags.String("out", cli.DefaultOutputDir, "Output directory, relative to -root. Deleted and recreated on every run")
		packageFlag   = flags.String("package", generator.DefaultPackageName, "Package name of the generated files")
		moduleFlag    = flags.String("module", "", "Custom module path for imports (defaults to the go.mod module)")
		formatterFlag = flags.String("formatter", utils.FormatterGofmt, "Formatter applied to generated files: gofmt, imports or none")
		diffFlag      = flags.Bool("diff", false, "Print unified diffs against the output directory instead of writing")
		verboseFlag   = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag     = flags.Bool("quiet", false, "Only show errors")
		helpFlag      = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: mockslot [options]\n\n")
		fmt.Fprintf(stderr, "Interface Mock Generator\n")
		fmt.Fprintf(stderr, "Scans a module for interface declarations and writes one mock per interface.\n")
		fmt.Fprintf(stderr, "Every exported method gets a <Method>Mock function field that the delegate calls.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  mockslot                                   # Mock every interface into ./mocks\n")
		fmt.Fprintf(stderr, "  mockslot -root ./internal -out ../mocks    # Scan a subtree\n")
		fmt.Fprintf(stderr, "  mockslot -module github.com/myorg/myapp    # Specify custom module path\n")
		fmt.Fprintf(stderr, "  mockslot -diff                             # Check that mocks are up to date\n")
	}

	if err := flags.Parse(args); err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if *helpFlag {
		flags.Usage()
		return exitOK
	}

	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "Error: unexpected arguments %v\n\n", flags.Args())
		flags.Usage()
		return exitUsage
	}

	reporter := cli.NewDiagnosticReporter(*verboseFlag && !*quietFlag)
	reporter.SetOutput(stderr)
	if *verboseFlag && *quietFlag {
		reporter.ReportWarning("-quiet and -verbose both set", "-quiet wins, drop one of them")
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	if stdout != os.Stdout || stderr != os.Stderr {
		diagnostics.SetOutput(stdout, stderr)
	}

	diagnostics.Header("generating mocks")

	config := cli.Config{
		Root:        *rootFlag,
		OutputDir:   *outFlag,
		PackageName: *packageFlag,
		ModuleName:  *moduleFlag,
		Formatter:   *formatterFlag,
		Diff:        *diffFlag,
	}

	gen := cli.NewGenerator(diagnostics)
	gen.SetDiffOutput(stdout)

	if err := gen.Run(config); err != nil {
		if err == cli.ErrOutOfDate {
			diagnostics.Error("%v, run mockslot without -diff to update them", err)
			return exitOutdated
		}
		if *quietFlag {
			diagnostics.Error("%s", errors.FormatWithSuggestions(err))
		} else {
			reporter.ReportError(err)
		}
		return exitFailure
	}

	if *verboseFlag {
		for _, file := range gen.GetSummary().GeneratedFiles {
			diagnostics.Verbose("wrote %s", file)
		}
	}

	diagnostics.Complete("done")
	return exitOK
}
