package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/generator"
	"github.com/toyz/mockslot/internal/models"
	"github.com/toyz/mockslot/internal/parser"
	"github.com/toyz/mockslot/internal/utils"
)

// ErrOutOfDate is returned by a diff run when the output directory differs from what
// would be generated
var ErrOutOfDate = errors.New(errors.GenerationErrorCode, "generated mocks are out of date")

// Generator coordinates one generation run: scan, extract, render, write, format
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	extractor      parser.InterfaceExtractor
	diagnostics    *utils.DiagnosticSystem
	diffOut        io.Writer
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: NewModuleResolver(),
		extractor:      parser.NewExtractor(),
		diagnostics:    diagnostics,
		diffOut:        os.Stdout,
	}
}

// SetDiffOutput redirects the diffs printed in diff mode
func (g *Generator) SetDiffOutput(out io.Writer) {
	g.diffOut = out
}

// GetSummary returns the summary of the last run
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process. The output directory is removed and
// recreated, then one file is written per interface found under config.Root. In diff
// mode nothing is written and ErrOutOfDate is returned when the output would change.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	config = config.withDefaults()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	if err := config.Validate(); err != nil {
		return err
	}

	formatter, err := utils.NewFormatter(config.Formatter)
	if err != nil {
		return err
	}

	module, err := g.moduleResolver.ResolveModuleName(config.Root, config.ModuleName)
	if err != nil {
		return err
	}

	outDir, err := config.ResolvedOutputDir()
	if err != nil {
		return err
	}
	run := generator.NewRun(outDir)
	g.summary.RunID = run.ID

	g.diagnostics.Verbose("Run %s started at %s", run.ID, startTime.Format("15:04:05"))
	g.diagnostics.Debug("Module %s at %s", module.Path, module.Dir)
	g.diagnostics.Debug("Output directory %s", outDir)

	g.diagnostics.PhaseHeader("Scanning")
	interfaces, err := g.extract(config, module, outDir)
	if err != nil {
		return err
	}

	g.diagnostics.PhaseHeader("Generating")
	codeGenerator := generator.NewMockGenerator(config.PackageName)
	mocks := make([]*models.GeneratedMock, 0, len(interfaces))
	for _, iface := range interfaces {
		mock, err := codeGenerator.Generate(iface, run)
		if err != nil {
			return err
		}
		mocks = append(mocks, mock)
	}
	g.diagnostics.Debug("Reserved %d file names", run.Reserved())

	if config.Diff {
		return g.diff(run, mocks, formatter)
	}

	if err := g.write(run, mocks, formatter); err != nil {
		return err
	}

	g.diagnostics.Verbose("Run %s finished in %s", run.ID, time.Since(startTime).Round(time.Millisecond))
	g.diagnostics.Summary("Summary", g.summary.Stats())
	return nil
}

// extract scans the tree and returns every mockable interface in file order
func (g *Generator) extract(config Config, module *ModuleInfo, outDir string) ([]*models.Interface, error) {
	files, err := g.scanner.ScanSourceFiles(config.Root, outDir)
	if err != nil {
		return nil, err
	}
	g.summary.FilesScanned = len(files)

	root, err := filepath.Abs(config.Root)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", config.Root, err)
	}

	var interfaces []*models.Interface
	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()

	for _, file := range files {
		src, err := g.scanner.ReadFile(file)
		if err != nil {
			return nil, err
		}

		pkgPath, err := g.moduleResolver.BuildPackagePath(module, filepath.Dir(file))
		if err != nil {
			return nil, err
		}

		display := file
		if rel, err := filepath.Rel(root, file); err == nil {
			display = filepath.ToSlash(rel)
		}

		result, err := g.extractor.Extract(display, src, pkgPath)
		if err != nil {
			return nil, err
		}

		for _, skipped := range result.Skipped {
			g.summary.InterfacesSkipped++
			g.diagnostics.Warn("%s: skipping %s: %s", skipped.Location.String(), skipped.Name, skipped.Reason)
		}
		for _, iface := range result.Interfaces {
			g.diagnostics.PhaseItem(iface.Package + "." + iface.Name)
		}
		interfaces = append(interfaces, result.Interfaces...)
	}

	g.summary.InterfacesFound = len(interfaces)
	return interfaces, nil
}

// write resets the output directory, writes every mock and formats it
func (g *Generator) write(run *generator.Run, mocks []*models.GeneratedMock, formatter utils.Formatter) error {
	if err := run.Reset(); err != nil {
		return err
	}

	g.diagnostics.Indent()
	defer g.diagnostics.Unindent()

	for _, mock := range mocks {
		if err := os.WriteFile(mock.FilePath, mock.Content, 0644); err != nil {
			return errors.WrapFileSystemError("write", mock.FilePath, err)
		}
		g.summary.MocksWritten++
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, mock.FilePath)
		g.diagnostics.PhaseProgress(mock.FileName)

		if err := formatter.FormatFile(mock.FilePath); err != nil {
			g.diagnostics.Warn("formatter %s failed on %s, left unformatted: %v", formatter.Name(), mock.FileName, err)
		}
	}

	return nil
}

// diff prints what a write would change and leaves the output directory untouched
func (g *Generator) diff(run *generator.Run, mocks []*models.GeneratedMock, formatter utils.Formatter) error {
	for _, mock := range mocks {
		formatted, err := formatter.Format(mock.FilePath, mock.Content)
		if err != nil {
			g.diagnostics.Warn("formatter %s failed on %s: %v", formatter.Name(), mock.FileName, err)
			continue
		}
		mock.Content = formatted
	}

	changed, err := NewDiffReporter(g.diffOut).Report(run.Dir, mocks)
	if err != nil {
		return err
	}
	g.summary.FilesChanged = changed

	if changed > 0 {
		g.diagnostics.Info("%d file(s) would change", changed)
		return ErrOutOfDate
	}
	g.diagnostics.Info("Generated mocks are up to date")
	return nil
}
