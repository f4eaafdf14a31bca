package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/akedrou/textdiff"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/models"
	"github.com/toyz/mockslot/internal/utils"
)

// DiffReporter compares generated mocks with the content of the output directory
// without touching it
type DiffReporter struct {
	out    io.Writer
	reader *utils.FileReader
}

// NewDiffReporter creates a reporter printing unified diffs to out
func NewDiffReporter(out io.Writer) *DiffReporter {
	return &DiffReporter{
		out:    out,
		reader: utils.NewFileReader(),
	}
}

// Report prints one unified diff per file that would change and returns how many
// files differ. Go files in dir that the run would not produce are reported as removed.
func (d *DiffReporter) Report(dir string, mocks []*models.GeneratedMock) (int, error) {
	changed := 0
	generated := make(map[string]bool, len(mocks))

	for _, mock := range mocks {
		generated[mock.FileName] = true

		current, _, err := d.reader.ReadFileIfExists(mock.FilePath)
		if err != nil {
			return changed, err
		}
		if d.print(mock.FileName, current, string(mock.Content)) {
			changed++
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil && !os.IsNotExist(err) {
		return changed, errors.WrapFileSystemError("read directory", dir, err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || generated[name] || !strings.HasSuffix(name, ".go") {
			continue
		}
		current, err := d.reader.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return changed, err
		}
		if d.print(name, current, "") {
			changed++
		}
	}

	return changed, nil
}

// print writes the diff between current and next and reports whether they differ
func (d *DiffReporter) print(name, current, next string) bool {
	if current == next {
		return false
	}
	diff := textdiff.Unified(name+" (current)", name+" (generated)", current, next)
	fmt.Fprint(d.out, diff)
	if !strings.HasSuffix(diff, "\n") {
		fmt.Fprintln(d.out)
	}
	return true
}
