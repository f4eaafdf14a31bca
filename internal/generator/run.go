package generator

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/toyz/mockslot/internal/errors"
)

// Run holds the state shared by every mock generated in one invocation: the output
// directory and the file and struct names already handed out
type Run struct {
	ID      string
	Dir     string
	files   map[string]bool
	structs map[string]bool
}

// NewRun creates a run writing into dir
func NewRun(dir string) *Run {
	return &Run{
		ID:      uuid.NewString(),
		Dir:     dir,
		files:   make(map[string]bool),
		structs: make(map[string]bool),
	}
}

// Reset removes the output directory with everything in it and recreates it empty.
// Reserved names are cleared as well.
func (r *Run) Reset() error {
	if err := os.RemoveAll(r.Dir); err != nil {
		return errors.WrapFileSystemError("remove output directory", r.Dir, err)
	}
	if err := os.MkdirAll(r.Dir, 0755); err != nil {
		return errors.WrapFileSystemError("create output directory", r.Dir, err)
	}

	r.files = make(map[string]bool)
	r.structs = make(map[string]bool)
	return nil
}

// ReserveFile claims a file name for base and returns it with the struct name derived
// from it. When base.go is taken, base1.go, base2.go and so on are tried in order.
func (r *Run) ReserveFile(base string) (fileName, structName string) {
	candidate := base
	for counter := 1; ; counter++ {
		fileName = candidate + ".go"
		structName = StructName(candidate)
		if !r.files[fileName] && !r.structs[structName] {
			break
		}
		candidate = base + strconv.Itoa(counter)
	}

	r.files[fileName] = true
	r.structs[structName] = true
	return fileName, structName
}

// Path returns the location of fileName inside the output directory
func (r *Run) Path(fileName string) string {
	return filepath.Join(r.Dir, fileName)
}

// Reserved returns the number of files reserved so far
func (r *Run) Reserved() int {
	return len(r.files)
}
