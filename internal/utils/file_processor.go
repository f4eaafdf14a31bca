package utils

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyz/mockslot/internal/errors"
)

// FileProcessor walks source trees
type FileProcessor struct {
	fileReader *FileReader
}

// NewFileProcessor creates a new file processor
func NewFileProcessor() *FileProcessor {
	return &FileProcessor{
		fileReader: NewFileReader(),
	}
}

// FileFilter defines a function that determines whether a file should be processed
type FileFilter func(path string, entry fs.DirEntry) bool

// DirectoryFilter defines a function that determines whether a directory should be descended into
type DirectoryFilter func(path string, entry fs.DirEntry) bool

// FileWalkOptions configures file walking behavior
type FileWalkOptions struct {
	FileFilter      FileFilter
	DirectoryFilter DirectoryFilter
}

// DefaultGoFileFilter accepts .go files, excluding tests
func DefaultGoFileFilter() FileFilter {
	return func(path string, entry fs.DirEntry) bool {
		if entry.IsDir() {
			return false
		}

		name := entry.Name()
		return strings.HasSuffix(name, ".go") &&
			!strings.HasSuffix(name, "_test.go") &&
			!strings.HasPrefix(name, ".")
	}
}

// DefaultDirectoryFilter skips hidden, vendor and testdata directories, nested modules
// (directories holding their own go.mod), and every directory listed in excluded
// (compared as absolute paths)
func DefaultDirectoryFilter(excluded ...string) DirectoryFilter {
	skipDirs := map[string]bool{
		"vendor":   true,
		"testdata": true,
	}

	excludedAbs := make(map[string]bool, len(excluded))
	for _, dir := range excluded {
		if abs, err := filepath.Abs(dir); err == nil {
			excludedAbs[abs] = true
		}
	}

	return func(path string, entry fs.DirEntry) bool {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || skipDirs[name] {
			return false
		}

		if abs, err := filepath.Abs(path); err == nil && excludedAbs[abs] {
			return false
		}
		return !IsModuleRoot(path)
	}
}

// IsModuleRoot reports whether dir holds a go.mod file
func IsModuleRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "go.mod"))
	return err == nil && !info.IsDir()
}

// WalkFiles returns the files under rootDir accepted by the filters, in lexical order.
// The root itself is never filtered.
func (fp *FileProcessor) WalkFiles(rootDir string, options FileWalkOptions) ([]string, error) {
	var matchedFiles []string

	err := filepath.WalkDir(rootDir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return errors.WrapFileSystemError("walk", path, err)
		}

		if entry.IsDir() {
			if path != rootDir && options.DirectoryFilter != nil && !options.DirectoryFilter(path, entry) {
				return filepath.SkipDir
			}
			return nil
		}

		if options.FileFilter == nil || options.FileFilter(path, entry) {
			matchedFiles = append(matchedFiles, path)
		}
		return nil
	})

	return matchedFiles, err
}

// GetFileReader returns the underlying FileReader
func (fp *FileProcessor) GetFileReader() *FileReader {
	return fp.fileReader
}
