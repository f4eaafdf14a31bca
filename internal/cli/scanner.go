package cli

import (
	"github.com/toyz/mockslot/internal/utils"
)

// DirectoryScanner finds the Go source files of a tree
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// ScanSourceFiles returns the non-test .go files under root in lexical order. Hidden,
// vendor and testdata directories are skipped, as are nested modules and every
// directory in skip.
func (s *DirectoryScanner) ScanSourceFiles(root string, skip ...string) ([]string, error) {
	return s.fileProcessor.WalkFiles(root, utils.FileWalkOptions{
		FileFilter:      utils.DefaultGoFileFilter(),
		DirectoryFilter: utils.DefaultDirectoryFilter(skip...),
	})
}

// ReadFile returns the contents of a scanned file
func (s *DirectoryScanner) ReadFile(path string) (string, error) {
	return s.fileProcessor.GetFileReader().ReadFile(path)
}
