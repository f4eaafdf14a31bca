package utils

import (
	"path/filepath"

	"golang.org/x/mod/modfile"

	"github.com/toyz/mockslot/internal/errors"
)

// GoModParser reads module declarations from go.mod files
type GoModParser struct {
	fileReader *FileReader
}

// NewGoModParser creates a new go.mod parser
func NewGoModParser(fileReader *FileReader) *GoModParser {
	return &GoModParser{
		fileReader: fileReader,
	}
}

// ParseModuleName extracts the module path from a go.mod file
func (p *GoModParser) ParseModuleName(goModPath string) (string, error) {
	cleanPath := filepath.Clean(goModPath)
	if filepath.Base(cleanPath) != "go.mod" {
		return "", errors.NewConfigurationError("module", "file is not a go.mod file: "+goModPath)
	}

	content, err := p.fileReader.ReadFile(cleanPath)
	if err != nil {
		return "", err
	}

	modFile, err := modfile.ParseLax(cleanPath, []byte(content), nil)
	if err != nil {
		return "", errors.WrapParseError(cleanPath, err)
	}

	if modFile.Module == nil || modFile.Module.Mod.Path == "" {
		return "", errors.NewConfigurationError("module", "no module declaration found in "+cleanPath).
			WithSuggestion("add a module directive or pass -module")
	}

	return modFile.Module.Mod.Path, nil
}

// FindGoModFile searches for a go.mod file starting from startDir and walking up
func (p *GoModParser) FindGoModFile(startDir string) (string, error) {
	currentDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", startDir, err)
	}

	for {
		goModPath := filepath.Join(currentDir, "go.mod")
		if p.fileReader.Exists(goModPath) {
			return goModPath, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", errors.NewConfigurationError("module", "go.mod file not found above "+startDir).
		WithSuggestion("run inside a module or pass -module")
}
