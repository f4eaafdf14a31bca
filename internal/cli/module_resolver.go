package cli

import (
	"path/filepath"
	"strings"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/utils"
)

// ModuleInfo identifies the module the scanned tree belongs to
type ModuleInfo struct {
	Path string // module path, e.g. github.com/example/app
	Dir  string // absolute directory holding go.mod, or the root when overridden without one
}

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	goModParser *utils.GoModParser
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{
		goModParser: utils.NewGoModParser(utils.NewFileReader()),
	}
}

// ResolveModuleName finds the module for root. The go.mod file is looked up from root
// upwards; customModule, when set, replaces the module path it declares.
func (r *ModuleResolver) ResolveModuleName(root, customModule string) (*ModuleInfo, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.WrapFileSystemError("resolve", root, err)
	}

	goModPath, findErr := r.goModParser.FindGoModFile(absRoot)
	if customModule != "" {
		dir := absRoot
		if findErr == nil {
			dir = filepath.Dir(goModPath)
		}
		return &ModuleInfo{Path: customModule, Dir: dir}, nil
	}
	if findErr != nil {
		return nil, findErr
	}

	modulePath, err := r.goModParser.ParseModuleName(goModPath)
	if err != nil {
		return nil, err
	}

	return &ModuleInfo{Path: modulePath, Dir: filepath.Dir(goModPath)}, nil
}

// BuildPackagePath builds the full import path for a package directory inside module
func (r *ModuleResolver) BuildPackagePath(module *ModuleInfo, packageDir string) (string, error) {
	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", errors.WrapFileSystemError("resolve", packageDir, err)
	}

	relPath, err := filepath.Rel(module.Dir, absPackageDir)
	if err != nil {
		return "", errors.WrapFileSystemError("relate", packageDir, err)
	}

	importPath := filepath.ToSlash(relPath)
	if importPath == ".." || strings.HasPrefix(importPath, "../") {
		return "", errors.NewConfigurationError("module", "package "+absPackageDir+" is outside module "+module.Path)
	}
	if importPath == "." {
		return module.Path, nil
	}

	return module.Path + "/" + importPath, nil
}
