package parser

import (
	"regexp"

	"github.com/toyz/mockslot/internal/errors"
)

var packageClausePattern = regexp.MustCompile(`^\s*package\s+([\p{L}_][\p{L}\p{N}_]*)`)

// SourceFile is what the scanner learns about one file before interface extraction
type SourceFile struct {
	Path    string
	Package string      // name from the package clause
	Imports ImportTable // the file's own imports
}

// PackageName returns the name declared by the file's package clause. ok is false when
// the file does not begin with one; leading comments and blank lines are allowed.
func PackageName(src string) (name string, ok bool) {
	m := packageClausePattern.FindStringSubmatch(maskSource(src, false))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ScanFile extracts the package name and the import table of a file. A nil SourceFile
// with a nil error means the file has no package clause and should be skipped.
func ScanFile(path, src string) (*SourceFile, error) {
	pkg, ok := PackageName(src)
	if !ok {
		return nil, nil
	}

	table, err := ParseImportTable(src)
	if err != nil {
		if se, ok := err.(*errors.SyntaxError); ok {
			loc := se.Location()
			loc.File = path
			return nil, se.WithLocation(loc)
		}
		return nil, errors.WrapParseError("imports of "+path, err)
	}

	return &SourceFile{
		Path:    path,
		Package: pkg,
		Imports: table,
	}, nil
}
