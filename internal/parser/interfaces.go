package parser

// InterfaceExtractor finds the interface declarations of one source file. path is used
// for error locations, pkgPath is the import path of the package the file belongs to.
type InterfaceExtractor interface {
	Extract(path, src, pkgPath string) (*FileResult, error)
}

var _ InterfaceExtractor = (*Extractor)(nil)
