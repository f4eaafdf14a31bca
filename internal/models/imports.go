package models

import (
	"sort"
	"strconv"
)

// ImportSpec is one import line of a generated file
type ImportSpec struct {
	Alias string // explicit alias, empty when the package name is used
	Path  string // unquoted import path
}

// Quoted returns the import path as a Go string literal
func (s ImportSpec) Quoted() string {
	return strconv.Quote(s.Path)
}

// String renders the spec the way it appears inside an import block
func (s ImportSpec) String() string {
	if s.Alias == "" {
		return s.Quoted()
	}
	return s.Alias + " " + s.Quoted()
}

// ImportSet holds imports keyed by path. Two specs with the same path are duplicates
// regardless of alias; the first alias recorded for a path is kept.
type ImportSet struct {
	byPath map[string]ImportSpec
}

// NewImportSet creates an empty import set
func NewImportSet() ImportSet {
	return ImportSet{byPath: make(map[string]ImportSpec)}
}

// Add records spec unless its path is already present and returns the spec stored for the path
func (s *ImportSet) Add(spec ImportSpec) ImportSpec {
	if s.byPath == nil {
		s.byPath = make(map[string]ImportSpec)
	}
	if existing, ok := s.byPath[spec.Path]; ok {
		return existing
	}
	s.byPath[spec.Path] = spec
	return spec
}

// Specs returns the imports sorted by path
func (s ImportSet) Specs() []ImportSpec {
	specs := make([]ImportSpec, 0, len(s.byPath))
	for _, spec := range s.byPath {
		specs = append(specs, spec)
	}
	sort.Slice(specs, func(i, j int) bool {
		return specs[i].Path < specs[j].Path
	})
	return specs
}
