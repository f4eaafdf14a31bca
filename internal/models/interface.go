package models

import (
	"unicode"
	"unicode/utf8"
)

// MockKind describes how a generated mock satisfies its interface
type MockKind int

const (
	// FullyMockable interfaces only have exported methods, every one gets an override slot
	FullyMockable MockKind = iota
	// EmbedsOriginal interfaces have at least one unexported method. The mock embeds the
	// original interface so it still satisfies it; unexported methods panic unless the
	// embedded value is set.
	EmbedsOriginal
)

// String returns the string representation of the mock kind
func (k MockKind) String() string {
	switch k {
	case FullyMockable:
		return "fully-mockable"
	case EmbedsOriginal:
		return "embeds-original"
	default:
		return "unknown"
	}
}

// Interface describes one interface declaration found in source text
type Interface struct {
	Name        string    // interface name as declared
	Package     string    // owning package name (from the package clause)
	PackagePath string    // owning package import path
	SourceFile  string    // file the declaration was found in
	Methods     []Method  // methods in declaration order
	Imports     ImportSet // imports the generated mock needs
	SelfAlias   string    // alias of the owning package import, empty if not imported
	Kind        MockKind
}

// ExportedMethods returns the methods that get an override slot and a delegate
func (i *Interface) ExportedMethods() []Method {
	var exported []Method
	for _, m := range i.Methods {
		if m.IsExported() {
			exported = append(exported, m)
		}
	}
	return exported
}

// HasUnexportedMethods reports whether any method is unexported
func (i *Interface) HasUnexportedMethods() bool {
	for _, m := range i.Methods {
		if !m.IsExported() {
			return true
		}
	}
	return false
}

// IsExported reports whether the interface itself can be named from another package
func (i *Interface) IsExported() bool {
	return IsExportedIdent(i.Name)
}

// Method is a single method signature
type Method struct {
	Name    string
	Args    []Param
	Results []Param
}

// IsExported reports whether the method name starts with an uppercase letter
func (m Method) IsExported() bool {
	return IsExportedIdent(m.Name)
}

// Param is a named argument or result
type Param struct {
	Name string // always set, synthesized when the source omits it
	Type string // type reference, qualified for use outside the owning package
}

// IsExportedIdent reports whether an identifier starts with an uppercase letter
func IsExportedIdent(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return r != utf8.RuneError && unicode.IsUpper(r)
}
