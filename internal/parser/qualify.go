package parser

import (
	"strconv"
	"strings"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/models"
)

// Qualifier rewrites type references so they are valid outside the interface's own
// package, recording every import the rewritten types need
type Qualifier struct {
	table       ImportTable
	packageName string
	packagePath string
	imports     models.ImportSet
	names       map[string]string // import path -> qualifier used in the generated file
	selfAlias   string

	// detached qualifiers check types that never reach the generated file
	detached bool
}

// NewQualifier creates a qualifier for an interface declared in packageName at
// packagePath, in a file whose imports are table
func NewQualifier(table ImportTable, packageName, packagePath string) *Qualifier {
	return &Qualifier{
		table:       table,
		packageName: packageName,
		packagePath: packagePath,
		imports:     models.NewImportSet(),
		names:       make(map[string]string),
	}
}

// Detached returns a qualifier over the same file that records nothing in q. It accepts
// unexported local types, so it suits signatures that only need validating.
func (q *Qualifier) Detached() *Qualifier {
	d := NewQualifier(q.table, q.packageName, q.packagePath)
	d.detached = true
	return d
}

// Imports returns the imports required by the types qualified so far
func (q *Qualifier) Imports() models.ImportSet {
	return q.imports
}

// SelfAlias returns the alias of the owning package import, adding the import on first
// use. The alias is the package name, or the package name with the lowest numeric
// suffix that no import of the file already uses.
func (q *Qualifier) SelfAlias() string {
	if q.selfAlias != "" {
		return q.selfAlias
	}

	alias := q.packageName
	for counter := 0; q.table.Taken(alias); counter++ {
		alias = q.packageName + strconv.Itoa(counter)
	}

	spec := models.ImportSpec{Path: q.packagePath}
	if alias != DefaultPackageName(q.packagePath) {
		spec.Alias = alias
	}
	q.imports.Add(spec)
	q.names[q.packagePath] = alias
	q.selfAlias = alias

	return alias
}

// HasSelfImport reports whether the owning package has been imported
func (q *Qualifier) HasSelfImport() bool {
	return q.selfAlias != ""
}

// Qualify rewrites typ: unqualified non-predeclared identifiers are prefixed with the
// owning package alias, and qualified references are resolved against the file's imports.
// An unexported local type cannot be named from another package and is an UnsupportedError.
func (q *Qualifier) Qualify(typ string) (string, error) {
	return q.qualifyType(strings.TrimSpace(typ))
}

func (q *Qualifier) qualifyType(t string) (string, error) {
	switch {
	case t == "":
		return "", errors.NewSyntaxError("empty type")
	case strings.HasPrefix(t, "*"):
		elem, err := q.qualifyType(strings.TrimSpace(t[1:]))
		return "*" + elem, err
	case strings.HasPrefix(t, "..."):
		elem, err := q.qualifyType(strings.TrimSpace(t[3:]))
		return "..." + elem, err
	case strings.HasPrefix(t, "<-chan"):
		elem, err := q.qualifyType(strings.TrimSpace(t[len("<-chan"):]))
		return "<-chan " + elem, err
	case strings.HasPrefix(t, "chan<-"):
		elem, err := q.qualifyType(strings.TrimSpace(t[len("chan<-"):]))
		return "chan<- " + elem, err
	case hasKeyword(t, "chan"):
		elem, err := q.qualifyType(strings.TrimSpace(t[len("chan"):]))
		return "chan " + elem, err
	case hasKeyword(t, "map"):
		return q.qualifyMap(t)
	case hasKeyword(t, "func"):
		return q.qualifyFunc(t)
	case hasKeyword(t, "struct"), hasKeyword(t, "interface"):
		return t, nil
	case t[0] == '[':
		return q.qualifyArray(t)
	case t[0] == '(':
		end := matchingClose(t, 0)
		if end != len(t)-1 {
			return "", errors.NewSyntaxErrorWithToken("unbalanced parentheses in type", t)
		}
		inner, err := q.qualifyType(strings.TrimSpace(t[1:end]))
		return "(" + inner + ")", err
	default:
		return q.qualifyNamed(t)
	}
}

func (q *Qualifier) qualifyMap(t string) (string, error) {
	open := strings.IndexByte(t, '[')
	if open == -1 {
		return "", errors.NewSyntaxErrorWithToken("map type without key", t)
	}
	end := matchingClose(t, open)
	if end == -1 {
		return "", errors.NewSyntaxErrorWithToken("unbalanced brackets in map type", t)
	}

	key, err := q.qualifyType(strings.TrimSpace(t[open+1 : end]))
	if err != nil {
		return "", err
	}
	value, err := q.qualifyType(strings.TrimSpace(t[end+1:]))
	if err != nil {
		return "", err
	}
	return "map[" + key + "]" + value, nil
}

func (q *Qualifier) qualifyArray(t string) (string, error) {
	end := matchingClose(t, 0)
	if end == -1 {
		return "", errors.NewSyntaxErrorWithToken("unbalanced brackets in type", t)
	}

	length := strings.TrimSpace(t[1:end])
	if identPattern.MatchString(length) {
		// named constant length declared in the owning package
		local, err := q.local(length)
		if err != nil {
			return "", err
		}
		length = local
	}

	elem, err := q.qualifyType(strings.TrimSpace(t[end+1:]))
	if err != nil {
		return "", err
	}
	return "[" + length + "]" + elem, nil
}

func (q *Qualifier) qualifyFunc(t string) (string, error) {
	rest := strings.TrimSpace(t[len("func"):])
	if rest == "" || rest[0] != '(' {
		return "", errors.NewSyntaxErrorWithToken("function type without parameters", t)
	}
	end := matchingClose(rest, 0)
	if end == -1 {
		return "", errors.NewSyntaxErrorWithToken("unbalanced parentheses in function type", t)
	}

	params, err := q.qualifyList(rest[1:end])
	if err != nil {
		return "", err
	}
	out := "func(" + params + ")"

	raw := strings.TrimSpace(rest[end+1:])
	results, err := stripResultParens(raw)
	if err != nil {
		return "", err
	}
	if results == "" {
		return out, nil
	}

	qualified, err := q.qualifyList(results)
	if err != nil {
		return "", err
	}
	if results != raw {
		return out + " (" + qualified + ")", nil
	}
	return out + " " + qualified, nil
}

// qualifyList qualifies the types of a nested parameter list, keeping any names
func (q *Qualifier) qualifyList(list string) (string, error) {
	tokens := SplitParams(list)
	named := isNamedList(list)

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		name, typ, hasType := splitNameType(tok)
		switch {
		case hasType:
			qualified, err := q.qualifyType(typ)
			if err != nil {
				return "", err
			}
			out = append(out, name+" "+qualified)
		case named:
			// grouped name such as `a` in `a, b int`
			out = append(out, tok)
		default:
			qualified, err := q.qualifyType(tok)
			if err != nil {
				return "", err
			}
			out = append(out, qualified)
		}
	}
	return strings.Join(out, ", "), nil
}

func (q *Qualifier) qualifyNamed(t string) (string, error) {
	end := identEnd(t, 0)
	if end == 0 {
		return "", errors.NewSyntaxErrorWithToken("unparsable type", t)
	}

	var qualified string
	if end < len(t) && t[end] == '.' {
		nameEnd := identEnd(t, end+1)
		if nameEnd == end+1 {
			return "", errors.NewSyntaxErrorWithToken("unparsable qualified type", t)
		}
		ref, err := q.resolveQualifier(t[:end])
		if err != nil {
			return "", err
		}
		qualified = ref + "." + t[end+1:nameEnd]
		end = nameEnd
	} else {
		ident := t[:end]
		if IsPredeclaredType(ident) {
			qualified = ident
		} else {
			local, err := q.local(ident)
			if err != nil {
				return "", err
			}
			qualified = local
		}
	}

	rest := strings.TrimSpace(t[end:])
	if rest == "" {
		return qualified, nil
	}

	// generic instantiation such as Set[Item]
	if rest[0] == '[' && matchingClose(rest, 0) == len(rest)-1 {
		args := SplitParams(rest[1 : len(rest)-1])
		for i, arg := range args {
			qa, err := q.qualifyType(arg)
			if err != nil {
				return "", err
			}
			args[i] = qa
		}
		return qualified + "[" + strings.Join(args, ", ") + "]", nil
	}

	return "", errors.NewSyntaxErrorWithToken("unparsable type", t)
}

// local qualifies an identifier declared in the owning package
func (q *Qualifier) local(ident string) (string, error) {
	if !q.detached && !models.IsExportedIdent(ident) {
		return "", errors.NewUnsupportedError("unexported type", ident+" is not visible outside package "+q.packageName)
	}
	return q.SelfAlias() + "." + ident, nil
}

// resolveQualifier maps a package qualifier used in source to the one used in the
// generated file, recording the import. The first alias seen for a path is reused so a
// path is never imported twice under different names.
func (q *Qualifier) resolveQualifier(pkg string) (string, error) {
	entry, ok := q.table.Lookup(pkg)
	if !ok {
		return "", errors.NewSyntaxErrorWithToken("unknown package qualifier", pkg).
			WithSuggestion("import the package in the file declaring the interface")
	}

	if name, ok := q.names[entry.Path]; ok {
		return name, nil
	}

	spec := models.ImportSpec{Path: entry.Path}
	if entry.IsExplicit() && entry.Alias != DefaultPackageName(entry.Path) {
		spec.Alias = entry.Alias
	}
	q.imports.Add(spec)
	q.names[entry.Path] = pkg

	return pkg, nil
}

// isNamedList reports whether any entry of a parameter list carries a name
func isNamedList(list string) bool {
	for _, tok := range SplitParams(list) {
		if _, _, named := splitNameType(tok); named {
			return true
		}
	}
	return false
}

// hasKeyword reports whether t starts with keyword as a whole word
func hasKeyword(t, keyword string) bool {
	if !strings.HasPrefix(t, keyword) {
		return false
	}
	return len(t) == len(keyword) || !isIdentByte(t[len(keyword)])
}

// identEnd returns the offset just past the identifier starting at start
func identEnd(s string, start int) int {
	i := start
	for i < len(s) && isIdentByte(s[i]) {
		if i == start && s[i] >= '0' && s[i] <= '9' {
			break
		}
		i++
	}
	return i
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9' || b >= 0x80
}
