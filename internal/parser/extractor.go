package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/models"
)

var (
	topLevelHeaderPattern = regexp.MustCompile(`(?m)^type[ \t]+([\p{L}_][\p{L}\p{N}_]*)[ \t]*(\[[^\n]*?\])?[ \t]*interface[ \t]*\{`)
	typeGroupPattern      = regexp.MustCompile(`(?m)^type[ \t]*\(`)
	groupHeaderPattern    = regexp.MustCompile(`(?m)^[ \t]+([\p{L}_][\p{L}\p{N}_]*)[ \t]*(\[[^\n]*?\])?[ \t]*interface[ \t]*\{`)
)

// SkippedInterface is an interface declaration the extractor found but will not mock
type SkippedInterface struct {
	Name     string
	Location errors.SourceLocation
	Reason   string
}

// FileResult is the outcome of extracting one source file
type FileResult struct {
	File       *SourceFile // nil when the file has no package clause
	Interfaces []*models.Interface
	Skipped    []SkippedInterface
}

// Extractor finds interface declarations in source text
type Extractor struct{}

// NewExtractor creates a new interface extractor
func NewExtractor() *Extractor {
	return &Extractor{}
}

type interfaceHeader struct {
	name       string
	typeParams string
	offset     int // start of the declaration
	brace      int // offset of the opening brace
}

// Extract returns the interfaces declared at top level in src. pkgPath is the import path
// of the package the file belongs to. Malformed declarations abort with a SyntaxError;
// declarations using constructs that are not modeled are reported in Skipped.
func (e *Extractor) Extract(path, src, pkgPath string) (*FileResult, error) {
	file, err := ScanFile(path, src)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return &FileResult{}, nil
	}

	result := &FileResult{File: file}
	masked := maskSource(src, true)

	for _, h := range findInterfaceHeaders(masked) {
		loc := errors.SourceLocation{File: path, Line: lineAt(src, h.offset)}

		end := matchingClose(masked, h.brace)
		if end == -1 {
			return nil, errors.NewSyntaxErrorWithToken("interface body is never closed", h.name).WithLocation(loc)
		}

		skip := func(reason string) {
			result.Skipped = append(result.Skipped, SkippedInterface{Name: h.name, Location: loc, Reason: reason})
		}

		if file.Package == "main" {
			skip("package main cannot be imported")
			continue
		}
		if h.typeParams != "" {
			skip("type parameters are not supported")
			continue
		}

		iface, err := e.buildInterface(h, masked[h.brace+1:end], h.brace+1, src, file, pkgPath)
		if err != nil {
			if errors.HasCode(err, errors.UnsupportedErrorCode) {
				skip(err.Error())
				continue
			}
			return nil, err
		}
		result.Interfaces = append(result.Interfaces, iface)
	}

	return result, nil
}

// findInterfaceHeaders locates top-level interface declarations in declaration order,
// both `type X interface {` and members of `type ( ... )` groups
func findInterfaceHeaders(masked string) []interfaceHeader {
	var headers []interfaceHeader

	for _, m := range topLevelHeaderPattern.FindAllStringSubmatchIndex(masked, -1) {
		headers = append(headers, newHeader(masked, m, 0))
	}

	for _, g := range typeGroupPattern.FindAllStringIndex(masked, -1) {
		open := g[1] - 1
		end := matchingClose(masked, open)
		if end == -1 {
			end = len(masked)
		}
		group := masked[open+1 : end]
		for _, m := range groupHeaderPattern.FindAllStringSubmatchIndex(group, -1) {
			// only direct members of the group, not fields of a struct inside it
			if strings.Count(group[:m[0]], "{") != strings.Count(group[:m[0]], "}") {
				continue
			}
			headers = append(headers, newHeader(group, m, open+1))
		}
	}

	sort.Slice(headers, func(i, j int) bool {
		return headers[i].offset < headers[j].offset
	})
	return headers
}

func newHeader(s string, m []int, base int) interfaceHeader {
	h := interfaceHeader{
		name:   s[m[2]:m[3]],
		offset: base + m[0],
		brace:  base + m[1] - 1,
	}
	if m[4] != -1 {
		h.typeParams = s[m[4]:m[5]]
	}
	return h
}

type bodyLine struct {
	text   string
	offset int
}

// splitBody returns the non-blank trimmed lines of an interface body, one declaration
// per line. A declaration whose parentheses span several lines is joined into one line,
// and semicolons outside brackets also separate declarations.
func splitBody(body string, base int) []bodyLine {
	var lines []bodyLine
	start, depth := 0, 0
	flush := func(end int) {
		if text := strings.TrimSpace(body[start:end]); text != "" {
			if strings.ContainsAny(text, "\n\t") {
				text = normalizeSpace(text)
			}
			lines = append(lines, bodyLine{text: text, offset: base + start})
		}
		start = end + 1
	}

	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '\n', ';':
			if depth <= 0 {
				flush(i)
				depth = 0
			}
		}
	}
	flush(len(body))

	return lines
}

var spaceCleaner = strings.NewReplacer(", )", ")", "( ", "(", " )", ")", ",)", ")")

// normalizeSpace collapses whitespace runs of a joined multi-line declaration
func normalizeSpace(text string) string {
	return spaceCleaner.Replace(strings.Join(strings.Fields(text), " "))
}

func (e *Extractor) buildInterface(h interfaceHeader, body string, base int, src string, file *SourceFile, pkgPath string) (*models.Interface, error) {
	q := NewQualifier(file.Imports, file.Package, pkgPath)
	iface := &models.Interface{
		Name:        h.name,
		Package:     file.Package,
		PackagePath: pkgPath,
		SourceFile:  file.Path,
		Kind:        models.FullyMockable,
	}

	for _, line := range splitBody(body, base) {
		loc := errors.SourceLocation{File: file.Path, Line: lineAt(src, line.offset)}

		if !strings.Contains(line.text, "(") {
			return nil, errors.NewUnsupportedError("embedded interface or type element", line.text)
		}

		method, err := parseMethod(line.text, q)
		if err != nil {
			return nil, withLocation(err, loc, h.name)
		}
		iface.Methods = append(iface.Methods, method)
	}

	if iface.HasUnexportedMethods() {
		if !iface.IsExported() {
			return nil, errors.NewUnsupportedError("unexported method", "unexported interface "+h.name+" cannot be embedded from another package")
		}
		iface.Kind = models.EmbedsOriginal
		q.SelfAlias()
	}

	if err := checkMemberNames(iface); err != nil {
		return nil, err
	}

	iface.Imports = q.Imports()
	if q.HasSelfImport() {
		iface.SelfAlias = q.SelfAlias()
	}

	return iface, nil
}

// parseMethod runs one body line through the signature parser, the argument resolver
// and the qualifier
func parseMethod(line string, q *Qualifier) (models.Method, error) {
	sig, err := SplitSignature(line)
	if err != nil {
		return models.Method{}, err
	}

	if !models.IsExportedIdent(sig.Name) {
		// unexported methods only reach the mock through the embedded interface
		q = q.Detached()
	}

	args, err := ResolveParams(sig.Args)
	if err != nil {
		return models.Method{}, err
	}
	results, err := ResolveParams(sig.Results)
	if err != nil {
		return models.Method{}, err
	}

	for _, params := range [][]models.Param{args, results} {
		for i := range params {
			qualified, err := q.Qualify(params[i].Type)
			if err != nil {
				return models.Method{}, err
			}
			params[i].Type = qualified
		}
	}

	return models.Method{
		Name:    sig.Name,
		Args:    args,
		Results: results,
	}, nil
}

// checkMemberNames rejects interfaces whose mock would declare a field and a method with
// the same name: a method named like another method's override slot, or like the
// embedded interface
func checkMemberNames(iface *models.Interface) error {
	methods := iface.Methods
	fields := make(map[string]string)
	if iface.Kind == models.EmbedsOriginal {
		methods = iface.ExportedMethods()
		fields[iface.Name] = "the embedded interface"
	}
	for _, m := range methods {
		fields[m.Name+"Mock"] = "the override slot of " + m.Name
	}

	for _, m := range methods {
		if owner, ok := fields[m.Name]; ok {
			return errors.NewUnsupportedError("method name", m.Name+" collides with "+owner)
		}
	}
	return nil
}

func withLocation(err error, loc errors.SourceLocation, ifaceName string) error {
	switch e := err.(type) {
	case *errors.SyntaxError:
		e.WithLocation(loc).WithContext("interface", ifaceName)
		return e
	case *errors.UnsupportedError:
		return e
	default:
		return errors.WrapParseError("interface "+ifaceName, err).WithLocation(loc)
	}
}
