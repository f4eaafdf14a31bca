package parser

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/toyz/mockslot/internal/errors"
)

// importSpecGrammar is a single import spec: an optional alias followed by the path
type importSpecGrammar struct {
	Alias string `parser:"@(Ident | Dot)?"`
	Path  string `parser:"@String"`
}

var (
	importLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `//[^\n]*|/\*([^*]|\*[^/])*\*/`},
		{Name: "String", Pattern: `"(\\.|[^"\\])*"|` + "`[^`]*`"},
		{Name: "Ident", Pattern: `[\p{L}_][\p{L}\p{N}_]*`},
		{Name: "Dot", Pattern: `\.`},
		{Name: "Semicolon", Pattern: `;`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	importSpecParser = participle.MustBuild[importSpecGrammar](
		participle.Lexer(importLexer),
		participle.Elide("Whitespace", "Comment", "Semicolon"),
		participle.Unquote("String"),
	)

	importKeywordPattern = regexp.MustCompile(`(?m)^import[\s(]`)
	majorVersionPattern  = regexp.MustCompile(`^v[0-9]+$`)
	dotVersionPattern    = regexp.MustCompile(`\.v[0-9]+$`)
)

// ImportEntry is one import of a source file
type ImportEntry struct {
	Alias string // explicit alias as written, empty when none
	Path  string // unquoted import path
}

// IsExplicit reports whether the import was written with an alias
func (e ImportEntry) IsExplicit() bool {
	return e.Alias != ""
}

// Names returns the identifiers the import can be referenced by in source. An explicit
// alias is the only name; otherwise the candidates are derived from the path.
func (e ImportEntry) Names() []string {
	switch e.Alias {
	case "_", ".":
		return nil
	case "":
		return ImportNameCandidates(e.Path)
	default:
		return []string{e.Alias}
	}
}

// ImportTable maps the names a file uses for its imports to their paths
type ImportTable struct {
	entries []ImportEntry
}

// NewImportTable builds a table from entries in source order
func NewImportTable(entries ...ImportEntry) ImportTable {
	return ImportTable{entries: entries}
}

// Lookup finds the import a qualifier refers to. Explicit aliases win over
// names derived from paths.
func (t ImportTable) Lookup(qualifier string) (ImportEntry, bool) {
	for _, e := range t.entries {
		if e.Alias == qualifier {
			return e, true
		}
	}
	for _, e := range t.entries {
		if e.IsExplicit() {
			continue
		}
		for _, name := range e.Names() {
			if name == qualifier {
				return e, true
			}
		}
	}
	return ImportEntry{}, false
}

// Taken reports whether name already refers to one of the file's imports
func (t ImportTable) Taken(name string) bool {
	for _, e := range t.entries {
		for _, n := range e.Names() {
			if n == name {
				return true
			}
		}
	}
	return false
}

// ImportNameCandidates derives the package names an unaliased import path commonly
// declares. The first candidate is the default package name.
func ImportNameCandidates(path string) []string {
	elems := strings.Split(strings.Trim(path, "/"), "/")
	last := elems[len(elems)-1]
	if majorVersionPattern.MatchString(last) && len(elems) > 1 {
		last = elems[len(elems)-2]
	}
	last = dotVersionPattern.ReplaceAllString(last, "")

	var candidates []string
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.NewReplacer("-", "", ".", "").Replace(name)
		if name != "" && !seen[name] {
			seen[name] = true
			candidates = append(candidates, name)
		}
	}

	add(strings.TrimPrefix(strings.TrimSuffix(last, "-go"), "go-"))
	add(last)
	add(strings.ReplaceAll(last, "-", "_"))

	return candidates
}

// DefaultPackageName returns the package name implied by an import path
func DefaultPackageName(path string) string {
	if candidates := ImportNameCandidates(path); len(candidates) > 0 {
		return candidates[0]
	}
	return ""
}

// ParseImportSpec parses one import spec such as `alias "path"` or `"path"`
func ParseImportSpec(spec string) (ImportEntry, error) {
	parsed, err := importSpecParser.ParseString("", spec)
	if err != nil {
		return ImportEntry{}, errors.WrapParseError("import spec "+strings.TrimSpace(spec), err)
	}

	return ImportEntry{
		Alias: parsed.Alias,
		Path:  parsed.Path,
	}, nil
}

// ParseImportTable collects every import declaration of a file, both the single
// `import "x"` form and parenthesized blocks
func ParseImportTable(src string) (ImportTable, error) {
	commentFree := maskSource(src, false)
	masked := maskSource(src, true)

	var entries []ImportEntry
	for _, loc := range importKeywordPattern.FindAllStringIndex(masked, -1) {
		i := loc[0] + len("import")
		for i < len(masked) && (masked[i] == ' ' || masked[i] == '\t' || masked[i] == '\n' || masked[i] == '\r') {
			i++
		}
		if i >= len(masked) {
			return ImportTable{}, errors.NewSyntaxError("import keyword without a spec").
				WithLocation(errors.SourceLocation{Line: lineAt(src, loc[0])})
		}

		var specs []string
		if masked[i] == '(' {
			end := matchingClose(masked, i)
			if end == -1 {
				return ImportTable{}, errors.NewSyntaxError("unterminated import block").
					WithLocation(errors.SourceLocation{Line: lineAt(src, i)})
			}
			specs = splitImportBlock(commentFree[i+1 : end])
		} else {
			end := strings.IndexByte(commentFree[i:], '\n')
			if end == -1 {
				end = len(commentFree) - i
			}
			specs = []string{commentFree[i : i+end]}
		}

		for _, spec := range specs {
			entry, err := ParseImportSpec(spec)
			if err != nil {
				return ImportTable{}, err
			}
			entries = append(entries, entry)
		}
	}

	return NewImportTable(entries...), nil
}

func splitImportBlock(block string) []string {
	var specs []string
	for _, line := range strings.Split(block, "\n") {
		for _, spec := range strings.Split(line, ";") {
			if spec = strings.TrimSpace(spec); spec != "" {
				specs = append(specs, spec)
			}
		}
	}
	return specs
}
