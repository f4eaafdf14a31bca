package parser

import (
	"go/token"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/models"
)

// builtinAbbreviations maps predeclared type names to the short parameter names
// synthesized for unnamed arguments of that type
var builtinAbbreviations = map[string]string{
	"bool":       "b",
	"string":     "s",
	"int":        "i",
	"int8":       "i",
	"int16":      "i",
	"int32":      "i",
	"int64":      "i",
	"uint":       "ui",
	"uint8":      "ui",
	"uint16":     "ui",
	"uint32":     "ui",
	"uint64":     "ui",
	"uintptr":    "ui",
	"byte":       "bt",
	"rune":       "r",
	"float32":    "f",
	"float64":    "f",
	"complex64":  "c",
	"complex128": "c",
	"error":      "err",
	"any":        "a",
	"interface":  "intfc",
	"struct":     "st",
}

// predeclaredTypes are never qualified with a package alias
var predeclaredTypes = map[string]bool{
	"bool": true, "string": true, "error": true, "any": true, "comparable": true,
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true, "uintptr": true,
	"byte": true, "rune": true, "float32": true, "float64": true,
	"complex64": true, "complex128": true,
}

// typeKeywords start an unnamed type even when followed by a space
var typeKeywords = map[string]bool{
	"func": true, "map": true, "chan": true, "struct": true, "interface": true,
}

var trailingIdentPattern = regexp.MustCompile(`[\p{L}_][\p{L}\p{N}_]*`)

// IsPredeclaredType reports whether name is one of the language's predeclared types
func IsPredeclaredType(name string) bool {
	return predeclaredTypes[name]
}

// SplitParams splits a parameter list on commas that are not nested inside
// parentheses, brackets or braces. Empty entries are dropped.
func SplitParams(list string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(list); i++ {
		switch list[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, list[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, list[start:])

	result := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitNameType splits `name type` on the first space outside any brackets.
// named is false when the token is a bare type.
func splitNameType(token string) (name, typ string, named bool) {
	depth := 0
	for i := 0; i < len(token); i++ {
		switch token[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ' ', '\t':
			if depth != 0 {
				continue
			}
			prefix := token[:i]
			if !identPattern.MatchString(prefix) || typeKeywords[prefix] {
				return "", token, false
			}
			return prefix, strings.TrimSpace(token[i:]), true
		}
	}
	return "", token, false
}

// ResolveParams turns a raw parameter list into named params. Unnamed types get a name
// synthesized from the type; repeated names get increasing numeric suffixes.
func ResolveParams(list string) ([]models.Param, error) {
	tokens := SplitParams(list)
	if len(tokens) == 0 {
		return nil, nil
	}

	type entry struct {
		name, typ string
		named     bool
	}
	entries := make([]entry, len(tokens))
	anyNamed := false
	for i, tok := range tokens {
		name, typ, named := splitNameType(tok)
		entries[i] = entry{name: name, typ: typ, named: named}
		anyNamed = anyNamed || named
	}

	// In a named list `a, b int` the bare names share the type of the next named entry
	if anyNamed {
		pending := ""
		for i := len(entries) - 1; i >= 0; i-- {
			if entries[i].named {
				pending = entries[i].typ
				continue
			}
			if pending == "" || !identPattern.MatchString(entries[i].typ) {
				return nil, errors.NewSyntaxErrorWithToken("mixed named and unnamed parameters", list)
			}
			entries[i] = entry{name: entries[i].typ, typ: pending, named: true}
		}
	}

	params := make([]models.Param, 0, len(entries))
	namer := newParamNamer()
	for _, e := range entries {
		if strings.HasPrefix(e.typ, "...") {
			return nil, errors.NewUnsupportedError("variadic parameter", tokensString(e.name, e.typ))
		}

		name := e.name
		if !e.named || name == "_" {
			name = SynthesizeName(e.typ)
		}

		params = append(params, models.Param{
			Name: namer.unique(name),
			Type: e.typ,
		})
	}

	return params, nil
}

func tokensString(name, typ string) string {
	if name == "" {
		return typ
	}
	return name + " " + typ
}

// SynthesizeName derives a parameter name from a type: the trailing identifier with its
// first letter lowercased, abbreviated when it names a predeclared type.
func SynthesizeName(typ string) string {
	idents := trailingIdentPattern.FindAllString(typ, -1)
	if len(idents) == 0 {
		return "arg"
	}

	ident := idents[len(idents)-1]
	r, size := utf8.DecodeRuneInString(ident)
	name := string(unicode.ToLower(r)) + ident[size:]
	if abbrev, ok := builtinAbbreviations[name]; ok {
		return abbrev
	}
	if token.IsKeyword(name) {
		return name + "Arg"
	}
	return name
}

// paramNamer hands out unique names within one parameter list
type paramNamer struct {
	used    map[string]bool
	counter map[string]int
}

func newParamNamer() *paramNamer {
	return &paramNamer{
		used:    make(map[string]bool),
		counter: make(map[string]int),
	}
}

func (n *paramNamer) unique(name string) string {
	if !n.used[name] {
		n.used[name] = true
		return name
	}

	for {
		n.counter[name]++
		candidate := name + strconv.Itoa(n.counter[name])
		if !n.used[candidate] {
			n.used[candidate] = true
			return candidate
		}
	}
}
