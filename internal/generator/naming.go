package generator

import (
	"go/token"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/toyz/mockslot/internal/models"
)

// FileBase returns the output file base name for iface, before collision suffixes
func FileBase(iface *models.Interface) string {
	return strings.ToLower(iface.Package + "_" + iface.Name + "_mock")
}

// StructName derives the mock struct name from a file base such as `store_store_mock`:
// the base is split on underscores, hyphens and dots and every segment is title-cased.
func StructName(base string) string {
	segments := strings.FieldsFunc(base, func(r rune) bool {
		return r == '_' || r == '-' || r == '.'
	})

	caser := cases.Title(language.Und)
	var name strings.Builder
	for _, segment := range segments {
		name.WriteString(caser.String(segment))
	}
	return name.String()
}

// ReceiverName returns the uppercase letters of structName lowercased. A receiver that
// would shadow a parameter of any delegate, or that is a keyword, gets a numeric suffix.
func ReceiverName(structName string, methods []models.Method) string {
	var short strings.Builder
	for _, r := range structName {
		if unicode.IsUpper(r) {
			short.WriteRune(unicode.ToLower(r))
		}
	}
	receiver := short.String()
	if receiver == "" {
		receiver = "m"
	}

	taken := make(map[string]bool)
	for _, method := range methods {
		for _, arg := range method.Args {
			taken[arg.Name] = true
		}
	}

	candidate := receiver
	for counter := 1; taken[candidate] || token.IsKeyword(candidate); counter++ {
		candidate = receiver + strconv.Itoa(counter)
	}
	return candidate
}
