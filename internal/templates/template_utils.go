package templates

import (
	"strings"

	"github.com/toyz/mockslot/internal/models"
)

// TemplateUtils renders the signature fragments used by the mock template
type TemplateUtils struct{}

// NewTemplateUtils creates a new template utilities instance
func NewTemplateUtils() *TemplateUtils {
	return &TemplateUtils{}
}

// FieldName returns the name of the override slot for a method
func (tu *TemplateUtils) FieldName(method models.Method) string {
	return method.Name + "Mock"
}

// FuncType renders the slot type: argument types only, followed by the result clause
func (tu *TemplateUtils) FuncType(method models.Method) string {
	types := make([]string, len(method.Args))
	for i, arg := range method.Args {
		types[i] = arg.Type
	}
	return "func(" + strings.Join(types, ", ") + ")" + tu.ResultClause(method)
}

// ParamList renders the named argument list of a delegate method
func (tu *TemplateUtils) ParamList(method models.Method) string {
	params := make([]string, len(method.Args))
	for i, arg := range method.Args {
		params[i] = arg.Name + " " + arg.Type
	}
	return strings.Join(params, ", ")
}

// ResultClause renders the results as types with a leading space. A single result is
// written bare, several are parenthesized and none gives an empty string.
func (tu *TemplateUtils) ResultClause(method models.Method) string {
	switch len(method.Results) {
	case 0:
		return ""
	case 1:
		return " " + method.Results[0].Type
	}

	types := make([]string, len(method.Results))
	for i, result := range method.Results {
		types[i] = result.Type
	}
	return " (" + strings.Join(types, ", ") + ")"
}

// CallArgs renders the argument names forwarded to the slot
func (tu *TemplateUtils) CallArgs(method models.Method) string {
	names := make([]string, len(method.Args))
	for i, arg := range method.Args {
		names[i] = arg.Name
	}
	return strings.Join(names, ", ")
}
