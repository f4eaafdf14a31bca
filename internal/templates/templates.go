package templates

import (
	"bytes"
	"text/template"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/models"
)

// GeneratedHeader marks every file written by the tool
const GeneratedHeader = "// Code generated by mockslot. DO NOT EDIT."

// MockFileTemplate renders one mock file. Formatting is left to go/format.
const MockFileTemplate = `{{.Header}}
// Source: {{.SourceFile}}

package {{.PackageName}}
{{if .Imports}}
{{.Imports}}{{end}}
// {{.StructName}} is a mock of {{.InterfaceRef}}. Assign a <Method>Mock field to override that method.
type {{.StructName}} struct {
{{- if .Embedded}}
	{{.Embedded}}
{{- end}}
{{- range .Methods}}
	{{fieldName .}} {{funcType .}}
{{- end}}
}
{{range .Methods}}
func ({{$.Receiver}} *{{$.StructName}}) {{.Name}}({{paramList .}}){{resultClause .}} {
	{{if .Results}}return {{end}}{{$.Receiver}}.{{fieldName .}}({{callArgs .}})
}
{{end}}`

// MockFileData is the input of MockFileTemplate
type MockFileData struct {
	Header       string
	SourceFile   string
	PackageName  string
	Imports      string
	StructName   string
	InterfaceRef string // how the mocked interface is referred to in comments
	Embedded     string // embedded original interface, empty for fully mockable interfaces
	Receiver     string
	Methods      []models.Method // methods that get a slot and a delegate
}

// NewMockFileData builds the template input for iface
func NewMockFileData(iface *models.Interface, packageName, structName, receiver string) MockFileData {
	data := MockFileData{
		Header:       GeneratedHeader,
		SourceFile:   iface.SourceFile,
		PackageName:  packageName,
		Imports:      NewImportManagerFrom(iface.Imports).GenerateImports(),
		StructName:   structName,
		InterfaceRef: iface.Package + "." + iface.Name,
		Receiver:     receiver,
		Methods:      iface.Methods,
	}

	if iface.Kind == models.EmbedsOriginal {
		data.Embedded = iface.SelfAlias + "." + iface.Name
		data.InterfaceRef = data.Embedded
		data.Methods = iface.ExportedMethods()
	}

	return data
}

// RenderMockFile executes MockFileTemplate
func RenderMockFile(data MockFileData) (string, error) {
	return executeTemplate("mock-file", MockFileTemplate, data)
}

// executeTemplate executes a Go template with the given data
func executeTemplate(name, templateStr string, data interface{}) (string, error) {
	tu := NewTemplateUtils()
	funcMap := template.FuncMap{
		"fieldName":    tu.FieldName,
		"funcType":     tu.FuncType,
		"paramList":    tu.ParamList,
		"resultClause": tu.ResultClause,
		"callArgs":     tu.CallArgs,
	}

	tmpl, err := template.New(name).Funcs(funcMap).Parse(templateStr)
	if err != nil {
		return "", errors.WrapTemplateError(name, "parse", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.WrapTemplateError(name, "execute", err)
	}

	return buf.String(), nil
}
