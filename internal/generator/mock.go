package generator

import (
	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/models"
	"github.com/toyz/mockslot/internal/templates"
	"github.com/toyz/mockslot/internal/utils"
)

// DefaultPackageName is the package clause of generated files when none is configured
const DefaultPackageName = "mocks"

// MockGenerator renders mock files
type MockGenerator struct {
	packageName string
}

// NewMockGenerator creates a generator emitting files in package packageName
func NewMockGenerator(packageName string) *MockGenerator {
	if packageName == "" {
		packageName = DefaultPackageName
	}
	return &MockGenerator{packageName: packageName}
}

// Generate renders the mock of iface. The file name is reserved in run, so two
// interfaces never share a file or a struct name. Nothing is written to disk.
func (g *MockGenerator) Generate(iface *models.Interface, run *Run) (*models.GeneratedMock, error) {
	if iface == nil {
		return nil, errors.NewGenerationError("interface cannot be nil")
	}

	fileName, structName := run.ReserveFile(FileBase(iface))

	methods := iface.Methods
	if iface.Kind == models.EmbedsOriginal {
		methods = iface.ExportedMethods()
	}
	receiver := ReceiverName(structName, methods)

	data := templates.NewMockFileData(iface, g.packageName, structName, receiver)
	source, err := templates.RenderMockFile(data)
	if err != nil {
		return nil, errors.WrapGenerateError("render", iface.Package+"."+iface.Name, err)
	}

	content, err := utils.FormatGoCode([]byte(source))
	if err != nil {
		return nil, errors.WrapGenerateError("format", iface.Package+"."+iface.Name, err).
			WithContext("source", source)
	}

	return &models.GeneratedMock{
		Interface:  iface,
		FileName:   fileName,
		FilePath:   run.Path(fileName),
		StructName: structName,
		Content:    content,
	}, nil
}
