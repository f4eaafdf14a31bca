package templates

import (
	"strings"

	"github.com/toyz/mockslot/internal/models"
)

// ImportManager collects the imports of one generated file and renders the import section
type ImportManager struct {
	imports models.ImportSet
}

// NewImportManager creates a new import manager
func NewImportManager() *ImportManager {
	return &ImportManager{
		imports: models.NewImportSet(),
	}
}

// NewImportManagerFrom creates an import manager seeded with set
func NewImportManagerFrom(set models.ImportSet) *ImportManager {
	im := NewImportManager()
	for _, spec := range set.Specs() {
		im.AddPackageImport(spec.Alias, spec.Path)
	}
	return im
}

// AddPackageImport adds an import; alias may be empty
func (im *ImportManager) AddPackageImport(alias, path string) {
	if path != "" {
		im.imports.Add(models.ImportSpec{Alias: alias, Path: path})
	}
}

// GenerateImports renders the import section sorted by path: nothing when there are no
// imports, the one-line form for a single import and a block otherwise
func (im *ImportManager) GenerateImports() string {
	specs := im.imports.Specs()

	switch len(specs) {
	case 0:
		return ""
	case 1:
		return "import " + specs[0].String() + "\n"
	}

	var result strings.Builder
	result.WriteString("import (\n")
	for _, spec := range specs {
		result.WriteString("\t" + spec.String() + "\n")
	}
	result.WriteString(")\n")

	return result.String()
}
