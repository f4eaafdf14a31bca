package generator

import "github.com/toyz/mockslot/internal/models"

// CodeGenerator renders the mock of one interface inside a run
type CodeGenerator interface {
	Generate(iface *models.Interface, run *Run) (*models.GeneratedMock, error)
}
