package models

// GeneratedMock represents one rendered mock file
type GeneratedMock struct {
	Interface  *Interface // interface the mock implements
	FileName   string     // base name inside the output directory
	FilePath   string     // path the file is written to
	StructName string     // name of the generated struct
	Content    []byte     // formatted Go source
}
