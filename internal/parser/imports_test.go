package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/mockslot/internal/errors"
)

func TestParseImportSpec(t *testing.T) {
	tests := []struct {
		spec     string
		expected ImportEntry
	}{
		{spec: `"fmt"`, expected: ImportEntry{Path: "fmt"}},
		{spec: `f "fmt"`, expected: ImportEntry{Alias: "f", Path: "fmt"}},
		{spec: `_ "embed"`, expected: ImportEntry{Alias: "_", Path: "embed"}},
		{spec: `. "strings"`, expected: ImportEntry{Alias: ".", Path: "strings"}},
		{spec: "`io`", expected: ImportEntry{Path: "io"}},
		{spec: `cfg "example.com/config" // settings`, expected: ImportEntry{Alias: "cfg", Path: "example.com/config"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := ParseImportSpec(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}

	t.Run("rejects a spec without a path", func(t *testing.T) {
		_, err := ParseImportSpec("fmt")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.SyntaxErrorCode))
	})
}

func TestParseImportTable(t *testing.T) {
	t.Run("single and block forms", func(t *testing.T) {
		src := `package store

import "errors"

import (
	"context" // request scope
	cfg "example.com/config"
	_ "embed"
	. "strings"
	/* legacy */ "io"
)
`
		table, err := ParseImportTable(src)
		require.NoError(t, err)
		assert.Equal(t, NewImportTable(
			ImportEntry{Path: "errors"},
			ImportEntry{Path: "context"},
			ImportEntry{Alias: "cfg", Path: "example.com/config"},
			ImportEntry{Alias: "_", Path: "embed"},
			ImportEntry{Alias: ".", Path: "strings"},
			ImportEntry{Path: "io"},
		), table)
	})

	t.Run("ignores imports inside comments and strings", func(t *testing.T) {
		src := "package store\n\n// import \"os\"\n/*\nimport \"net\"\n*/\nvar doc = `\nimport \"bufio\"\n`\n\nimport \"fmt\"\n"

		table, err := ParseImportTable(src)
		require.NoError(t, err)
		assert.Equal(t, NewImportTable(ImportEntry{Path: "fmt"}), table)
	})

	t.Run("no imports", func(t *testing.T) {
		table, err := ParseImportTable("package store\n\ntype Item struct{}\n")
		require.NoError(t, err)
		assert.Equal(t, NewImportTable(), table)
		assert.False(t, table.Taken("store"))
	})

	t.Run("unterminated block", func(t *testing.T) {
		_, err := ParseImportTable("package store\n\nimport (\n\t\"fmt\"\n")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.SyntaxErrorCode))
	})
}

func TestImportTable_Lookup(t *testing.T) {
	table := NewImportTable(
		ImportEntry{Path: "github.com/mattn/go-isatty"},
		ImportEntry{Path: "gopkg.in/yaml.v3"},
		ImportEntry{Path: "github.com/alecthomas/participle/v2"},
		ImportEntry{Alias: "isatty", Path: "example.com/fork/isatty"},
		ImportEntry{Alias: "_", Path: "embed"},
	)

	entry, ok := table.Lookup("isatty")
	require.True(t, ok)
	assert.Equal(t, "example.com/fork/isatty", entry.Path, "explicit alias wins")

	entry, ok = table.Lookup("yaml")
	require.True(t, ok)
	assert.Equal(t, "gopkg.in/yaml.v3", entry.Path)

	entry, ok = table.Lookup("participle")
	require.True(t, ok)
	assert.Equal(t, "github.com/alecthomas/participle/v2", entry.Path)

	_, ok = table.Lookup("embed")
	assert.False(t, ok)
	_, ok = table.Lookup("v2")
	assert.False(t, ok)

	assert.True(t, table.Taken("goisatty"))
	assert.False(t, table.Taken("_"))
}

func TestImportNameCandidates(t *testing.T) {
	tests := []struct {
		path     string
		expected []string
	}{
		{path: "fmt", expected: []string{"fmt"}},
		{path: "net/http", expected: []string{"http"}},
		{path: "github.com/google/uuid", expected: []string{"uuid"}},
		{path: "github.com/alecthomas/participle/v2", expected: []string{"participle"}},
		{path: "gopkg.in/yaml.v3", expected: []string{"yaml"}},
		{path: "github.com/mattn/go-isatty", expected: []string{"isatty", "goisatty", "go_isatty"}},
		{path: "github.com/example/client-go", expected: []string{"client", "clientgo", "client_go"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.expected, ImportNameCandidates(tt.path))
			assert.Equal(t, tt.expected[0], DefaultPackageName(tt.path))
		})
	}
}

func TestScanFile(t *testing.T) {
	t.Run("package clause after a leading comment", func(t *testing.T) {
		src := "// Package store keeps items.\n/* build notes */\npackage store\n\nimport \"context\"\n"

		file, err := ScanFile("store/store.go", src)
		require.NoError(t, err)
		require.NotNil(t, file)
		assert.Equal(t, "store", file.Package)
		assert.Equal(t, "store/store.go", file.Path)
		assert.Equal(t, NewImportTable(ImportEntry{Path: "context"}), file.Imports)
	})

	t.Run("no package clause", func(t *testing.T) {
		file, err := ScanFile("notes.go", "just some text\n")
		require.NoError(t, err)
		assert.Nil(t, file)
	})

	t.Run("import error carries the file", func(t *testing.T) {
		_, err := ScanFile("broken.go", "package broken\n\nimport (\n")
		require.Error(t, err)

		var se *errors.SyntaxError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "broken.go", se.Location().File)
		assert.Equal(t, 3, se.Location().Line)
	})
}

func TestPackageName(t *testing.T) {
	name, ok := PackageName("package main\n")
	assert.True(t, ok)
	assert.Equal(t, "main", name)

	_, ok = PackageName("type X int\npackage late\n")
	assert.False(t, ok)
}
