package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/mockslot/internal/errors"
	"github.com/toyz/mockslot/internal/models"
)

func extract(t *testing.T, src, pkgPath string) *FileResult {
	t.Helper()
	result, err := NewExtractor().Extract("input.go", src, pkgPath)
	require.NoError(t, err)
	return result
}

func TestExtract_Reader(t *testing.T) {
	src := `package io

type Reader interface {
	Read(p []byte) (n int, err error)
}
`
	result := extract(t, src, "example.com/mod/io")

	require.Len(t, result.Interfaces, 1)
	iface := result.Interfaces[0]
	assert.Equal(t, "Reader", iface.Name)
	assert.Equal(t, "io", iface.Package)
	assert.Equal(t, "example.com/mod/io", iface.PackagePath)
	assert.Equal(t, models.FullyMockable, iface.Kind)
	assert.Empty(t, iface.Imports.Specs())
	assert.Empty(t, iface.SelfAlias)

	require.Len(t, iface.Methods, 1)
	assert.Equal(t, models.Method{
		Name:    "Read",
		Args:    []models.Param{{Name: "p", Type: "[]byte"}},
		Results: []models.Param{{Name: "n", Type: "int"}, {Name: "err", Type: "error"}},
	}, iface.Methods[0])
}

func TestExtract_Store(t *testing.T) {
	src := `package store

import "context"

// Store persists items.
type Store interface {
	// Save writes one item.
	Save(Item) error
	Load(ctx context.Context, id string) (*Item, error) // by id
}
`
	result := extract(t, src, "example.com/app/store")

	require.Len(t, result.Interfaces, 1)
	iface := result.Interfaces[0]
	require.Len(t, iface.Methods, 2)

	assert.Equal(t, []models.Param{{Name: "item", Type: "store.Item"}}, iface.Methods[0].Args)
	assert.Equal(t, []models.Param{{Name: "err", Type: "error"}}, iface.Methods[0].Results)

	assert.Equal(t, []models.Param{
		{Name: "ctx", Type: "context.Context"},
		{Name: "id", Type: "string"},
	}, iface.Methods[1].Args)
	assert.Equal(t, []models.Param{
		{Name: "item", Type: "*store.Item"},
		{Name: "err", Type: "error"},
	}, iface.Methods[1].Results)

	assert.Equal(t, "store", iface.SelfAlias)
	assert.Equal(t, []models.ImportSpec{
		{Path: "context"},
		{Path: "example.com/app/store"},
	}, iface.Imports.Specs())
}

func TestExtract_HeaderMatching(t *testing.T) {
	src := "package shapes\n" +
		"\n" +
		"// type Commented interface {\n" +
		"/*\n" +
		"type Blocked interface {\n" +
		"*/\n" +
		"var usage = `\n" +
		"type Quoted interface {\n" +
		"`\n" +
		"\n" +
		"type (\n" +
		"\tArea interface {\n" +
		"\t\tArea() float64\n" +
		"\t}\n" +
		"\n" +
		"\tHolder struct {\n" +
		"\t\tinner interface {\n" +
		"\t\t\tHidden()\n" +
		"\t\t}\n" +
		"\t}\n" +
		"\n" +
		"\tPerimeter interface{ Perimeter() float64 }\n" +
		")\n" +
		"\n" +
		"func build() {\n" +
		"\ttype local interface {\n" +
		"\t\tLocal()\n" +
		"\t}\n" +
		"}\n" +
		"\n" +
		"type Named interface {\n" +
		"\tName() string\n" +
		"}\n"

	result := extract(t, src, "example.com/shapes")

	var names []string
	for _, iface := range result.Interfaces {
		names = append(names, iface.Name)
	}
	assert.Equal(t, []string{"Area", "Perimeter", "Named"}, names)

	require.Len(t, result.Interfaces[1].Methods, 1)
	assert.Equal(t, "Perimeter", result.Interfaces[1].Methods[0].Name)
}

func TestExtract_MultiLineMethod(t *testing.T) {
	src := `package store

import "context"

type Writer interface {
	Write(
		ctx context.Context,
		key, value string,
	) error
	Flush(); Close() error
}
`
	result := extract(t, src, "example.com/app/store")

	require.Len(t, result.Interfaces, 1)
	methods := result.Interfaces[0].Methods
	require.Len(t, methods, 3)

	assert.Equal(t, []models.Param{
		{Name: "ctx", Type: "context.Context"},
		{Name: "key", Type: "string"},
		{Name: "value", Type: "string"},
	}, methods[0].Args)
	assert.Equal(t, "Flush", methods[1].Name)
	assert.Equal(t, "Close", methods[2].Name)
}

func TestExtract_ZeroMethods(t *testing.T) {
	result := extract(t, "package any\n\ntype Anything interface{}\n", "example.com/any")

	require.Len(t, result.Interfaces, 1)
	assert.Empty(t, result.Interfaces[0].Methods)
	assert.Empty(t, result.Interfaces[0].Imports.Specs())
}

func TestExtract_UnexportedMethods(t *testing.T) {
	src := `package engine

type Engine interface {
	Start() error
	tick(n int)
}
`
	result := extract(t, src, "example.com/app/engine")

	require.Len(t, result.Interfaces, 1)
	iface := result.Interfaces[0]
	assert.Equal(t, models.EmbedsOriginal, iface.Kind)
	assert.Equal(t, "engine", iface.SelfAlias)

	assert.Equal(t, []models.ImportSpec{{Path: "example.com/app/engine"}}, iface.Imports.Specs())
	require.Len(t, iface.ExportedMethods(), 1)
	assert.Equal(t, "Start", iface.ExportedMethods()[0].Name)
}

func TestExtract_UnexportedMethodTypesStayPrivate(t *testing.T) {
	src := `package engine

import "time"

type state struct{}

type Engine interface {
	Start() error
	tick(at time.Time, s *state)
}
`
	result := extract(t, src, "example.com/app/engine")

	assert.Empty(t, result.Skipped)
	require.Len(t, result.Interfaces, 1)
	assert.Equal(t, models.EmbedsOriginal, result.Interfaces[0].Kind)
	assert.Equal(t, []models.ImportSpec{{Path: "example.com/app/engine"}}, result.Interfaces[0].Imports.Specs())
}

func TestExtract_SkipReasons(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		reason string
	}{
		{
			name:   "unexported argument type",
			src:    "package store\n\ntype item struct{}\n\ntype Store interface {\n\tSave(it item) error\n}\n",
			reason: "item is not visible outside package store",
		},
		{
			name:   "method named like an override slot",
			src:    "package p\n\ntype A interface {\n\tGet() error\n\tGetMock() error\n}\n",
			reason: "GetMock collides with the override slot of Get",
		},
		{
			name:   "method named like the embedded interface",
			src:    "package p\n\ntype Store interface {\n\tStore() error\n\tflush()\n}\n",
			reason: "Store collides with the embedded interface",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extract(t, tt.src, "example.com/p")

			assert.Empty(t, result.Interfaces)
			require.Len(t, result.Skipped, 1)
			assert.Contains(t, result.Skipped[0].Reason, tt.reason)
		})
	}
}

func TestExtract_Skipped(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "embedded interface",
			src:  "package p\n\ntype ReadCloser interface {\n\tio.Reader\n\tClose() error\n}\n",
		},
		{
			name: "type parameters",
			src:  "package p\n\ntype Getter[T any] interface {\n\tGet() T\n}\n",
		},
		{
			name: "variadic argument",
			src:  "package p\n\ntype Logger interface {\n\tLog(format string, args ...any)\n}\n",
		},
		{
			name: "unexported interface with unexported methods",
			src:  "package p\n\ntype hidden interface {\n\tsecret()\n}\n",
		},
		{
			name: "unexported result type",
			src:  "package p\n\ntype Store interface {\n\tLoad() (*item, error)\n}\n\ntype item struct{}\n",
		},
		{
			name: "unexported array length",
			src:  "package p\n\ntype Hasher interface {\n\tSum() [size]byte\n}\n",
		},
		{
			name: "method named like an override slot",
			src:  "package p\n\ntype A interface {\n\tGet() error\n\tGetMock() error\n}\n",
		},
		{
			name: "package main",
			src:  "package main\n\ntype Runner interface {\n\tRun() error\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := extract(t, tt.src, "example.com/p")

			assert.Empty(t, result.Interfaces)
			require.Len(t, result.Skipped, 1)
			assert.Equal(t, 3, result.Skipped[0].Location.Line)
			assert.NotEmpty(t, result.Skipped[0].Reason)
		})
	}
}

func TestExtract_Errors(t *testing.T) {
	t.Run("unterminated body", func(t *testing.T) {
		src := "package p\n\ntype Broken interface {\n\tRun() error\n"

		_, err := NewExtractor().Extract("broken.go", src, "example.com/p")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.SyntaxErrorCode))

		var se *errors.SyntaxError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, "broken.go", se.Location().File)
		assert.Equal(t, 3, se.Location().Line)
	})

	t.Run("malformed method line", func(t *testing.T) {
		src := "package p\n\ntype Broken interface {\n\tRun() error\n\tStop(error\n}\n"

		_, err := NewExtractor().Extract("broken.go", src, "example.com/p")
		require.Error(t, err)

		var se *errors.SyntaxError
		require.ErrorAs(t, err, &se)
		assert.Equal(t, 5, se.Location().Line)
	})

	t.Run("unknown qualifier", func(t *testing.T) {
		src := "package p\n\ntype Clock interface {\n\tNow() time.Time\n}\n"

		_, err := NewExtractor().Extract("clock.go", src, "example.com/p")
		require.Error(t, err)
		assert.True(t, errors.HasCode(err, errors.SyntaxErrorCode))
	})
}

func TestExtract_NoPackageClause(t *testing.T) {
	result := extract(t, "type Lost interface {\n\tFind()\n}\n", "example.com/p")

	assert.Nil(t, result.File)
	assert.Empty(t, result.Interfaces)
}
