package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"go.mod":         "module example.com/app\n",
		"store/store.go":  "package store\n\nimport \"context\"\n\ntype Store interface {\n\tPing(ctx context.Context) error\n}\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestRun_Help(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-help"}, &stdout, &stderr)

	assert.Equal(t, exitOK, code)
	assert.Contains(t, stderr.String(), "Usage: mockslot [options]")
	assert.Contains(t, stderr.String(), "-formatter")
	assert.Contains(t, stderr.String(), "-diff")
}

func TestRun_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown flag", []string{"-bogus"}},
		{"positional argument", []string{"./..."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, exitUsage, run(tt.args, &stdout, &stderr))
		})
	}
}

func TestRun_Generate(t *testing.T) {
	root := writeModule(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-root", root, "-formatter", "none", "-package", "fakes"}, &stdout, &stderr)

	require.Equal(t, exitOK, code, stderr.String())
	content, err := os.ReadFile(filepath.Join(root, "mocks", "store_store_mock.go"))
	require.NoError(t, err)
	assert.Contains(t, string(content), "package fakes\n")
	assert.Contains(t, string(content), "PingMock func(context.Context) error")
	assert.Contains(t, stdout.String(), "mockslot: done")
}

func TestRun_Diff(t *testing.T) {
	root := writeModule(t)
	var stdout, stderr bytes.Buffer

	assert.Equal(t, exitOutdated, run([]string{"-root", root, "-formatter", "none", "-diff"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "store_store_mock.go (generated)")
	assert.NoDirExists(t, filepath.Join(root, "mocks"))

	require.Equal(t, exitOK, run([]string{"-root", root, "-formatter", "none", "-quiet"}, &stdout, &stderr))
	assert.Equal(t, exitOK, run([]string{"-root", root, "-formatter", "none", "-diff", "-quiet"}, &stdout, &stderr))
}

func TestRun_Failure(t *testing.T) {
	root := writeModule(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-root", root, "-out", "."}, &stdout, &stderr)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr.String(), "Type: Configuration Error")
}

func TestRun_FailureQuiet(t *testing.T) {
	root := writeModule(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-root", root, "-out", ".", "-quiet", "-verbose"}, &stdout, &stderr)

	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr.String(), "! -quiet and -verbose both set")
	assert.Contains(t, stderr.String(), "[ERROR]")
	assert.Contains(t, stderr.String(), "hint: choose a dedicated directory")
	assert.NotContains(t, stderr.String(), "Type: Configuration Error")
	assert.Empty(t, stdout.String())
}
