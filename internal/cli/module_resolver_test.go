package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toyz/mockslot/internal/errors"
)

func TestModuleResolver_ResolveModuleName(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"go.mod":          "module example.com/app\n\ngo 1.22\n",
		"internal/a/a.go": "package a\n",
	})
	resolver := NewModuleResolver()

	t.Run("at the module root", func(t *testing.T) {
		module, err := resolver.ResolveModuleName(root, "")
		require.NoError(t, err)
		assert.Equal(t, "example.com/app", module.Path)
		assert.Equal(t, root, module.Dir)
	})

	t.Run("walks up from a subdirectory", func(t *testing.T) {
		module, err := resolver.ResolveModuleName(filepath.Join(root, "internal", "a"), "")
		require.NoError(t, err)
		assert.Equal(t, "example.com/app", module.Path)
		assert.Equal(t, root, module.Dir)
	})

	t.Run("custom module keeps the go.mod directory", func(t *testing.T) {
		module, err := resolver.ResolveModuleName(filepath.Join(root, "internal"), "example.com/custom")
		require.NoError(t, err)
		assert.Equal(t, "example.com/custom", module.Path)
		assert.Equal(t, root, module.Dir)
	})
}

func TestModuleResolver_ResolveModuleName_NoModuleDirective(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"go.mod": "go 1.22\n"})

	_, err := NewModuleResolver().ResolveModuleName(root, "")
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}

func TestModuleResolver_BuildPackagePath(t *testing.T) {
	root := t.TempDir()
	module := &ModuleInfo{Path: "example.com/app", Dir: root}
	resolver := NewModuleResolver()

	path, err := resolver.BuildPackagePath(module, root)
	require.NoError(t, err)
	assert.Equal(t, "example.com/app", path)

	path, err = resolver.BuildPackagePath(module, filepath.Join(root, "internal", "store"))
	require.NoError(t, err)
	assert.Equal(t, "example.com/app/internal/store", path)

	_, err = resolver.BuildPackagePath(module, filepath.Dir(root))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ConfigurationErrorCode))
}
