package utils

import (
	"os"
	"path/filepath"

	"github.com/toyz/mockslot/internal/errors"
)

// FileReader reads source files for the scanner and the diff reporter
type FileReader struct{}

// NewFileReader creates a new FileReader instance
func NewFileReader() *FileReader {
	return &FileReader{}
}

// ReadFile reads a file and returns its contents as a string
func (fr *FileReader) ReadFile(filePath string) (string, error) {
	cleanPath, err := fr.cleanPath(filePath)
	if err != nil {
		return "", err
	}

	content, err := os.ReadFile(cleanPath)
	if err != nil {
		return "", errors.WrapFileSystemError("read file", cleanPath, err)
	}
	return string(content), nil
}

// ReadFileIfExists reads a file, reporting ok=false instead of an error when it is missing
func (fr *FileReader) ReadFileIfExists(filePath string) (content string, ok bool, err error) {
	cleanPath, err := fr.cleanPath(filePath)
	if err != nil {
		return "", false, err
	}

	data, err := os.ReadFile(cleanPath)
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.WrapFileSystemError("read file", cleanPath, err)
	}
	return string(data), true, nil
}

// Exists reports whether a regular file exists at filePath
func (fr *FileReader) Exists(filePath string) bool {
	info, err := os.Stat(filepath.Clean(filePath))
	return err == nil && !info.IsDir()
}

func (fr *FileReader) cleanPath(filePath string) (string, error) {
	if err := NotEmpty("filePath")(filePath); err != nil {
		return "", errors.WrapConfigurationError("filePath", "validate", err)
	}
	return filepath.Clean(filePath), nil
}
