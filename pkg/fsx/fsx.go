// Package fsx abstracts the object storage used for uploaded files.
package fsx

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
)

// FileReader reads stored files
type FileReader interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	ReadFileStream(ctx context.Context, name string) (io.ReadCloser, error)
}

// FileWriter stores and removes files
type FileWriter interface {
	WriteFile(ctx context.Context, name string, data []byte) error
	DeleteFile(ctx context.Context, name string) error
}

// FileSystem is a flat key/value object store addressed by slash-separated names
type FileSystem interface {
	FileReader
	FileWriter

	// Join builds a storage name from path elements
	Join(elem ...string) string

	// URL returns the address clients use to download the file
	URL(name string) string
}

// Join is the slash-based join shared by implementations
func Join(elem ...string) string {
	return strings.TrimPrefix(path.Join(elem...), "/")
}

// ErrNotExist is returned when a named file is absent
var ErrNotExist = errors.New("fsx: file does not exist")
