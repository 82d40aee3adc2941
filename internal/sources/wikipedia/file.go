package wikipedia

import (
	"context"
	"os"

	"github.com/agentstation/eramap/pkg/errors"
)

// File reads previously saved page HTML from disk.
type File struct {
	Path string
}

// NewFile creates a file source.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Name returns the source name.
func (f *File) Name() string {
	return "file"
}

// Fetch returns the file's contents.
func (f *File) Fetch(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.WrapResource("read", "document", f.Path, err)
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return "", errors.WrapResource("read", "document", f.Path, err)
	}
	return string(data), nil
}
