// Package save writes era records to their output artifact.
package save

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/eramap/pkg/constants"
	"github.com/agentstation/eramap/pkg/eras"
	"github.com/agentstation/eramap/pkg/errors"
)

// Records encodes records and writes them to the configured writer, or
// atomically to the configured path.
func Records(records []eras.Record, opts ...Option) error {
	options := Defaults().Apply(opts...)

	data, err := Encode(records, options.Format())
	if err != nil {
		return err
	}

	if w := options.Writer(); w != nil {
		if _, err := w.Write(data); err != nil {
			return errors.WrapIO("write", "output", err)
		}
		return nil
	}

	if options.Path() == "" {
		return &errors.ConfigError{
			Component: "save",
			Message:   "no output path configured",
		}
	}
	return WriteFileAtomic(options.Path(), bytes.NewReader(data))
}

// Encode renders records in format f. JSON output keeps non-ASCII and HTML
// characters literal and is indented with two spaces.
func Encode(records []eras.Record, f Format) ([]byte, error) {
	if records == nil {
		records = []eras.Record{}
	}

	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(records); err != nil {
			return nil, errors.WrapParse("json", "", err)
		}
		return buf.Bytes(), nil
	case FormatYAML:
		data, err := yaml.Marshal(records)
		if err != nil {
			return nil, errors.WrapParse("yaml", "", err)
		}
		return data, nil
	}
	return nil, errors.NewValidationError("format", f.String(), "unsupported output format")
}

// WriteFileAtomic writes r to a temporary file beside path and renames it
// into place, so path holds either the old content or the complete new one.
func WriteFileAtomic(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.WrapIO("create", "temp file", err)
	}
	tempPath := tempFile.Name()

	if _, err := io.Copy(tempFile, r); err != nil {
		_ = tempFile.Close()
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}
	if err := tempFile.Close(); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("write", path, err)
	}
	if err := os.Chmod(tempPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("chmod", path, err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return errors.WrapIO("move", path, err)
	}
	return nil
}
