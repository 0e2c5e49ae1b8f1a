package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidFileName = errors.New("invalid file name")

// Output writes generated files into a single directory.
type Output struct {
	dir string
}

func NewOutput(dir string) *Output {
	return &Output{dir: dir}
}

// Dir returns the output directory.
func (o *Output) Dir() string {
	return o.dir
}

// Write renders doc with exp into <dir>/<name>.<format> and returns the path.
// The file only appears once rendering has succeeded, and an existing file is
// never replaced.
func (o *Output) Write(name string, exp Exporter, doc Document) (string, error) {
	path, err := o.path(name, exp.Format())
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := exp.Export(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", exp.Format(), err)
	}
	if err := os.MkdirAll(o.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return "", fmt.Errorf("%w: %q already exists", ErrInvalidFileName, filepath.Base(path))
	}
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		file.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Rename moves the file at oldPath to newName in the output directory, keeping
// its extension, and returns the new path.
func (o *Output) Rename(oldPath, newName string) (string, error) {
	ext := strings.TrimPrefix(filepath.Ext(oldPath), ".")
	newPath, err := o.path(newName, Format(ext))
	if err != nil {
		return "", err
	}
	if newPath == oldPath {
		return oldPath, nil
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", fmt.Errorf("%w: %q already exists", ErrInvalidFileName, newName)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", fmt.Errorf("failed to rename file: %w", err)
	}
	return newPath, nil
}

// Remove deletes the file at path. A file that is already gone is not an error.
func (o *Output) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Open opens a generated file for reading.
func (o *Output) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (o *Output) path(name string, format Format) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return filepath.Join(o.dir, name+"."+string(format)), nil
}
