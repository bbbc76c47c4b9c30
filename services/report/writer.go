package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AggregateName is the reserved file name of the clan wide report.
const AggregateName = "__clan__"

const extension = ".csv"

// Writer owns the report files under a single output directory.
type Writer struct {
	Dir string
}

// NewWriter creates dir when it is missing.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &Writer{Dir: dir}, nil
}

// PlayerPath is the report file for a single player.
func (w *Writer) PlayerPath(displayName string) string {
	return filepath.Join(w.Dir, FileName(displayName))
}

// AggregatePath is the report file spanning every player of a run.
func (w *Writer) AggregatePath() string {
	return filepath.Join(w.Dir, AggregateName+extension)
}

// FileName maps a display name to its report file name.
func FileName(displayName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_").Replace(displayName)
	return name + extension
}

// Remove deletes a report, treating a missing file as success.
func (w *Writer) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// WriteHeader truncates path and writes the header line.
func (w *Writer) WriteHeader(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return writeRecord(f, Header)
}

// AppendRow adds one row at the end of path.
func (w *Writer) AppendRow(path string, row Row) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	return writeRecord(f, row.Record())
}

func writeRecord(f *os.File, record []string) error {
	cw := csv.NewWriter(f)
	if err := cw.Write(record); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", f.Name(), err)
	}
	return nil
}

// List returns the names of every report in the output directory, without extension.
func (w *Writer) List() ([]string, error) {
	entries, err := os.ReadDir(w.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", w.Dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != extension {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), extension))
	}
	return names, nil
}
