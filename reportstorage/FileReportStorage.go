package reportstorage

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileReportStorage writes a finished report to a single file.
type FileReportStorage struct {
	Path string
}

func CreateFileReportStorage(path string) (FileReportStorage, error) {
	if path == "" {
		return FileReportStorage{}, fmt.Errorf("report path is required")
	}
	return FileReportStorage{Path: path}, nil
}

// Store replaces the file contents with data. The data lands in a temporary
// file in the same directory first, so a failed write leaves the previous
// report in place.
func (s FileReportStorage) Store(data []byte) error {
	dir := filepath.Dir(s.Path)
	tmp, err := os.CreateTemp(dir, ".report-*")
	if err != nil {
		return fmt.Errorf("failed to create report file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write report file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("failed to move report into %s: %w", s.Path, err)
	}
	return nil
}
