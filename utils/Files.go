package utils

import (
	"fmt"
	"os"
)

// DeleteFileIfExists removes path when it is a regular file. A missing file is
// not an error.
func DeleteFileIfExists(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to check if file exists at path %s: %w", path, err)
	}

	if info.IsDir() {
		return fmt.Errorf("path %s is a directory, not a file", path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file at path %s: %w", path, err)
	}
	return nil
}
