package platform

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotDirectory is returned when the base path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ErrNotWritable is returned when the base directory cannot be written to.
var ErrNotWritable = errors.New("directory is not writable")

// CheckBaseDir verifies that path is an existing, writable directory.
func CheckBaseDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("base directory %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("base directory %s: %w", path, ErrNotDirectory)
	}
	if err := checkWritable(path, info); err != nil {
		return fmt.Errorf("base directory %s: %w", path, err)
	}
	return nil
}
