// Package filex contains small filesystem helpers.
package filex

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotDir is returned by EnsureDir when the path exists but is not a directory.
var ErrNotDir = errors.New("not a directory")

// EnsureDir makes sure dir exists and is a directory, creating it and any
// missing parents when absent. An existing non-directory yields ErrNotDir;
// a failed mkdir is returned wrapped.
func EnsureDir(dir string) error {
	fi, err := os.Stat(dir)
	switch {
	case err == nil:
		if !fi.IsDir() {
			return fmt.Errorf("%s: %w", dir, ErrNotDir)
		}
		return nil
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("stat %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return nil
}
