package normalize

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates directory dir, including missing parents. An existing
// directory is fine, anything else at this path is an error wrapping
// ErrNotADirectory. Other failures, e.g. missing permissions, are returned
// as well.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		if fi, serr := os.Stat(dir); serr == nil && !fi.IsDir() {
			return fmt.Errorf("cannot create output directory %s: %w", dir, ErrNotADirectory)
		}
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}
	return nil
}

// OutputPath returns the path of the patched font:
// <OutputDir>/<OutputPrefix><base name of InputPath>.
func OutputPath(cfg Config) string {
	return filepath.Join(cfg.OutputDir, cfg.OutputPrefix+filepath.Base(cfg.InputPath))
}

// Export encodes the font and writes it to path. An existing file is
// overwritten.
func (f *Font) Export(path string) error {
	data, err := f.OTF.Encode()
	if err != nil {
		return fmt.Errorf("cannot encode font: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cannot export font: %w", err)
	}
	tracer().Infof("wrote %d bytes to %s", len(data), path)
	return nil
}
