package filesystem

import (
	"errors"
	"io/fs"
	"os"
)

// FileExists reports whether something exists at path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
