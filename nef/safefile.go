package nef

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SafeFilename returns path if nothing exists there, else the first
// variant with (n) inserted before the extension that is free. The
// check is advisory; createSafe claims the name atomically for writes.
func SafeFilename(path string) string {
	for i, name := 0, path; ; i++ {
		if _, err := os.Stat(name); errors.Is(err, fs.ErrNotExist) {
			return name
		}
		name = numberedPath(path, i+1)
	}
}

// createSafe opens the first free (n)-numbered variant of path for
// writing, creating it exclusively so concurrent writers cannot claim
// the same name.
func createSafe(path string) (*os.File, string, error) {
	for i, name := 0, path; ; i++ {
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
		if err == nil {
			return f, name, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
		name = numberedPath(path, i+1)
	}
}

func numberedPath(path string, n int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s(%d)%s", strings.TrimSuffix(path, ext), n, ext)
}
