package compose

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/splice/internal/lines"
)

// WriteFile replaces path with data atomically: the data goes to a
// temporary file in the same directory which is then renamed over path.
// On failure path is left untouched and the temporary file is removed.
func WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return ioErr("creating temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return ioErr("writing output", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return ioErr("closing temp file", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return ioErr("setting output permissions", err)
	}

	// Rename to final path (atomic on POSIX)
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return ioErr(fmt.Sprintf("replacing %s", path), err)
	}
	return nil
}

func ioErr(msg string, err error) error {
	return &lines.Error{Code: lines.ErrCodeIOFailure, Message: msg, Err: err}
}
