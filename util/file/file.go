package file

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

// WriteAtomic writes <data> to <path> through a temporary file in the same directory renamed over <path>.
//
// On error <path> is either absent or left as it was before.
func WriteAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "Create temporary file")
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return errors.Wrap(err, "Write temporary file")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "Close temporary file")
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "Set file permissions")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return errors.Wrap(err, "Replace destination file")
	}
	return nil
}

// Append appends <data> to <path>, creating it if it does not exist.
//
// On failed write the file is truncated back to the size it had before and closed before returning the error.
func Append(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrap(err, "Open file to append")
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return errors.Wrap(err, "Get file size")
	}
	if _, err := f.Write(data); err != nil {
		truncErr := f.Truncate(info.Size())
		f.Close()
		return errors.CombineErrors(errors.Wrap(err, "Append to file"), truncErr)
	}
	return errors.Wrap(f.Close(), "Close file")
}
