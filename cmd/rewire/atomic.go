package main

import (
	"os"
	"path/filepath"
)

// tempFile abstracts an os.File for testability.
type tempFile interface {
	Name() string
	Write([]byte) (int, error)
	Close() error
}

// File operation hooks, overridden in tests.
var (
	mkdirAll       = os.MkdirAll
	createTempFile = func(dir, pattern string) (tempFile, error) { return os.CreateTemp(dir, pattern) }
	chmodFile      = os.Chmod
	renameFile     = os.Rename
	removeFile     = os.Remove
)

// writeFileAtomic writes data to a temporary file in the target's directory
// and renames it over targetPath, so readers never observe partial output.
// The directory is created if missing, as -out may name a new one. The
// temporary file is removed on failure.
func writeFileAtomic(targetPath string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(targetPath)
	if err = mkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmpFile, err := createTempFile(dir, filepath.Base(targetPath)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if err != nil {
			_ = removeFile(tmpPath)
		}
	}()

	if _, err = tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err = tmpFile.Close(); err != nil {
		return err
	}
	if err = chmodFile(tmpPath, perm); err != nil {
		return err
	}
	return renameFile(tmpPath, targetPath)
}
