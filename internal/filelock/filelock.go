// Package filelock guards destination directories against concurrent
// batch runs and writes result files atomically.
package filelock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// LockFileName is the lock file created inside a locked directory
const LockFileName = ".nblbatch.lock"

// ErrLocked is returned when another process holds the directory lock
var ErrLocked = errors.New("directory is locked by another nblbatch run")

// DirLock is an exclusive advisory lock on a directory.
// The lock lives in <dir>/.nblbatch.lock. The file is left in place on
// Unlock: unlinking it would let a waiting run lock the old inode while a
// newer run locks a fresh file at the same path.
type DirLock struct {
	flock *flock.Flock
	dir   string
	path  string
}

// NewDirLock creates a lock for dir. Nothing is touched on disk until
// TryLock is called.
func NewDirLock(dir string) *DirLock {
	path := filepath.Join(dir, LockFileName)
	return &DirLock{
		flock: flock.New(path),
		dir:   dir,
		path:  path,
	}
}

// Path returns the lock file path.
func (dl *DirLock) Path() string {
	return dl.path
}

// TryLock creates dir if needed and takes the lock without blocking.
// It returns ErrLocked (wrapped) when the lock is held elsewhere.
func (dl *DirLock) TryLock() error {
	if err := os.MkdirAll(dl.dir, 0777); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dl.dir, err)
	}

	acquired, err := dl.flock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to try lock on %s: %w", dl.path, err)
	}
	if !acquired {
		return fmt.Errorf("%s: %w", dl.dir, ErrLocked)
	}
	return nil
}

// Unlock releases the lock. It is a no-op when the lock is not held.
func (dl *DirLock) Unlock() error {
	if !dl.flock.Locked() {
		return nil
	}
	if err := dl.flock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", dl.path, err)
	}
	return nil
}

// AtomicWrite writes data to a file atomically using a temp file and rename.
// Readers never see a partial file; on failure the original is unchanged.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	// Same directory as the target so the rename stays on one filesystem
	tempFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempPath := tempFile.Name()

	defer func() {
		if tempFile != nil {
			tempFile.Close()
			os.Remove(tempPath)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tempFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}

	tempFile = nil
	return nil
}
