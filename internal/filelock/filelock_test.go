package filelock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDirLock_LockUnlock(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")

	lock := NewDirLock(dir)
	if err := lock.TryLock(); err != nil {
		t.Fatalf("TryLock() error = %v", err)
	}

	if _, err := os.Stat(lock.Path()); err != nil {
		t.Errorf("lock file should exist while held: %v", err)
	}

	if err := lock.Unlock(); err != nil {
		t.Fatalf("Unlock() error = %v", err)
	}
	if _, err := os.Stat(lock.Path()); err != nil {
		t.Errorf("lock file should stay in place after Unlock: %v", err)
	}

	// The same file can be locked again by a new run
	again := NewDirLock(dir)
	if err := again.TryLock(); err != nil {
		t.Fatalf("TryLock() on an existing lock file error = %v", err)
	}
	again.Unlock()
}

func TestDirLock_ContentionAfterReuse(t *testing.T) {
	dir := t.TempDir()

	first := NewDirLock(dir)
	if err := first.TryLock(); err != nil {
		t.Fatal(err)
	}
	if err := first.Unlock(); err != nil {
		t.Fatal(err)
	}

	// Two runs starting after a release must still exclude each other
	second := NewDirLock(dir)
	if err := second.TryLock(); err != nil {
		t.Fatalf("second TryLock() error = %v", err)
	}
	defer second.Unlock()

	third := NewDirLock(dir)
	if err := third.TryLock(); !errors.Is(err, ErrLocked) {
		t.Fatalf("third TryLock() error = %v, want ErrLocked", err)
	}
}

func TestDirLock_Contention(t *testing.T) {
	dir := t.TempDir()

	first := NewDirLock(dir)
	if err := first.TryLock(); err != nil {
		t.Fatalf("first TryLock() error = %v", err)
	}
	defer first.Unlock()

	second := NewDirLock(dir)
	err := second.TryLock()
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second TryLock() error = %v, want ErrLocked", err)
	}

	if err := first.Unlock(); err != nil {
		t.Fatal(err)
	}
	if err := second.TryLock(); err != nil {
		t.Fatalf("TryLock() after release error = %v", err)
	}
	second.Unlock()
}

func TestDirLock_UnlockWithoutLock(t *testing.T) {
	if err := NewDirLock(t.TempDir()).Unlock(); err != nil {
		t.Errorf("Unlock() on an unheld lock error = %v", err)
	}
}

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "run.yaml")

	if err := AtomicWrite(path, []byte("first")); err != nil {
		t.Fatalf("AtomicWrite() error = %v", err)
	}
	if err := AtomicWrite(path, []byte("second")); err != nil {
		t.Fatalf("AtomicWrite() overwrite error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q, want %q", data, "second")
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %v", entries)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0644 {
		t.Errorf("mode = %v, want 0644", info.Mode().Perm())
	}
}
