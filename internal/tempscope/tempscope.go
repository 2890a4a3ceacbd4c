// Package tempscope provides scoped temporary-file acquisition.
//
// A Scope hands out uniquely named paths and removes everything it
// created when released. Callers defer Release so cleanup happens on
// every exit path, including failures.
package tempscope

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Scope owns a set of temporary paths. The zero value is not usable;
// call New.
type Scope struct {
	mu       sync.Mutex
	paths    []string
	released bool
}

func New() *Scope {
	return &Scope{}
}

// CreateFile creates a uniquely named empty file in the OS temp
// directory and registers it with the scope. The suffix (including any
// leading dot) is appended verbatim so consumers that key behavior off
// the file extension see the intended one.
func (s *Scope) CreateFile(prefix, suffix string) (string, error) {
	return s.CreateFileIn(os.TempDir(), prefix, suffix)
}

// CreateFileIn is CreateFile with an explicit parent directory, for
// callers whose consumers can only reach paths under a known root.
func (s *Scope) CreateFileIn(dir, prefix, suffix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return "", errors.New("tempscope: scope already released")
	}

	f, err := os.CreateTemp(dir, prefix+"-*"+suffix)
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	path := f.Name()
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close temp file: %w", err)
	}

	s.paths = append(s.paths, path)
	return path, nil
}

// CreateDir creates a uniquely named directory and registers it; the
// whole tree is removed on Release.
func (s *Scope) CreateDir(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return "", errors.New("tempscope: scope already released")
	}

	dir, err := os.MkdirTemp("", prefix+"-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	s.paths = append(s.paths, dir)
	return dir, nil
}

// Release removes every path the scope created. Idempotent. Removal
// errors for paths that no longer exist are ignored.
func (s *Scope) Release() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return nil
	}
	s.released = true

	var errs []error
	for _, p := range s.paths {
		if err := os.RemoveAll(p); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove %s: %w", filepath.Base(p), err))
		}
	}
	s.paths = nil
	return errors.Join(errs...)
}
