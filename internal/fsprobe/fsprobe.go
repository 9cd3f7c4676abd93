// Package fsprobe holds the small filesystem probes the doctor commands
// are built from. Nothing here ever overwrites or removes an existing
// path.
package fsprobe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ErrSourceMissing is returned by Symlink when the link target does not
// exist.
var ErrSourceMissing = errors.New("source does not exist")

// DirResult reports what EnsureDir did.
type DirResult int

const (
	DirExisted DirResult = iota
	DirCreated
)

// LinkResult reports what Symlink did.
type LinkResult int

const (
	LinkExisted LinkResult = iota
	LinkCreated
)

func (r LinkResult) String() string {
	if r == LinkCreated {
		return "created"
	}
	return "existed"
}

// Exists reports whether anything is present at path. Symlinks are not
// followed, so a dangling link counts as present.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// EnsureDir creates path and its parents unless it already exists.
func EnsureDir(path string) (DirResult, error) {
	if Exists(path) {
		return DirExisted, nil
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return DirExisted, fmt.Errorf("create directory %s: %w", path, err)
	}
	return DirCreated, nil
}

// Symlink creates dest pointing at src. An existing dest is left alone.
func Symlink(src, dest string) (LinkResult, error) {
	if Exists(dest) {
		return LinkExisted, nil
	}
	if _, err := os.Stat(src); err != nil {
		return LinkExisted, fmt.Errorf("%s: %w", src, ErrSourceMissing)
	}
	if err := os.Symlink(src, dest); err != nil {
		return LinkExisted, fmt.Errorf("link %s to %s: %w", dest, src, err)
	}
	return LinkCreated, nil
}

// EntryResult is the outcome of linking one directory entry.
type EntryResult struct {
	Name   string
	Source string
	Dest   string
	Result LinkResult
	Err    error
}

// LinkEntries links every entry of srcDir into destDir under the same
// name, sorted by name. A failing entry does not stop the others; the
// returned error is only set when srcDir cannot be read.
func LinkEntries(srcDir, destDir string) ([]EntryResult, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", srcDir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	results := make([]EntryResult, 0, len(entries))
	for _, e := range entries {
		r := EntryResult{
			Name:   e.Name(),
			Source: filepath.Join(srcDir, e.Name()),
			Dest:   filepath.Join(destDir, e.Name()),
		}
		r.Result, r.Err = Symlink(r.Source, r.Dest)
		results = append(results, r)
	}
	return results, nil
}
