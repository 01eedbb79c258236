package fs

import (
	"errors"
	"os"
)

// ErrInjected is the default error surfaced by FaultyFS.
var ErrInjected = errors.New("fs: injected fault")

// FaultyFS wraps a FileSystem and fails writes after a configurable number
// of bytes, across all files it opened. Used to exercise I/O error
// propagation in tests.
type FaultyFS struct {
	FS FileSystem

	// FailAfterBytes makes writes fail once the total written through
	// this FS would exceed the limit. Negative disables the limit.
	FailAfterBytes int64

	// FailOnSync makes Sync fail.
	FailOnSync bool

	// Err overrides ErrInjected when set.
	Err error

	written int64
}

// NewFaultyFS wraps fsys (Default if nil) with fault injection disabled.
func NewFaultyFS(fsys FileSystem) *FaultyFS {
	if fsys == nil {
		fsys = Default
	}
	return &FaultyFS{FS: fsys, FailAfterBytes: -1}
}

func (f *FaultyFS) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return &faultyFile{File: file, fs: f}, nil
}

func (f *FaultyFS) Remove(name string) error                     { return f.FS.Remove(name) }
func (f *FaultyFS) Rename(oldpath, newpath string) error         { return f.FS.Rename(oldpath, newpath) }
func (f *FaultyFS) Stat(name string) (os.FileInfo, error)        { return f.FS.Stat(name) }
func (f *FaultyFS) MkdirAll(path string, perm os.FileMode) error { return f.FS.MkdirAll(path, perm) }
func (f *FaultyFS) ReadDir(name string) ([]os.DirEntry, error)   { return f.FS.ReadDir(name) }

type faultyFile struct {
	File
	fs *FaultyFS
}

func (ff *faultyFile) Write(p []byte) (int, error) {
	if ff.fs.FailAfterBytes >= 0 && ff.fs.written+int64(len(p)) > ff.fs.FailAfterBytes {
		return 0, ff.fs.err()
	}
	n, err := ff.File.Write(p)
	ff.fs.written += int64(n)
	return n, err
}

func (ff *faultyFile) Sync() error {
	if ff.fs.FailOnSync {
		return ff.fs.err()
	}
	return ff.File.Sync()
}
