package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/columnar/internal/fs"
)

// LocalStore implements Store on the local file system. Segments are
// written to a temporary file and renamed into place on Close, so a
// partially written segment is never visible under its final name.
type LocalStore struct {
	fs   fs.FileSystem
	root string
}

// NewLocalStore creates a store rooted at dir. fsys defaults to the local
// file system; tests inject a faulty one.
func NewLocalStore(fsys fs.FileSystem, dir string) (*LocalStore, error) {
	if fsys == nil {
		fsys = fs.Default
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{fs: fsys, root: dir}, nil
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, name)
}

func (s *LocalStore) Open(_ context.Context, name string) (Blob, error) {
	f, err := s.fs.OpenFile(s.path(name), os.O_RDONLY, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	return &localBlob{f: f, size: info.Size()}, nil
}

func (s *LocalStore) Create(_ context.Context, name string) (WritableBlob, error) {
	tmp := s.path(name) + ".tmp"
	f, err := s.fs.OpenFile(tmp, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	return &localWritableBlob{
		fs:    s.fs,
		f:     f,
		tmp:   tmp,
		final: s.path(name),
	}, nil
}

func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	w, err := s.Create(ctx, name)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (s *LocalStore) Delete(_ context.Context, name string) error {
	err := s.fs.Remove(s.path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	entries, err := s.fs.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, ".tmp") {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

type localBlob struct {
	f    fs.File
	size int64
}

func (b *localBlob) ReadAt(p []byte, off int64) (int, error) {
	return b.f.ReadAt(p, off)
}

func (b *localBlob) Close() error { return b.f.Close() }

func (b *localBlob) Size() int64 { return b.size }

type localWritableBlob struct {
	fs       fs.FileSystem
	f        fs.File
	tmp      string
	final    string
	writeErr error
	closed   bool
}

func (w *localWritableBlob) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	if err != nil {
		w.writeErr = err
	}
	return n, err
}

func (w *localWritableBlob) Sync() error {
	if err := w.f.Sync(); err != nil {
		w.writeErr = err
		return err
	}
	return nil
}

// Close publishes the segment under its final name. If any write failed,
// the temporary file is removed instead and the write error is returned.
func (w *localWritableBlob) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if w.writeErr != nil {
		w.f.Close()
		w.fs.Remove(w.tmp)
		return w.writeErr
	}
	if err := w.f.Sync(); err != nil {
		w.f.Close()
		w.fs.Remove(w.tmp)
		return err
	}
	if err := w.f.Close(); err != nil {
		w.fs.Remove(w.tmp)
		return err
	}
	return w.fs.Rename(w.tmp, w.final)
}
