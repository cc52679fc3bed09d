package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrianliechti/narrator/pkg/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps objects as files in a directory.
type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("invalid directory")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Store{
		dir: dir,
	}, nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(s.dir, ".upload-*")

	if err != nil {
		return err
	}

	defer os.Remove(f.Name())

	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), filepath.Join(s.dir, name))
}

func (s *Store) Get(ctx context.Context, name string) (*storage.Object, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	path := filepath.Join(s.dir, name)

	info, err := os.Stat(path)

	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, storage.ErrNotFound
		}

		return nil, err
	}

	if info.IsDir() {
		return nil, storage.ErrNotFound
	}

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	return &storage.Object{
		Name: name,

		Content:     data,
		ContentType: storage.ContentType(name),

		ModTime: info.ModTime(),
	}, nil
}
