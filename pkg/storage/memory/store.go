package memory

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/adrianliechti/narrator/pkg/storage"
)

var _ storage.Store = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	objects map[string]storage.Object
}

func New() *Store {
	return &Store{
		objects: map[string]storage.Object{},
	}
}

func (s *Store) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	if contentType == "" {
		contentType = storage.ContentType(name)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[name] = storage.Object{
		Name: name,

		Content:     bytes.Clone(data),
		ContentType: contentType,

		ModTime: time.Now(),
	}

	return nil
}

func (s *Store) Get(ctx context.Context, name string) (*storage.Object, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	obj, ok := s.objects[name]

	if !ok {
		return nil, storage.ErrNotFound
	}

	obj.Content = bytes.Clone(obj.Content)

	return &obj, nil
}
