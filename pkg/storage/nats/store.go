package nats

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

var _ storage.Store = (*Store)(nil)

const headerContentType = "Content-Type"

// Store keeps objects in a NATS JetStream object store bucket.
type Store struct {
	bucket string
	store  nats.ObjectStore
}

// New creates the bucket, or binds to it if it already exists.
func New(js nats.JetStreamContext, bucket string) (*Store, error) {
	store, err := js.CreateObjectStore(&nats.ObjectStoreConfig{
		Bucket:      bucket,
		Description: fmt.Sprintf("Storage for the %s bucket.", bucket),
		Storage:     nats.FileStorage,
		Replicas:    1,
	})

	if err != nil {
		if !errors.Is(err, jetstream.ErrBucketExists) && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
			return nil, fmt.Errorf("failed to create object store bucket %q: %w", bucket, err)
		}

		store, err = js.ObjectStore(bucket)

		if err != nil {
			return nil, fmt.Errorf("failed to bind object store bucket %q: %w", bucket, err)
		}
	}

	return &Store{
		bucket: bucket,
		store:  store,
	}, nil
}

func (s *Store) Put(ctx context.Context, name string, data []byte, contentType string) error {
	if err := storage.ValidateName(name); err != nil {
		return err
	}

	if contentType == "" {
		contentType = storage.ContentType(name)
	}

	meta := &nats.ObjectMeta{
		Name: name,

		Headers: nats.Header{
			headerContentType: []string{contentType},
		},
	}

	if _, err := s.store.Put(meta, bytes.NewReader(data), nats.Context(ctx)); err != nil {
		return fmt.Errorf("failed to put object %q to bucket %q: %w", name, s.bucket, err)
	}

	return nil
}

func (s *Store) Get(ctx context.Context, name string) (*storage.Object, error) {
	if err := storage.ValidateName(name); err != nil {
		return nil, err
	}

	result, err := s.store.Get(name, nats.Context(ctx))

	if err != nil {
		if errors.Is(err, nats.ErrObjectNotFound) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get object %q from bucket %q: %w", name, s.bucket, err)
	}

	defer result.Close()

	data, err := io.ReadAll(result)

	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", name, err)
	}

	obj := &storage.Object{
		Name: name,

		Content:     data,
		ContentType: storage.ContentType(name),
	}

	if info, err := result.Info(); err == nil {
		obj.ModTime = info.ModTime

		if val := info.Headers.Get(headerContentType); val != "" {
			obj.ContentType = val
		}
	}

	return obj, nil
}
