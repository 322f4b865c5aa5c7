package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/cropwise/cropwise/config"
)

var ErrObjectNotFound = errors.New("object not found")

// ObjectStore holds whole objects by key.
type ObjectStore interface {
	// Get returns ErrObjectNotFound when the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the object at key.
	Put(ctx context.Context, key string, data []byte) error
	Name() string
}

// NewObjectStore returns the backend selected by storage.type.
func NewObjectStore(ctx context.Context, cfg *config.Config) (ObjectStore, error) {
	switch cfg.Storage.Type {
	case "", "file":
		return NewFileStore(cfg.Storage.Path), nil
	case "s3":
		return NewS3Store(ctx, cfg.Storage.S3)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("invalid storage type: %s", cfg.Storage.Type)
	}
}

// MemoryStore is an in-memory ObjectStore for tests.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	val, ok := s.data[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	cpy := make([]byte, len(val))
	copy(cpy, val)
	return cpy, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cpy := make([]byte, len(data))
	copy(cpy, data)
	s.data[key] = cpy
	return nil
}

func (s *MemoryStore) Name() string {
	return "memory"
}
