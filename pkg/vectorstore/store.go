// Package vectorstore is the append-only knowledge-base document collection.
// The whole collection is held in memory and rewritten to its ObjectStore on
// every append.
package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/retrypolicy"

	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
)

const DocumentsKey = "documents.json"

var log = internal.GetLogger()

var errPersist = errors.New("failed to persist documents")

var _ models.DocumentStore = &Store{}

type Store struct {
	objects ObjectStore
	retry   retrypolicy.RetryPolicy[any]

	// writeMu serializes Append's read-modify-persist sequence. mu guards
	// the fields below and is held only to read or swap them.
	writeMu sync.Mutex
	mu      sync.RWMutex
	docs    []models.Document
	dims    int
	size    int64
}

func NewStore(objects ObjectStore) *Store {
	return &Store{
		objects: objects,
		retry:   buildPersistRetryPolicy(),
	}
}

func buildPersistRetryPolicy() retrypolicy.RetryPolicy[any] {
	return retrypolicy.Builder[any]().
		HandleErrors(errPersist).
		WithBackoff(50*time.Millisecond, time.Second).
		WithMaxRetries(2).
		Build()
}

func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	data, err := s.objects.Get(ctx, DocumentsKey)
	if errors.Is(err, ErrObjectNotFound) {
		log.Infof("no %s in %s storage, starting with an empty knowledge base", DocumentsKey, s.objects.Name())
		s.swap(nil, 0, 0)
		return nil
	}
	if err != nil {
		return models.NewStorageError("load documents", err)
	}

	var docs []models.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return models.NewStorageError("decode documents", err)
	}

	dims := 0
	mismatched := 0
	for _, d := range docs {
		switch {
		case dims == 0:
			dims = len(d.Embedding)
		case len(d.Embedding) != dims:
			mismatched++
		}
	}
	if mismatched > 0 {
		log.Warnf(
			"%d documents do not have %d-dimension embeddings and will never match a search",
			mismatched, dims,
		)
	}

	s.swap(docs, dims, int64(len(data)))
	log.Infof("loaded %d documents from %s storage", len(docs), s.objects.Name())

	return nil
}

// Append persists the collection with doc added and only then makes doc
// visible. When persisting fails the in-memory collection is unchanged.
func (s *Store) Append(ctx context.Context, doc models.Document) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	current, dims := s.docs, s.dims
	s.mu.RUnlock()

	if dims != 0 && len(doc.Embedding) != dims {
		return &models.DimensionMismatchError{Expected: dims, Got: len(doc.Embedding)}
	}

	next := make([]models.Document, len(current), len(current)+1)
	copy(next, current)
	next = append(next, doc)

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return models.NewStorageError("encode documents", err)
	}

	_, err = failsafe.Get(func() (any, error) {
		if err := s.objects.Put(ctx, DocumentsKey, data); err != nil {
			return nil, fmt.Errorf("%w: %w", errPersist, err)
		}
		return nil, nil
	}, s.retry)
	if err != nil {
		return models.NewStorageError("persist documents", err)
	}

	if dims == 0 {
		dims = len(doc.Embedding)
	}
	s.swap(next, dims, int64(len(data)))

	return nil
}

func (s *Store) swap(docs []models.Document, dims int, size int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = docs
	s.dims = dims
	s.size = size
}

// All returns the documents in insertion order. The slice is a copy; the
// documents themselves are never mutated.
func (s *Store) All() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func (s *Store) SizeBytes() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.size
}

// Dimensions is the embedding length shared by the stored documents, or 0
// when the store is empty.
func (s *Store) Dimensions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dims
}
