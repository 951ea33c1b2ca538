package blobstore

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/techup/travel-explorer-api/internal/ports/out/blobstore"
)

// ErrNotFound indicates the named object is not in the store.
var ErrNotFound = errors.New("blob not found")

type object struct {
	contentType string
	data        []byte
}

// Store is an in-memory implementation of blobstore.Store for development
// and tests. It is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]object
}

// NewStore returns an empty store. Public URLs are baseURL + "/" + name so
// delete-by-URL round-trips the same way it does against a real backend.
func NewStore(baseURL string) *Store {
	if baseURL == "" {
		baseURL = "memory://uploads"
	}
	return &Store{
		baseURL: baseURL,
		objects: make(map[string]object),
	}
}

func (s *Store) Upload(ctx context.Context, obj blobstore.Object) (string, error) {
	data, err := io.ReadAll(obj.Body)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[obj.Name] = object{contentType: obj.ContentType, data: data}
	return s.baseURL + "/" + obj.Name, nil
}

func (s *Store) Delete(ctx context.Context, name string) error {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[name]; !ok {
		return ErrNotFound
	}
	delete(s.objects, name)
	return nil
}

// Object returns a stored object's bytes, for test assertions.
func (s *Store) Object(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[name]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(obj.data))
	copy(out, obj.data)
	return out, true
}

// Len reports how many objects the store holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
