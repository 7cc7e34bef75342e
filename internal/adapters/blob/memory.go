package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	"barangay-pet-registry/internal/ports/photos"
)

var ErrExists = errors.New("blob: object already exists")

// MemoryStore guarda objetos en memoria. Solo para tests/dev.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
	baseURL string
}

func NewMemory() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string][]byte),
		baseURL: "memory://photos",
	}
}

func (s *MemoryStore) Put(ctx context.Context, key string, r io.Reader, opts photos.PutOptions) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !opts.Overwrite {
		if _, exists := s.objects[key]; exists {
			return ErrExists
		}
	}
	s.objects[key] = b
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.objects[key]
	if !ok {
		return nil, photos.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (s *MemoryStore) PublicURL(key string) string {
	return s.baseURL + "/" + key
}

func (s *MemoryStore) Driver() photos.Driver { return photos.DriverMemory }

// Len expone el número de objetos (solo tests).
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
