// Package attachment stores files shared in session chats.
package attachment

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("attachment not found")

type Blob struct {
	Name string
	MIME string
	Data []byte
}

// MemoryStore keeps blobs in process memory. References are only valid for
// the lifetime of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string]Blob
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]Blob)}
}

func (s *MemoryStore) Put(_ context.Context, name, mime string, data []byte) (string, error) {
	ref := "blob:" + uuid.NewString()
	copied := append([]byte(nil), data...)
	s.mu.Lock()
	s.blobs[ref] = Blob{Name: name, MIME: mime, Data: copied}
	s.mu.Unlock()
	return ref, nil
}

func (s *MemoryStore) Get(_ context.Context, ref string) (*Blob, error) {
	s.mu.RLock()
	blob, ok := s.blobs[ref]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &blob, nil
}
