package storage

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/unimarket/unimarket/model"
)

type memBlob struct {
	data     []byte
	mimeType string
}

// MemImageStore keeps blobs in a map. Thumbnail saves keep the bytes as
// is so tests can assert on exact content.
type MemImageStore struct {
	mu    sync.Mutex
	blobs map[string]memBlob
}

func NewMemImageStore() *MemImageStore {
	return &MemImageStore{blobs: map[string]memBlob{}}
}

func (s *MemImageStore) Save(_ context.Context, data []byte, mimeType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.NewString()
	s.blobs[id] = memBlob{data: append([]byte(nil), data...), mimeType: mimeType}
	return id, nil
}

func (s *MemImageStore) SaveThumbnail(ctx context.Context, data []byte, mimeType string) (string, error) {
	return s.Save(ctx, data, mimeType)
}

func (s *MemImageStore) ThumbnailFrom(ctx context.Context, imageID string) (string, error) {
	s.mu.Lock()
	blob, ok := s.blobs[imageID]
	s.mu.Unlock()
	if !ok {
		return "", errors.Wrapf(model.ErrNotFound, "image %s", imageID)
	}
	return s.SaveThumbnail(ctx, blob.data, blob.mimeType)
}

func (s *MemImageStore) Open(_ context.Context, id string) (io.ReadCloser, string, error) {
	s.mu.Lock()
	blob, ok := s.blobs[id]
	s.mu.Unlock()
	if !ok {
		return nil, "", errors.Wrapf(model.ErrNotFound, "image %s", id)
	}
	return io.NopCloser(bytes.NewReader(blob.data)), blob.mimeType, nil
}

func (s *MemImageStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, id)
	return nil
}

// Len reports how many blobs are stored, for test assertions.
func (s *MemImageStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
