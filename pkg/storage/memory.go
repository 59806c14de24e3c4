package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStorage keeps objects in process memory. It backs local development
// without S3 credentials and the test suites.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	baseURL string
	// FailDelete makes Delete return this error, for exercising retries.
	FailDelete error
}

var _ ObjectStorage = &MemoryStorage{}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]memoryObject), baseURL: baseURL}
}

func (s *MemoryStorage) Store(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (s *MemoryStorage) Get(ctx context.Context, key string) ([]byte, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, "", ErrObjectNotFound
	}
	return obj.data, obj.contentType, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailDelete != nil {
		return s.FailDelete
	}
	delete(s.objects, key)
	return nil
}

func (s *MemoryStorage) Exists(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.objects[key]
	return ok
}

func (s *MemoryStorage) URLFor(key string) string {
	return s.baseURL + "/" + key
}

func (s *MemoryStorage) PresignedUpload(ctx context.Context, key, contentType string) (*PresignedPost, error) {
	return &PresignedPost{
		URL: s.baseURL,
		Fields: map[string]string{
			"key":          key,
			"Content-Type": contentType,
			"policy":       fmt.Sprintf("max=%d", MaxUploadSize),
		},
	}, nil
}
