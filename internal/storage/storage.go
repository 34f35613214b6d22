package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type Bucket string

const (
	BucketEventImages   Bucket = "event-images"
	BucketResourceFiles Bucket = "resource-files"
	BucketUserAvatars   Bucket = "user-avatars"
)

func (b Bucket) IsValid() bool {
	switch b {
	case BucketEventImages, BucketResourceFiles, BucketUserAvatars:
		return true
	}
	return false
}

// ImagesOnly 圖片 bucket 只收圖片
func (b Bucket) ImagesOnly() bool {
	return b == BucketEventImages || b == BucketUserAvatars
}

type ObjectStorage interface {
	Put(ctx context.Context, bucket Bucket, path string, data []byte, contentType string) error
	PublicURL(bucket Bucket, path string) string
	Delete(ctx context.Context, bucket Bucket, path string) error
}

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStorage 開發與測試用
type MemoryStorage struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
}

func NewMemoryStorage(baseURL string) *MemoryStorage {
	return &MemoryStorage{
		baseURL: baseURL,
		objects: make(map[string]memoryObject),
	}
}

func memoryKey(bucket Bucket, path string) string {
	return string(bucket) + "/" + path
}

func (s *MemoryStorage) Put(ctx context.Context, bucket Bucket, path string, data []byte, contentType string) error {
	key := memoryKey(bucket, path)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.objects[key]; exists {
		return fmt.Errorf("object already exists: %s", key)
	}
	s.objects[key] = memoryObject{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (s *MemoryStorage) PublicURL(bucket Bucket, path string) string {
	return fmt.Sprintf("%s/%s", s.baseURL, memoryKey(bucket, path))
}

func (s *MemoryStorage) Delete(ctx context.Context, bucket Bucket, path string) error {
	s.mu.Lock()
	delete(s.objects, memoryKey(bucket, path))
	s.mu.Unlock()
	return nil
}

// Get returns a stored object and its content type.
func (s *MemoryStorage) Get(bucket Bucket, path string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[memoryKey(bucket, path)]
	return obj.data, obj.contentType, ok
}

func (s *MemoryStorage) Keys() []string {
	s.mu.RLock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	s.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
