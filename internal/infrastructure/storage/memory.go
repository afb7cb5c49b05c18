package storage

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/observability"
)

const memoryBackend = "memory"

// MemoryStore 프로세스 메모리에 파일을 보관합니다. 테스트와 로컬 실행용
type MemoryStore struct {
	mu        sync.RWMutex
	files     map[string][]byte
	urlPrefix string

	// FailPut, FailDelete 가 설정되면 해당 호출이 이 에러를 반환합니다
	FailPut    error
	FailDelete error
}

func NewMemoryStore(urlPrefix string) *MemoryStore {
	return &MemoryStore{files: make(map[string][]byte), urlPrefix: urlPrefix}
}

func (s *MemoryStore) Put(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (err error) {
	defer func() { observability.RecordFileOperation(memoryBackend, "put", err) }()

	if err := validFilename(filename); err != nil {
		return err
	}
	if s.FailPut != nil {
		return s.FailPut
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[filename]; ok {
		return fmt.Errorf("file %s already exists", filename)
	}
	s.files[filename] = data
	observability.RecordStoredBytes(memoryBackend, int64(len(data)))
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, filename string) (err error) {
	defer func() { observability.RecordFileOperation(memoryBackend, "delete", err) }()

	if s.FailDelete != nil {
		return s.FailDelete
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.files[filename]; !ok {
		return domainerrors.ErrFileNotFound
	}
	delete(s.files, filename)
	return nil
}

func (s *MemoryStore) URL(filename string) string {
	return joinURL(s.urlPrefix, filename)
}

// Exists 파일 존재 여부
func (s *MemoryStore) Exists(filename string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.files[filename]
	return ok
}

// Content 저장된 내용
func (s *MemoryStore) Content(filename string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.files[filename]
	return data, ok
}

// Filenames 저장된 파일 이름 (정렬됨)
func (s *MemoryStore) Filenames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
