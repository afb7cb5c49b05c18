package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/observability"
)

const localBackend = "local"

// LocalConfig 로컬 디스크 저장소 설정
type LocalConfig struct {
	// Dir 업로드 디렉토리 (예: public/uploads)
	Dir string
	// URLPrefix 정적 파일 경로 (예: /uploads)
	URLPrefix string
}

// LocalStore 하나의 평면 디렉토리에 파일을 기록합니다
type LocalStore struct {
	dir       string
	urlPrefix string
}

// NewLocalStore 디렉토리가 없으면 생성합니다
func NewLocalStore(cfg LocalConfig) (*LocalStore, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("storage.local.dir이 비어 있습니다")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("업로드 디렉토리 생성 실패: %w", err)
	}
	return &LocalStore{dir: cfg.Dir, urlPrefix: cfg.URLPrefix}, nil
}

// Dir 정적 파일 서빙용 디렉토리
func (s *LocalStore) Dir() string {
	return s.dir
}

// URLPrefix 정적 파일 경로
func (s *LocalStore) URLPrefix() string {
	return s.urlPrefix
}

// Put 임시 파일에 쓴 뒤 rename 합니다. 같은 이름이 이미 있으면 실패합니다.
func (s *LocalStore) Put(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (err error) {
	defer func() { observability.RecordFileOperation(localBackend, "put", err) }()

	if err := validFilename(filename); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	target := filepath.Join(s.dir, filename)
	if _, statErr := os.Stat(target); statErr == nil {
		return fmt.Errorf("file %s already exists", filename)
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("임시 파일 생성 실패: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpName)
		}
	}()

	written, err := io.Copy(tmp, r)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("파일 쓰기 실패: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("파일 권한 설정 실패: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("파일 이동 실패: %w", err)
	}

	observability.RecordStoredBytes(localBackend, written)
	return nil
}

// Delete 파일이 없으면 ErrFileNotFound
func (s *LocalStore) Delete(ctx context.Context, filename string) (err error) {
	defer func() { observability.RecordFileOperation(localBackend, "delete", err) }()

	if err := validFilename(filename); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(s.dir, filename)); err != nil {
		if os.IsNotExist(err) {
			return domainerrors.ErrFileNotFound
		}
		return fmt.Errorf("파일 삭제 실패: %w", err)
	}
	return nil
}

// URL URLPrefix/filename
func (s *LocalStore) URL(filename string) string {
	return joinURL(s.urlPrefix, filename)
}
