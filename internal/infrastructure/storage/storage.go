// Package storage 사진 파일 저장소 구현 (local, s3, memory)
package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
)

// 지원하는 드라이버
const (
	DriverLocal  = "local"
	DriverS3     = "s3"
	DriverMemory = "memory"
)

// Config 파일 저장소 설정
type Config struct {
	Driver string
	Local  LocalConfig
	S3     S3Config
}

// New 설정된 드라이버의 FileStore를 생성합니다
func New(ctx context.Context, cfg Config, logger *zap.Logger) (repository.FileStore, error) {
	switch cfg.Driver {
	case DriverLocal, "":
		store, err := NewLocalStore(cfg.Local)
		if err != nil {
			return nil, err
		}
		logger.Info("로컬 파일 저장소 사용", zap.String("dir", cfg.Local.Dir), zap.String("url_prefix", cfg.Local.URLPrefix))
		return store, nil
	case DriverS3:
		store, err := NewS3Store(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		logger.Info("S3 파일 저장소 사용", zap.String("bucket", cfg.S3.Bucket), zap.String("prefix", cfg.S3.Prefix))
		return store, nil
	case DriverMemory:
		logger.Warn("메모리 파일 저장소 사용: 재시작하면 파일이 사라집니다")
		return NewMemoryStore("/uploads"), nil
	default:
		return nil, fmt.Errorf("지원하지 않는 storage.driver: %q", cfg.Driver)
	}
}

// validFilename 저장소 밖을 가리키는 이름을 거부합니다
func validFilename(filename string) error {
	if filename == "" || filename == "." || filename == ".." ||
		strings.ContainsAny(filename, `/\`) || strings.HasPrefix(filename, ".") {
		return fmt.Errorf("invalid filename %q", filename)
	}
	return nil
}

// joinURL base 뒤에 이스케이프된 filename을 붙입니다
func joinURL(base, filename string) string {
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(filename)
}
