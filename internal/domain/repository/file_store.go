package repository

import (
	"context"
	"io"
)

// FileStore 사진 파일 저장소. 로컬 디스크, S3, 메모리 구현이 있습니다.
type FileStore interface {
	// Put filename으로 내용을 기록합니다. filename은 호출자가 유일하게 생성합니다.
	Put(ctx context.Context, filename string, r io.Reader, size int64, contentType string) error
	// Delete 파일이 없으면 errors.ErrFileNotFound
	Delete(ctx context.Context, filename string) error
	// URL 파일의 공개 URL
	URL(filename string) string
}
