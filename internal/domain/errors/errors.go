// Package errors 도메인 에러 생성 함수. 모두 pkg/errors.AppError를 반환합니다.
package errors

import (
	"fmt"

	pkgerrors "github.com/wekeepgrowing/student-activity/pkg/errors"
)

// 저장소 계층이 돌려주는 감시 에러
var (
	// ErrDuplicateKey 유니크 제약 위반
	ErrDuplicateKey = pkgerrors.New("duplicate key")
	// ErrFileNotFound 파일 저장소에 파일이 없음
	ErrFileNotFound = pkgerrors.New("file not found")
)

func StudentNotFound(id string) error {
	return pkgerrors.NotFound("student %s not found", id)
}

func ActivityNotFound(id string) error {
	return pkgerrors.NotFound("activity %s not found", id)
}

func PhotoNotFound(id string) error {
	return pkgerrors.NotFound("photo %s not found", id)
}

// InvalidInput 요청 값 검증 실패
func InvalidInput(format string, args ...interface{}) error {
	return pkgerrors.InvalidArgument(format, args...)
}

// FileTooLarge 파일 크기 제한 초과 (413)
func FileTooLarge(name string, limit int64) error {
	return pkgerrors.PayloadTooLarge("file %s exceeds the %s limit", name, humanSize(limit))
}

// NoFilesAccepted 크기 제한을 통과한 파일이 하나도 없음
func NoFilesAccepted(limit int64) error {
	return pkgerrors.InvalidArgument("no files accepted: every file exceeds the %s limit", humanSize(limit))
}

// DuplicateActivity 같은 학생, 제목, 날짜의 활동이 이미 있음
func DuplicateActivity(title string) error {
	return pkgerrors.Conflict("an activity titled %q already exists on that day", title)
}

func humanSize(n int64) string {
	const mib = 1024 * 1024
	if n%mib == 0 {
		return fmt.Sprintf("%dMB", n/mib)
	}
	return fmt.Sprintf("%d bytes", n)
}
