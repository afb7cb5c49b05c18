package dto

import (
	"io"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
)

// UpsertActivityInput 활동 생성(또는 기존 활동 재사용) 요청
type UpsertActivityInput struct {
	StudentID string
	Title     string
	Detail    *string
	// Date 2006-01-02, RFC3339, 2006-01-02T15:04 중 하나
	Date string
}

// OptionalString 수정 요청에서 값이 주어졌는지 구분합니다.
// Set이 false면 기존 값을 유지하고, Set이 true이고 Value가 nil이면 값을 지웁니다.
type OptionalString struct {
	Set   bool
	Value *string
}

// UpdateActivityInput 활동 수정 요청
type UpdateActivityInput struct {
	ActivityID string
	Title      string
	Detail     OptionalString
	Date       string
}

// FileUpload 업로드된 파일 하나. Open은 여러 번 호출될 수 있습니다.
type FileUpload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UploadActivityPhotosInput 활동 upsert + 사진 업로드 요청
type UploadActivityPhotosInput struct {
	StudentID string
	Title     string
	Detail    *string
	Date      string
	Files     []FileUpload
}

// UploadResult 업로드 결과. Rejected는 크기 제한으로 건너뛴 파일 이름입니다.
type UploadResult struct {
	Activity *entity.Activity
	Photos   []*entity.Photo
	Rejected []string
}

// AddPhotosResult 기존 활동에 사진을 추가한 결과
type AddPhotosResult struct {
	Photos   []*entity.Photo
	Rejected []string
}
