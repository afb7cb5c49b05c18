package entity

import (
	"time"

	"github.com/google/uuid"
)

// Photo 활동 증빙 사진. Filename은 파일 저장소에서 유일하며 재사용되지 않습니다.
type Photo struct {
	ID           string
	ActivityID   string
	Filename     string
	URL          string
	OriginalName string
	ContentType  string
	Size         int64
	Width        int
	Height       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewPhoto 저장된 파일로부터 사진 레코드를 생성합니다
func NewPhoto(activityID string, file StoredFile) *Photo {
	now := time.Now()
	p := &Photo{
		ID:         uuid.NewString(),
		ActivityID: activityID,
		CreatedAt:  now,
	}
	p.Attach(file)
	p.UpdatedAt = now
	return p
}

// Attach 사진이 가리키는 파일을 교체합니다. ID와 ActivityID는 유지됩니다.
func (p *Photo) Attach(file StoredFile) {
	p.Filename = file.Filename
	p.URL = file.URL
	p.OriginalName = file.OriginalName
	p.ContentType = file.ContentType
	p.Size = file.Size
	p.Width = file.Width
	p.Height = file.Height
	p.UpdatedAt = time.Now()
}

// StoredFile 파일 저장소에 기록된 파일 정보
type StoredFile struct {
	Filename     string
	URL          string
	OriginalName string
	ContentType  string
	Size         int64
	Width        int
	Height       int
}
