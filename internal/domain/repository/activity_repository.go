package repository

import (
	"context"
	"time"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
)

// ActivityRepository 활동 저장소 인터페이스
type ActivityRepository interface {
	// FindByID 없으면 (nil, nil). withPhotos가 true면 사진을 함께 읽습니다.
	FindByID(ctx context.Context, id string, withPhotos bool) (*entity.Activity, error)

	// FindByOwnerTitleWithin 같은 학생, 같은 제목이면서 date가 [start, end] 안에 있는 활동. 없으면 (nil, nil)
	FindByOwnerTitleWithin(ctx context.Context, studentID, title string, start, end time.Time) (*entity.Activity, error)

	// CreateIfAbsent 중복 제거 키가 이미 있으면 아무것도 하지 않고 false를 반환합니다
	CreateIfAbsent(ctx context.Context, activity *entity.Activity) (bool, error)

	// Update 제목, 상세, 날짜를 덮어씁니다. 키 충돌 시 ErrDuplicateKey
	Update(ctx context.Context, activity *entity.Activity) error

	// ListByStudent 사진 포함, 날짜 내림차순
	ListByStudent(ctx context.Context, studentID string) ([]*entity.Activity, error)

	// ListAll 사진 제외, 날짜 내림차순
	ListAll(ctx context.Context) ([]*entity.Activity, error)

	// ListLatestPerTitle 제목마다 가장 최근 활동 하나, 날짜 내림차순
	ListLatestPerTitle(ctx context.Context) ([]*entity.Activity, error)
}
