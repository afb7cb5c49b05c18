package interfaces

import (
	"context"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
)

// ActivityUseCase 활동 조회/생성/수정
type ActivityUseCase interface {
	// UpsertActivity (학생, 제목, 날짜)가 같은 활동이 있으면 그대로 반환하고 없으면 생성합니다
	UpsertActivity(ctx context.Context, input dto.UpsertActivityInput) (*entity.Activity, error)

	// UpdateActivity 제목, 상세, 날짜를 덮어씁니다
	UpdateActivity(ctx context.Context, input dto.UpdateActivityInput) (*entity.Activity, error)

	// GetActivity 사진 포함 단건 조회
	GetActivity(ctx context.Context, id string) (*entity.Activity, error)

	// ListByStudent 사진 포함, 날짜 내림차순
	ListByStudent(ctx context.Context, studentID string) ([]*entity.Activity, error)

	// ListAll 전체 활동, 날짜 내림차순
	ListAll(ctx context.Context) ([]*entity.Activity, error)

	// ListTemplates 제목별 최신 활동
	ListTemplates(ctx context.Context) ([]*entity.ActivityTemplate, error)
}
