package repository

import (
	"context"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
)

// StudentRepository 학생 저장소 인터페이스
type StudentRepository interface {
	// FindByID 없으면 (nil, nil)
	FindByID(ctx context.Context, id string) (*entity.Student, error)

	// ListWithActivityCount 이름 오름차순, 활동 수 포함
	ListWithActivityCount(ctx context.Context) ([]*entity.StudentSummary, error)

	// Upsert ID 기준으로 생성하거나 이름을 갱신합니다 (시드 전용)
	Upsert(ctx context.Context, student *entity.Student) error
}
