package interfaces

import (
	"context"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
)

// StudentUseCase 학생 조회
type StudentUseCase interface {
	ListStudents(ctx context.Context) ([]*entity.StudentSummary, error)
	GetStudentActivities(ctx context.Context, studentID string) (*dto.StudentActivities, error)
}
