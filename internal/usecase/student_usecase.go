package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
	"github.com/wekeepgrowing/student-activity/pkg/errors"
)

// StudentUseCaseImpl 학생 조회 유스케이스
type StudentUseCaseImpl struct {
	logger     *zap.Logger
	students   repository.StudentRepository
	activities repository.ActivityRepository
}

func NewStudentUseCase(logger *zap.Logger, students repository.StudentRepository, activities repository.ActivityRepository) *StudentUseCaseImpl {
	return &StudentUseCaseImpl{logger: logger, students: students, activities: activities}
}

var _ interfaces.StudentUseCase = (*StudentUseCaseImpl)(nil)

// ListStudents 이름 오름차순, 활동 수 포함
func (uc *StudentUseCaseImpl) ListStudents(ctx context.Context) ([]*entity.StudentSummary, error) {
	students, err := uc.students.ListWithActivityCount(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list students")
	}
	return students, nil
}

// GetStudentActivities 학생과 그 활동(사진 포함)
func (uc *StudentUseCaseImpl) GetStudentActivities(ctx context.Context, studentID string) (*dto.StudentActivities, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, domainerrors.InvalidInput("student id is required")
	}

	student, err := uc.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load student")
	}
	if student == nil {
		return nil, domainerrors.StudentNotFound(studentID)
	}

	activities, err := uc.activities.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list activities")
	}
	return &dto.StudentActivities{Student: student, Activities: activities}, nil
}
