package init

import (
	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/config"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/usecase"
	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
)

// UseCases 애플리케이션의 모든 유스케이스 컨테이너
type UseCases struct {
	ActivityUseCase interfaces.ActivityUseCase
	PhotoUseCase    interfaces.PhotoUseCase
	StudentUseCase  interfaces.StudentUseCase
}

// NewUseCases 모든 유스케이스 인스턴스 생성 및 초기화
func NewUseCases(
	cfg *config.Config,
	repos *repository.Repositories,
	events repository.EventPublisher,
	logger *zap.Logger,
) *UseCases {
	// 1. 활동 유스케이스 (사진 업로드가 upsert를 재사용)
	activityUC := usecase.NewActivityUseCase(
		logger,
		repos.Student,
		repos.Activity,
		events,
		cfg.App.Location,
	)

	// 2. 사진 유스케이스
	photoUC := usecase.NewPhotoUseCase(
		logger,
		usecase.PhotoConfig{MaxFileSize: cfg.Storage.MaxFileSize},
		repos,
		activityUC,
		events,
	)

	// 3. 학생 유스케이스
	studentUC := usecase.NewStudentUseCase(
		logger,
		repos.Student,
		repos.Activity,
	)

	return &UseCases{
		ActivityUseCase: activityUC,
		PhotoUseCase:    photoUC,
		StudentUseCase:  studentUC,
	}
}
