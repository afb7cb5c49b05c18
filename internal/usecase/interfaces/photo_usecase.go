package interfaces

import (
	"context"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
)

// PhotoUseCase 사진 행과 파일 저장소를 함께 관리합니다
type PhotoUseCase interface {
	AddPhotos(ctx context.Context, activityID string, files []dto.FileUpload) (*dto.AddPhotosResult, error)
	UploadActivityPhotos(ctx context.Context, input dto.UploadActivityPhotosInput) (*dto.UploadResult, error)
	DeletePhoto(ctx context.Context, photoID string) error
	ReplacePhoto(ctx context.Context, photoID string, file dto.FileUpload) (*entity.Photo, error)
}
