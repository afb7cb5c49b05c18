package usecase

import (
	"context"
	"fmt"
	"mime"
	"time"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/domain/service"
	"github.com/wekeepgrowing/student-activity/internal/observability"
	"github.com/wekeepgrowing/student-activity/internal/usecase/dto"
	"github.com/wekeepgrowing/student-activity/internal/usecase/interfaces"
	"github.com/wekeepgrowing/student-activity/pkg/errors"
)

// DefaultMaxFileSize 파일 하나의 최대 크기 (5MiB)
const DefaultMaxFileSize int64 = 5 * 1024 * 1024

// PhotoConfig 사진 유스케이스 설정
type PhotoConfig struct {
	MaxFileSize int64
}

// PhotoUseCaseImpl 사진 행과 파일을 함께 관리합니다.
// 파일은 DB 변경 전에 기록하고, 이전 파일은 커밋 후에 지웁니다.
type PhotoUseCaseImpl struct {
	logger      *zap.Logger
	activities  *ActivityUseCaseImpl
	repos       *repository.Repositories
	events      repository.EventPublisher
	maxFileSize int64
	now         func() time.Time
}

// NewPhotoUseCase 사진 유스케이스 생성
func NewPhotoUseCase(
	logger *zap.Logger,
	cfg PhotoConfig,
	repos *repository.Repositories,
	activities *ActivityUseCaseImpl,
	events repository.EventPublisher,
) *PhotoUseCaseImpl {
	maxSize := cfg.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}
	return &PhotoUseCaseImpl{
		logger:      logger,
		activities:  activities,
		repos:       repos,
		events:      events,
		maxFileSize: maxSize,
		now:         time.Now,
	}
}

var _ interfaces.PhotoUseCase = (*PhotoUseCaseImpl)(nil)

// partition 크기 제한을 넘는 파일을 걸러냅니다. 남는 파일이 없으면 InvalidArgument
func (uc *PhotoUseCaseImpl) partition(files []dto.FileUpload) ([]dto.FileUpload, []string, error) {
	if len(files) == 0 {
		return nil, nil, domainerrors.InvalidInput("at least one file is required")
	}
	accepted := make([]dto.FileUpload, 0, len(files))
	var rejected []string
	for _, f := range files {
		if f.Size > uc.maxFileSize {
			uc.logger.Info("크기 제한 초과 파일 건너뜀",
				zap.String("filename", f.Filename),
				zap.Int64("size", f.Size),
				zap.Int64("limit", uc.maxFileSize),
			)
			rejected = append(rejected, f.Filename)
			continue
		}
		accepted = append(accepted, f)
	}
	if len(accepted) == 0 {
		return nil, rejected, domainerrors.NoFilesAccepted(uc.maxFileSize)
	}
	return accepted, rejected, nil
}

// storeFiles 모든 파일을 기록합니다. 하나라도 실패하면 이미 기록한 파일을 지우고 에러를 반환합니다.
func (uc *PhotoUseCaseImpl) storeFiles(ctx context.Context, files []dto.FileUpload) ([]entity.StoredFile, error) {
	stored := make([]entity.StoredFile, 0, len(files))
	for _, f := range files {
		sf, err := uc.storeFile(ctx, f)
		if err != nil {
			uc.discardFiles(ctx, stored)
			return nil, errors.Wrap(err, "failed to store file")
		}
		stored = append(stored, sf)
	}
	return stored, nil
}

func (uc *PhotoUseCaseImpl) storeFile(ctx context.Context, f dto.FileUpload) (entity.StoredFile, error) {
	filename, err := service.GenerateFilename(f.Filename, uc.now())
	if err != nil {
		return entity.StoredFile{}, err
	}
	if f.Open == nil {
		return entity.StoredFile{}, fmt.Errorf("file %s has no content", f.Filename)
	}

	rc, err := f.Open()
	if err != nil {
		return entity.StoredFile{}, fmt.Errorf("open %s: %w", f.Filename, err)
	}
	defer rc.Close()

	info, body := service.ProbeImage(rc)

	contentType := f.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(service.FileExt(f.Filename)); byExt != "" {
			contentType = byExt
		} else if info.Format != "" {
			contentType = "image/" + info.Format
		}
	}

	if err := uc.repos.Files.Put(ctx, filename, body, f.Size, contentType); err != nil {
		return entity.StoredFile{}, err
	}

	return entity.StoredFile{
		Filename:     filename,
		URL:          uc.repos.Files.URL(filename),
		OriginalName: service.SanitizeOriginalName(f.Filename),
		ContentType:  contentType,
		Size:         f.Size,
		Width:        info.Width,
		Height:       info.Height,
	}, nil
}

// discardFiles DB 반영에 실패한 파일 정리 (best effort)
func (uc *PhotoUseCaseImpl) discardFiles(ctx context.Context, files []entity.StoredFile) {
	for _, f := range files {
		uc.removeFile(ctx, f.Filename)
	}
}

// removeFile 파일이 이미 없으면 성공으로 보고, 그 외 실패는 WARN 로그만 남깁니다
func (uc *PhotoUseCaseImpl) removeFile(ctx context.Context, filename string) {
	err := uc.repos.Files.Delete(context.WithoutCancel(ctx), filename)
	switch {
	case err == nil:
	case errors.Is(err, domainerrors.ErrFileNotFound):
		uc.logger.Debug("삭제할 파일이 이미 없음", zap.String("filename", filename))
	default:
		uc.logger.Warn("파일 삭제 실패", zap.String("filename", filename), zap.Error(err))
	}
}

func newPhotos(activityID string, files []entity.StoredFile) []*entity.Photo {
	photos := make([]*entity.Photo, len(files))
	for i, f := range files {
		photos[i] = entity.NewPhoto(activityID, f)
	}
	return photos
}

func photoIDs(photos []*entity.Photo) []string {
	ids := make([]string, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}
	return ids
}

// AddPhotos 기존 활동에 사진을 추가합니다
func (uc *PhotoUseCaseImpl) AddPhotos(ctx context.Context, activityID string, files []dto.FileUpload) (*dto.AddPhotosResult, error) {
	if activityID == "" {
		return nil, domainerrors.InvalidInput("activity id is required")
	}

	activity, err := uc.repos.Activity.FindByID(ctx, activityID, false)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load activity")
	}
	if activity == nil {
		return nil, domainerrors.ActivityNotFound(activityID)
	}

	accepted, rejected, err := uc.partition(files)
	if err != nil {
		return nil, err
	}

	stored, err := uc.storeFiles(ctx, accepted)
	if err != nil {
		return nil, err
	}

	photos := newPhotos(activity.ID, stored)
	err = uc.repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		return uc.repos.Photo.CreateBatch(ctx, photos)
	})
	if err != nil {
		uc.discardFiles(ctx, stored)
		return nil, errors.Wrap(err, "failed to save photos")
	}
	observability.RecordPhotosPersisted(len(photos))

	uc.events.Publish(ctx, entity.Event{
		Type:       entity.EventPhotosAdded,
		ActivityID: activity.ID,
		StudentID:  activity.StudentID,
		PhotoIDs:   photoIDs(photos),
	})
	return &dto.AddPhotosResult{Photos: photos, Rejected: rejected}, nil
}

// UploadActivityPhotos 활동 upsert와 사진 생성을 하나의 트랜잭션으로 처리합니다
func (uc *PhotoUseCaseImpl) UploadActivityPhotos(ctx context.Context, input dto.UploadActivityPhotosInput) (*dto.UploadResult, error) {
	fields, err := uc.activities.parseFields(input.StudentID, input.Title, input.Detail, input.Date)
	if err != nil {
		return nil, err
	}

	accepted, rejected, err := uc.partition(input.Files)
	if err != nil {
		return nil, err
	}

	if err := uc.activities.requireStudent(ctx, fields.studentID); err != nil {
		return nil, err
	}

	stored, err := uc.storeFiles(ctx, accepted)
	if err != nil {
		return nil, err
	}

	var (
		activity *entity.Activity
		created  bool
		photos   []*entity.Photo
	)
	err = uc.repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		activity, created, err = uc.activities.upsert(ctx, fields)
		if err != nil {
			return err
		}
		photos = newPhotos(activity.ID, stored)
		return uc.repos.Photo.CreateBatch(ctx, photos)
	})
	if err != nil {
		uc.discardFiles(ctx, stored)
		return nil, errors.Wrap(err, "failed to save upload")
	}

	// 커밋된 뒤에만 기록합니다
	if created {
		observability.RecordActivityCreated()
	}
	observability.RecordPhotosPersisted(len(photos))

	if created {
		uc.events.Publish(ctx, entity.Event{Type: entity.EventActivityCreated, ActivityID: activity.ID, StudentID: activity.StudentID})
	}
	uc.events.Publish(ctx, entity.Event{
		Type:       entity.EventPhotosAdded,
		ActivityID: activity.ID,
		StudentID:  activity.StudentID,
		PhotoIDs:   photoIDs(photos),
	})

	uc.logger.Info("활동 사진 업로드 완료",
		zap.String("activity_id", activity.ID),
		zap.Bool("activity_created", created),
		zap.Int("photos", len(photos)),
		zap.Int("rejected", len(rejected)),
	)
	return &dto.UploadResult{Activity: activity, Photos: photos, Rejected: rejected}, nil
}

// DeletePhoto 행을 지우고 커밋 후 파일을 지웁니다
func (uc *PhotoUseCaseImpl) DeletePhoto(ctx context.Context, photoID string) error {
	if photoID == "" {
		return domainerrors.InvalidInput("photo id is required")
	}

	var photo *entity.Photo
	err := uc.repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		photo, err = uc.repos.Photo.FindByIDForUpdate(ctx, photoID)
		if err != nil {
			return errors.Wrap(err, "failed to load photo")
		}
		if photo == nil {
			return domainerrors.PhotoNotFound(photoID)
		}

		deleted, err := uc.repos.Photo.Delete(ctx, photoID)
		if err != nil {
			return errors.Wrap(err, "failed to delete photo")
		}
		if !deleted {
			return domainerrors.PhotoNotFound(photoID)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.removeFile(ctx, photo.Filename)
	uc.events.Publish(ctx, entity.Event{Type: entity.EventPhotoDeleted, ActivityID: photo.ActivityID, PhotoIDs: []string{photo.ID}})
	return nil
}

// ReplacePhoto 같은 사진 행이 새 파일을 가리키도록 바꿉니다. ID와 활동은 유지됩니다.
func (uc *PhotoUseCaseImpl) ReplacePhoto(ctx context.Context, photoID string, file dto.FileUpload) (*entity.Photo, error) {
	if photoID == "" {
		return nil, domainerrors.InvalidInput("photo id is required")
	}
	if file.Size > uc.maxFileSize {
		return nil, domainerrors.FileTooLarge(file.Filename, uc.maxFileSize)
	}

	// 새 파일을 먼저 기록하고, 행 조회와 갱신은 잠금을 잡은 한 트랜잭션에서 처리합니다
	stored, err := uc.storeFiles(ctx, []dto.FileUpload{file})
	if err != nil {
		return nil, err
	}

	var (
		photo       *entity.Photo
		oldFilename string
	)
	err = uc.repos.Transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		var err error
		photo, err = uc.repos.Photo.FindByIDForUpdate(ctx, photoID)
		if err != nil {
			return errors.Wrap(err, "failed to load photo")
		}
		if photo == nil {
			return domainerrors.PhotoNotFound(photoID)
		}

		oldFilename = photo.Filename
		photo.Attach(stored[0])
		if err := uc.repos.Photo.Update(ctx, photo); err != nil {
			return errors.Wrap(err, "failed to update photo")
		}
		return nil
	})
	if err != nil {
		uc.discardFiles(ctx, stored)
		return nil, err
	}

	uc.removeFile(ctx, oldFilename)
	uc.events.Publish(ctx, entity.Event{Type: entity.EventPhotoReplaced, ActivityID: photo.ActivityID, PhotoIDs: []string{photo.ID}})
	return photo, nil
}
