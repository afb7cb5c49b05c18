package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/student-activity/internal/adapter/mapper"
	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db/model"
)

type PhotoRepositoryImpl struct {
	db *gorm.DB
}

// NewPhotoRepository 사진 저장소 구현체 생성
func NewPhotoRepository(database *gorm.DB) repository.PhotoRepository {
	return &PhotoRepositoryImpl{db: database}
}

// FindByID 사진 ID로 조회
func (r *PhotoRepositoryImpl) FindByID(ctx context.Context, id string) (*entity.Photo, error) {
	return r.findByID(db.Conn(ctx, r.db), id)
}

// FindByIDForUpdate SELECT ... FOR UPDATE. 트랜잭션 밖에서는 잠금이 곧바로 풀립니다.
func (r *PhotoRepositoryImpl) FindByIDForUpdate(ctx context.Context, id string) (*entity.Photo, error) {
	return r.findByID(db.Conn(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *PhotoRepositoryImpl) findByID(conn *gorm.DB, id string) (*entity.Photo, error) {
	var m model.PhotoModel
	if err := conn.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.PhotoFromModel(&m), nil
}

// CreateBatch 여러 사진을 한 번의 INSERT로 생성
func (r *PhotoRepositoryImpl) CreateBatch(ctx context.Context, photos []*entity.Photo) error {
	if len(photos) == 0 {
		return nil
	}

	models := make([]*model.PhotoModel, len(photos))
	for i, p := range photos {
		models[i] = mapper.PhotoToModel(p)
	}

	if err := db.Conn(ctx, r.db).Create(&models).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrDuplicateKey
		}
		return err
	}

	return nil
}

// Update 사진이 가리키는 파일 정보를 갱신합니다
func (r *PhotoRepositoryImpl) Update(ctx context.Context, photo *entity.Photo) error {
	res := db.Conn(ctx, r.db).
		Model(&model.PhotoModel{}).
		Where("id = ?", photo.ID).
		Updates(map[string]interface{}{
			"filename":      photo.Filename,
			"url":           photo.URL,
			"original_name": photo.OriginalName,
			"content_type":  photo.ContentType,
			"size":          photo.Size,
			"width":         photo.Width,
			"height":        photo.Height,
			"updated_at":    photo.UpdatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrDuplicateKey
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.PhotoNotFound(photo.ID)
	}
	return nil
}

// Delete 사진 행 삭제
func (r *PhotoRepositoryImpl) Delete(ctx context.Context, id string) (bool, error) {
	res := db.Conn(ctx, r.db).Delete(&model.PhotoModel{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
