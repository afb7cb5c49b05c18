package repository

import (
	"context"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
)

// PhotoRepository 사진 저장소 인터페이스
type PhotoRepository interface {
	// FindByID 없으면 (nil, nil)
	FindByID(ctx context.Context, id string) (*entity.Photo, error)
	// FindByIDForUpdate 트랜잭션 안에서 행을 잠그고 읽습니다. 없으면 (nil, nil)
	FindByIDForUpdate(ctx context.Context, id string) (*entity.Photo, error)
	CreateBatch(ctx context.Context, photos []*entity.Photo) error
	Update(ctx context.Context, photo *entity.Photo) error
	// Delete 삭제된 행이 없으면 false
	Delete(ctx context.Context, id string) (bool, error)
}
