package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wekeepgrowing/student-activity/internal/adapter/mapper"
	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	domainerrors "github.com/wekeepgrowing/student-activity/internal/domain/errors"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db/model"
)

// 제목별 최신 활동. 같은 날짜면 나중에 생성된 행이 이깁니다.
const latestPerTitleSQL = `
SELECT * FROM (
	SELECT DISTINCT ON (title) *
	FROM student_activities
	ORDER BY title, date DESC, created_at DESC
) latest
ORDER BY date DESC, created_at DESC`

type ActivityRepositoryImpl struct {
	db *gorm.DB
}

// NewActivityRepository 활동 저장소 구현체 생성
func NewActivityRepository(database *gorm.DB) repository.ActivityRepository {
	return &ActivityRepositoryImpl{db: database}
}

func withPhotos(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Photos", func(q *gorm.DB) *gorm.DB {
		return q.Order("created_at ASC, id ASC")
	})
}

// FindByID 활동 ID로 조회
func (r *ActivityRepositoryImpl) FindByID(ctx context.Context, id string, includePhotos bool) (*entity.Activity, error) {
	q := db.Conn(ctx, r.db)
	if includePhotos {
		q = withPhotos(q)
	}

	var m model.ActivityModel
	if err := q.First(&m, "std_act_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.ActivityFromModel(&m), nil
}

// FindByOwnerTitleWithin 학생, 제목, 날짜 구간으로 조회
func (r *ActivityRepositoryImpl) FindByOwnerTitleWithin(ctx context.Context, studentID, title string, start, end time.Time) (*entity.Activity, error) {
	var m model.ActivityModel
	err := db.Conn(ctx, r.db).
		Where("student_id = ? AND title = ? AND date BETWEEN ? AND ?", studentID, title, start.UTC(), end.UTC()).
		Order("date ASC, created_at ASC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mapper.ActivityFromModel(&m), nil
}

// CreateIfAbsent INSERT ... ON CONFLICT DO NOTHING
func (r *ActivityRepositoryImpl) CreateIfAbsent(ctx context.Context, activity *entity.Activity) (bool, error) {
	m := mapper.ActivityToModel(activity)
	res := db.Conn(ctx, r.db).Clauses(clause.OnConflict{DoNothing: true}).Create(m)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	activity.CreatedAt = m.CreatedAt
	activity.UpdatedAt = m.UpdatedAt
	return true, nil
}

// Update 제목, 상세, 날짜 덮어쓰기
func (r *ActivityRepositoryImpl) Update(ctx context.Context, activity *entity.Activity) error {
	res := db.Conn(ctx, r.db).
		Model(&model.ActivityModel{}).
		Where("std_act_id = ?", activity.ID).
		Updates(map[string]interface{}{
			"title":        activity.Title,
			"detail":       activity.Detail,
			"date":         activity.Date.UTC(),
			"activity_day": datatypes.Date(activity.Day),
			"updated_at":   activity.UpdatedAt,
		})
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrDuplicateKey
		}
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ActivityNotFound(activity.ID)
	}
	return nil
}

// ListByStudent 학생의 활동 (사진 포함, 날짜 내림차순)
func (r *ActivityRepositoryImpl) ListByStudent(ctx context.Context, studentID string) ([]*entity.Activity, error) {
	var models []model.ActivityModel
	err := withPhotos(db.Conn(ctx, r.db)).
		Where("student_id = ?", studentID).
		Order("date DESC, created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapper.ActivitiesFromModels(models), nil
}

// ListAll 전체 활동 (날짜 내림차순)
func (r *ActivityRepositoryImpl) ListAll(ctx context.Context) ([]*entity.Activity, error) {
	var models []model.ActivityModel
	if err := db.Conn(ctx, r.db).Order("date DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	return mapper.ActivitiesFromModels(models), nil
}

// ListLatestPerTitle 제목별 최신 활동
func (r *ActivityRepositoryImpl) ListLatestPerTitle(ctx context.Context) ([]*entity.Activity, error) {
	var models []model.ActivityModel
	if err := db.Conn(ctx, r.db).Raw(latestPerTitleSQL).Scan(&models).Error; err != nil {
		return nil, err
	}
	return mapper.ActivitiesFromModels(models), nil
}
