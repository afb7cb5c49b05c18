package mapper

import (
	"time"

	"gorm.io/datatypes"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db/model"
)

// ActivityToModel 사진은 변환하지 않습니다 (사진은 PhotoRepository가 저장)
func ActivityToModel(a *entity.Activity) *model.ActivityModel {
	if a == nil {
		return nil
	}
	return &model.ActivityModel{
		ID:          a.ID,
		StudentID:   a.StudentID,
		Title:       a.Title,
		Detail:      a.Detail,
		Date:        a.Date.UTC(),
		ActivityDay: datatypes.Date(a.Day),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// ActivityFromModel 미리 로드된 Photos가 있으면 함께 변환합니다
func ActivityFromModel(m *model.ActivityModel) *entity.Activity {
	if m == nil {
		return nil
	}
	a := &entity.Activity{
		ID:        m.ID,
		StudentID: m.StudentID,
		Title:     m.Title,
		Detail:    m.Detail,
		Date:      m.Date,
		Day:       dateToTime(m.ActivityDay),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Photos != nil {
		a.Photos = PhotosFromModels(m.Photos)
	}
	return a
}

// ActivitiesFromModels DB 모델 슬라이스를 엔티티 슬라이스로 변환
func ActivitiesFromModels(models []model.ActivityModel) []*entity.Activity {
	out := make([]*entity.Activity, len(models))
	for i := range models {
		out[i] = ActivityFromModel(&models[i])
	}
	return out
}

func dateToTime(d datatypes.Date) time.Time {
	t := time.Time(d)
	y, mo, day := t.Date()
	return time.Date(y, mo, day, 0, 0, 0, 0, time.UTC)
}
