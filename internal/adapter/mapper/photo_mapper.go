package mapper

import (
	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db/model"
)

func PhotoToModel(p *entity.Photo) *model.PhotoModel {
	if p == nil {
		return nil
	}
	return &model.PhotoModel{
		ID:           p.ID,
		ActivityID:   p.ActivityID,
		Filename:     p.Filename,
		URL:          p.URL,
		OriginalName: p.OriginalName,
		ContentType:  p.ContentType,
		Size:         p.Size,
		Width:        p.Width,
		Height:       p.Height,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func PhotoFromModel(m *model.PhotoModel) *entity.Photo {
	if m == nil {
		return nil
	}
	return &entity.Photo{
		ID:           m.ID,
		ActivityID:   m.ActivityID,
		Filename:     m.Filename,
		URL:          m.URL,
		OriginalName: m.OriginalName,
		ContentType:  m.ContentType,
		Size:         m.Size,
		Width:        m.Width,
		Height:       m.Height,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// PhotosFromModels 항상 nil이 아닌 슬라이스를 반환합니다
func PhotosFromModels(models []model.PhotoModel) []*entity.Photo {
	out := make([]*entity.Photo, len(models))
	for i := range models {
		out[i] = PhotoFromModel(&models[i])
	}
	return out
}
