package mapper

import (
	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db/model"
)

// StudentToModel 학생 엔티티를 DB 모델로 변환
func StudentToModel(student *entity.Student) *model.StudentModel {
	if student == nil {
		return nil
	}
	return &model.StudentModel{ID: student.ID, Name: student.Name}
}

// StudentFromModel DB 모델을 학생 엔티티로 변환
func StudentFromModel(m *model.StudentModel) *entity.Student {
	if m == nil {
		return nil
	}
	return &entity.Student{ID: m.ID, Name: m.Name}
}

// StudentSummariesFromRows 집계 결과를 목록 프로젝션으로 변환
func StudentSummariesFromRows(rows []model.StudentCountRow) []*entity.StudentSummary {
	out := make([]*entity.StudentSummary, len(rows))
	for i, r := range rows {
		out[i] = &entity.StudentSummary{
			Student:       entity.Student{ID: r.ID, Name: r.Name},
			ActivityCount: r.ActivityCount,
		}
	}
	return out
}
