package dto

import "github.com/wekeepgrowing/student-activity/internal/domain/entity"

// StudentActivities 학생 한 명과 그 활동 목록
type StudentActivities struct {
	Student    *entity.Student
	Activities []*entity.Activity
}
