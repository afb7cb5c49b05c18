package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityModel student_activities 테이블.
// (student_id, title, activity_day) 유니크 인덱스가 같은 날 같은 제목의 중복 생성을 막습니다.
type ActivityModel struct {
	ID          string         `gorm:"column:std_act_id;type:varchar(36);primaryKey"`
	StudentID   string         `gorm:"type:varchar(50);not null;index;uniqueIndex:uq_activity_owner_title_day,priority:1"`
	Title       string         `gorm:"size:255;not null;index;uniqueIndex:uq_activity_owner_title_day,priority:2"`
	Detail      *string        `gorm:"type:text"`
	Date        time.Time      `gorm:"not null;index"`
	ActivityDay datatypes.Date `gorm:"not null;uniqueIndex:uq_activity_owner_title_day,priority:3"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`

	Photos []PhotoModel `gorm:"foreignKey:ActivityID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName 테이블 이름 지정
func (ActivityModel) TableName() string {
	return "student_activities"
}
