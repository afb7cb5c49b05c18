package model

import "time"

// StudentModel students 테이블
type StudentModel struct {
	ID        string    `gorm:"column:std_id;type:varchar(50);primaryKey"`
	Name      string    `gorm:"size:200;not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`

	Activities []ActivityModel `gorm:"foreignKey:StudentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName 테이블 이름 지정
func (StudentModel) TableName() string {
	return "students"
}

// StudentCountRow 활동 수 집계 결과
type StudentCountRow struct {
	ID            string `gorm:"column:std_id"`
	Name          string
	ActivityCount int64
}
