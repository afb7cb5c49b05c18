package model

import "time"

// PhotoModel student_activity_photos 테이블
type PhotoModel struct {
	ID           string    `gorm:"type:varchar(36);primaryKey"`
	ActivityID   string    `gorm:"type:varchar(36);not null;index"`
	Filename     string    `gorm:"size:255;not null;uniqueIndex"`
	URL          string    `gorm:"size:1024;not null"`
	OriginalName string    `gorm:"size:255"`
	ContentType  string    `gorm:"size:100"`
	Size         int64     `gorm:"not null;default:0"`
	Width        int       `gorm:"not null;default:0"`
	Height       int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName 테이블 이름 지정
func (PhotoModel) TableName() string {
	return "student_activity_photos"
}
