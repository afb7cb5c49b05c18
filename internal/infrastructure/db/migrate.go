package db

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db/model"
)

// Migrate 테이블과 인덱스를 생성합니다
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running GORM auto-migrations...")

	if err := db.AutoMigrate(
		&model.StudentModel{},
		&model.ActivityModel{},
		&model.PhotoModel{},
	); err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

// createCustomIndexes GORM 태그로 표현하기 어려운 인덱스
func createCustomIndexes(db *gorm.DB) error {
	// 템플릿 조회(DISTINCT ON title ORDER BY title, date DESC)용
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_student_activities_title_date ON student_activities (title, date DESC, created_at DESC)`).Error; err != nil {
		return err
	}

	// 학생별 목록(날짜 내림차순)용
	return db.Exec(`CREATE INDEX IF NOT EXISTS idx_student_activities_student_date ON student_activities (student_id, date DESC)`).Error
}
