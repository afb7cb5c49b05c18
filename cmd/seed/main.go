package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/wekeepgrowing/student-activity/internal/adapter/repository"
	"github.com/wekeepgrowing/student-activity/internal/config"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db"
)

// 학생 목록 YAML을 읽어 students 테이블에 upsert 합니다.
// 사용법: seed [students.yaml]
func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	logger := cfg.Logger
	defer logger.Sync()

	path := cfg.Seed.StudentsFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	// 2. 학생 목록 읽기
	students, err := loadStudentsFromYAML(path)
	if err != nil {
		logger.Fatal("학생 목록 로드 실패", zap.String("path", path), zap.Error(err))
	}

	ctx := context.Background()

	// 3. 데이터베이스 연결 및 마이그레이션
	database, err := db.NewPostgresDB(ctx, db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Name:            cfg.Database.Name,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    2,
		MaxIdleConns:    1,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		SlowThreshold:   cfg.Database.SlowThreshold,
	}, logger)
	if err != nil {
		logger.Fatal("데이터베이스 연결 실패", zap.Error(err))
	}
	defer func() {
		if sqlDB, err := database.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := db.Migrate(database, logger); err != nil {
		logger.Fatal("마이그레이션 실패", zap.Error(err))
	}

	// 4. upsert
	studentRepo := repository.NewStudentRepository(database)
	seeded := 0
	for _, s := range students {
		if err := studentRepo.Upsert(ctx, s); err != nil {
			logger.Error("학생 upsert 실패", zap.String("std_id", s.ID), zap.Error(err))
			continue
		}
		seeded++
	}

	logger.Info("학생 시드 완료",
		zap.String("path", path),
		zap.Int("students", seeded),
	)
}
