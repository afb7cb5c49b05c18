package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/wekeepgrowing/student-activity/internal/config"
	"github.com/wekeepgrowing/student-activity/internal/domain/repository"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/storage"
	"github.com/wekeepgrowing/student-activity/pkg/messaging"
)

// Infrastructure 인프라스트럭처 구조체
type Infrastructure struct {
	DB        *gorm.DB
	Publisher messaging.Publisher
	Files     repository.FileStore
	logger    *zap.Logger
}

// NewInfrastructure 인프라스트럭처 초기화
func NewInfrastructure(ctx context.Context, cfg *config.Config) (*Infrastructure, error) {
	logger := cfg.Logger
	infrastructure := &Infrastructure{logger: logger}

	// 데이터베이스 연결 설정
	dbConfig := Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Name:            cfg.Database.Name,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		SlowThreshold:   cfg.Database.SlowThreshold,
		Debug:           cfg.Server.HTTP.Debug,
	}

	var err error
	infrastructure.DB, err = NewPostgresDB(ctx, dbConfig, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Database.AutoMigrate {
		if err := Migrate(infrastructure.DB, logger); err != nil {
			infrastructure.Close()
			return nil, fmt.Errorf("마이그레이션 실패: %w", err)
		}
	}

	// 파일 저장소
	infrastructure.Files, err = storage.New(ctx, storage.Config{
		Driver: cfg.Storage.Driver,
		Local: storage.LocalConfig{
			Dir:       cfg.Storage.Local.Dir,
			URLPrefix: cfg.Storage.Local.URLPrefix,
		},
		S3: storage.S3Config{
			Region:        cfg.Storage.S3.Region,
			Bucket:        cfg.Storage.S3.Bucket,
			AccessKey:     cfg.Storage.S3.AccessKey,
			SecretKey:     cfg.Storage.S3.SecretKey,
			Endpoint:      cfg.Storage.S3.Endpoint,
			Prefix:        cfg.Storage.S3.Prefix,
			PublicBaseURL: cfg.Storage.S3.PublicBaseURL,
		},
	}, logger)
	if err != nil {
		infrastructure.Close()
		return nil, fmt.Errorf("파일 저장소 초기화 실패: %w", err)
	}

	// Redis는 선택 사항. 꺼져 있으면 이벤트를 버립니다
	if cfg.Redis.Enabled {
		infrastructure.Publisher, err = messaging.NewRedisPublisher(ctx, messaging.RedisConfig{
			Addr:        fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: 5 * time.Second,
		})
		if err != nil {
			infrastructure.Close()
			return nil, fmt.Errorf("Redis 연결 실패: %w", err)
		}
	} else {
		infrastructure.Publisher = messaging.NopPublisher{}
	}

	logger.Info("인프라스트럭처 초기화 완료",
		zap.String("database", "PostgreSQL"),
		zap.String("storage", cfg.Storage.Driver),
		zap.Bool("redis", cfg.Redis.Enabled),
	)

	return infrastructure, nil
}

// Close 모든 연결 종료
func (i *Infrastructure) Close() error {
	if i.Publisher != nil {
		if err := i.Publisher.Close(); err != nil {
			i.logger.Warn("Redis 연결 종료 실패", zap.Error(err))
		}
	}

	if i.DB != nil {
		sqlDB, err := i.DB.DB()
		if err != nil {
			return fmt.Errorf("DB 인스턴스 획득 실패: %w", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("데이터베이스 연결 종료 실패: %w", err)
		}
	}

	i.logger.Info("모든 인프라스트럭처 연결 종료됨")
	return nil
}
