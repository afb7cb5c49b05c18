package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	handler "github.com/wekeepgrowing/student-activity/internal/adapter/handler/http"
	"github.com/wekeepgrowing/student-activity/internal/adapter/publisher"
	"github.com/wekeepgrowing/student-activity/internal/adapter/repository"
	"github.com/wekeepgrowing/student-activity/internal/config"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/db"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/grpc"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/http"
	"github.com/wekeepgrowing/student-activity/internal/infrastructure/storage"
	appinit "github.com/wekeepgrowing/student-activity/internal/init"
)

func main() {
	// 1. 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 2. 로거 가져오기
	logger := cfg.Logger
	defer logger.Sync()

	logger.Info("학생 활동 서비스를 시작합니다...",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
		zap.String("timezone", cfg.App.Timezone),
	)

	ctx := context.Background()

	// 3. 인프라스트럭처 초기화 (DB, 파일 저장소, Redis)
	infrastructure, err := db.NewInfrastructure(ctx, cfg)
	if err != nil {
		logger.Fatal("인프라스트럭처 초기화 실패", zap.Error(err))
	}
	defer infrastructure.Close()

	// 4. 레포지토리 초기화
	repositories := repository.InitRepositories(infrastructure.DB, infrastructure.Files)

	// 5. 이벤트 발행기
	events := publisher.NewEventPublisher(infrastructure.Publisher, cfg.Redis.Channel, logger)

	// 6. 유스케이스 초기화
	useCases := appinit.NewUseCases(cfg, repositories, events, logger)

	// 7. HTTP 서버 생성
	httpServer := http.NewServer(http.Config{
		Port:           cfg.Server.HTTP.Port,
		Timeout:        cfg.Server.HTTP.Timeout,
		Debug:          cfg.Server.HTTP.Debug,
		BodyLimit:      cfg.Server.HTTP.BodyLimit,
		AllowedOrigins: cfg.Server.HTTP.AllowedOrigins,
	}, logger)
	httpServer.SetHealthCheck(func(ctx context.Context) error {
		sqlDB, err := infrastructure.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})

	handlers := handler.NewHandlers(logger, useCases.ActivityUseCase, useCases.PhotoUseCase, useCases.StudentUseCase)

	// 로컬 저장소일 때만 업로드 디렉터리를 정적 파일로 노출
	var static *http.StaticFiles
	if local, ok := infrastructure.Files.(*storage.LocalStore); ok {
		static = &http.StaticFiles{Prefix: local.URLPrefix(), Dir: local.Dir()}
	}
	httpServer.RegisterRoutes(handlers, static)

	// 8. gRPC 서버 생성 (헬스 체크)
	var grpcServer *grpc.Server
	if cfg.Server.GRPC.Enabled {
		grpcServer = grpc.NewServer(grpc.Config{
			Port:       cfg.Server.GRPC.Port,
			Reflection: cfg.Server.HTTP.Debug,
		}, logger)
	}

	// 9. 서버 시작
	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Error("HTTP 서버 실행 실패", zap.Error(err))
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				logger.Error("gRPC 서버 종료", zap.Error(err))
			}
		}()
	}

	// 10. 그레이스풀 종료를 위한 시그널 처리
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("서버를 종료합니다...")

	if grpcServer != nil {
		grpcServer.Stop()
	}

	if err := httpServer.Stop(); err != nil {
		logger.Error("HTTP 서버 종료 오류", zap.Error(err))
	}

	logger.Info("서버가 정상적으로 종료되었습니다")
}
