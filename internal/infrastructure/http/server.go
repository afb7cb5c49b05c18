package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	handler "github.com/wekeepgrowing/student-activity/internal/adapter/handler/http"
	"github.com/wekeepgrowing/student-activity/internal/observability"
	"github.com/wekeepgrowing/student-activity/pkg/logger"
)

// Server HTTP 서버 구조체
type Server struct {
	router  *echo.Echo
	server  *http.Server
	logger  *zap.Logger
	address string
	health  HealthCheck
}

// Config HTTP 서버 설정
type Config struct {
	Port           string
	Timeout        time.Duration
	Debug          bool
	BodyLimit      string
	AllowedOrigins []string
}

// HealthCheck /health 에서 호출되는 의존성 점검. nil이면 항상 정상입니다.
type HealthCheck func(ctx context.Context) error

// StaticFiles 로컬 파일 저장소를 URL로 노출할 때 사용합니다
type StaticFiles struct {
	Prefix string
	Dir    string
}

// NewServer HTTP 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	// Echo 인스턴스 생성
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Debug

	// 기본 미들웨어 설정
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if len(cfg.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: cfg.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		}))
	}

	// 로그 및 메트릭 미들웨어 설정
	e.Use(logger.NewEchoRequestLogger(zapLogger))
	e.Use(observability.HTTPMiddleware())

	// Echo 로거 및 에러 핸들러 설정
	logger.WithEchoLogger(e, zapLogger)

	// 요청 DTO 검증기
	e.Validator = handler.NewRequestValidator()

	address := fmt.Sprintf(":%s", cfg.Port)

	server := &http.Server{
		Addr:         address,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.Timeout,
	}

	return &Server{
		router:  e,
		server:  server,
		logger:  zapLogger,
		address: address,
	}
}

// Router Echo 인스턴스 반환
func (s *Server) Router() *echo.Echo {
	return s.router
}

// SetHealthCheck /health 에서 사용할 점검 함수 설정
func (s *Server) SetHealthCheck(check HealthCheck) {
	s.health = check
}

// RegisterRoutes HTTP 라우트 등록
func (s *Server) RegisterRoutes(handlers *handler.Handlers, static *StaticFiles) {
	// 헬스 체크
	s.router.GET("/health", s.healthHandler)

	// 프로메테우스 메트릭
	s.router.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// 업로드 파일 (로컬 저장소일 때만)
	if static != nil && static.Dir != "" {
		s.router.Static(static.Prefix, static.Dir)
	}

	// API 라우트
	handlers.RegisterRoutes(s.router.Group("/api"))
}

func (s *Server) healthHandler(c echo.Context) error {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
		defer cancel()
		if err := s.health(ctx); err != nil {
			s.logger.Warn("헬스 체크 실패", zap.Error(err))
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unavailable",
			})
		}
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Start HTTP 서버 시작. Stop으로 종료되면 nil을 반환합니다.
func (s *Server) Start() error {
	s.logger.Info("HTTP 서버 시작",
		zap.String("address", s.address),
	)

	s.server.Handler = s.router
	if err := s.router.StartServer(s.server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop HTTP 서버 종료
func (s *Server) Stop() error {
	s.logger.Info("HTTP 서버 종료 중...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// echo.Shutdown은 자체 e.Server만 닫으므로 StartServer에 넘긴 서버를 직접 종료합니다
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("HTTP 서버 종료 실패: %w", err)
	}

	s.logger.Info("HTTP 서버 종료 완료")
	return nil
}
