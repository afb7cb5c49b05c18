package grpc

import (
	"fmt"
	"net"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/wekeepgrowing/student-activity/pkg/logger"
)

// ServiceName 헬스 체크에 등록되는 서비스 이름
const ServiceName = "student-activity"

// Server gRPC 서버 구조체. 현재는 헬스 체크만 제공합니다.
type Server struct {
	server  *grpc.Server
	health  *health.Server
	logger  *zap.Logger
	address string
}

// Config gRPC 서버 설정
type Config struct {
	Port       string
	Reflection bool
}

// NewServer gRPC 서버 생성
func NewServer(cfg Config, zapLogger *zap.Logger) *Server {
	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(logger.NewGrpcUnaryServerInterceptor(zapLogger)),
		grpc.ChainStreamInterceptor(logger.NewGrpcStreamServerInterceptor(zapLogger)),
	)

	// 헬스 체크 서비스 등록
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(server, healthServer)

	// 서버 리플렉션 설정 (개발 환경에서만 사용)
	if cfg.Reflection {
		reflection.Register(server)
	}

	return &Server{
		server:  server,
		health:  healthServer,
		logger:  zapLogger,
		address: fmt.Sprintf(":%s", cfg.Port),
	}
}

// SetServing 전체 및 서비스 단위 헬스 상태 변경
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Start gRPC 서버 시작
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("gRPC 서버 리스너 생성 실패: %w", err)
	}
	return s.Serve(listener)
}

// Serve 주어진 리스너로 서비스를 시작합니다
func (s *Server) Serve(listener net.Listener) error {
	s.SetServing(true)
	s.logger.Info("gRPC 서버 시작",
		zap.String("address", listener.Addr().String()),
	)
	return s.server.Serve(listener)
}

// Stop gRPC 서버 중지
func (s *Server) Stop() {
	s.logger.Info("gRPC 서버 종료 중...")
	s.SetServing(false)
	s.server.GracefulStop()
	s.logger.Info("gRPC 서버 종료 완료")
}
