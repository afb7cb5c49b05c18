package logger

import (
	"context"
	"path"
	"time"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pkgerrors "github.com/wekeepgrowing/student-activity/pkg/errors"
)

// NewGrpcUnaryServerInterceptor는 unary RPC 호출마다 결과 코드와 소요 시간을 기록합니다.
// 핸들러가 AppError를 반환하면 대응하는 gRPC status로 바꿉니다.
func NewGrpcUnaryServerInterceptor(logger *zap.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
		start := time.Now()
		resp, err := handler(ctx, req)
		err = pkgerrors.ToGRPCStatus(err)
		logRPC(logger, info.FullMethod, start, err)
		return resp, err
	}
}

// NewGrpcStreamServerInterceptor는 스트림 RPC 종료 시 송수신 메시지 수와 함께 기록합니다.
func NewGrpcStreamServerInterceptor(logger *zap.Logger) grpc.StreamServerInterceptor {
	return func(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		start := time.Now()
		counted := &countingServerStream{ServerStream: ss}
		err := pkgerrors.ToGRPCStatus(handler(srv, counted))
		logRPC(logger, info.FullMethod, start, err,
			zap.Int("grpc.recv_count", counted.recv),
			zap.Int("grpc.send_count", counted.sent),
		)
		return err
	}
}

func logRPC(logger *zap.Logger, fullMethod string, start time.Time, err error, extra ...zap.Field) {
	code := status.Code(err)
	fields := append([]zap.Field{
		zap.String("grpc.service", path.Dir(fullMethod)[1:]),
		zap.String("grpc.method", path.Base(fullMethod)),
		zap.String("grpc.code", code.String()),
		zap.Duration("grpc.duration", time.Since(start)),
	}, extra...)

	switch code {
	case codes.OK:
		logger.Debug("gRPC 요청 완료", fields...)
	case codes.Canceled, codes.DeadlineExceeded, codes.NotFound, codes.InvalidArgument, codes.Unavailable:
		logger.Warn("gRPC 요청 실패", append(fields, zap.Error(err))...)
	default:
		logger.Error("gRPC 요청 오류", append(fields, zap.Error(err))...)
	}
}

type countingServerStream struct {
	grpc.ServerStream
	recv int
	sent int
}

func (s *countingServerStream) RecvMsg(m interface{}) error {
	err := s.ServerStream.RecvMsg(m)
	if err == nil {
		s.recv++
	}
	return err
}

func (s *countingServerStream) SendMsg(m interface{}) error {
	err := s.ServerStream.SendMsg(m)
	if err == nil {
		s.sent++
	}
	return err
}
