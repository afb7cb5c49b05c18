package errors

import (
	"google.golang.org/grpc/status"
)

// ToGRPCStatus는 AppError를 gRPC status 에러로 변환합니다.
// 이미 status 에러이거나 nil이면 그대로 반환하고, INTERNAL은 원인을 숨깁니다.
func ToGRPCStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	code := CodeOf(err)
	if code == ErrInternal {
		return status.Error(ToGRPCCode(code), "internal error")
	}
	return status.Error(ToGRPCCode(code), PublicMessage(err))
}
