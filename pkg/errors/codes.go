package errors

import (
	"net/http"

	"google.golang.org/grpc/codes"
)

// 공통 에러 코드 정의
const (
	ErrInternal        = "INTERNAL"
	ErrNotFound        = "NOT_FOUND"
	ErrInvalidArgument = "INVALID_ARGUMENT"
	ErrConflict        = "CONFLICT"
	ErrTimeout         = "TIMEOUT"
	ErrNotImplemented  = "NOT_IMPLEMENTED"
	ErrPayloadTooLarge = "PAYLOAD_TOO_LARGE"
)

type codeInfo struct {
	httpStatus int
	grpcCode   codes.Code
}

var codeTable = map[string]codeInfo{
	ErrInternal:        {http.StatusInternalServerError, codes.Internal},
	ErrNotFound:        {http.StatusNotFound, codes.NotFound},
	ErrInvalidArgument: {http.StatusBadRequest, codes.InvalidArgument},
	ErrConflict:        {http.StatusConflict, codes.AlreadyExists},
	ErrTimeout:         {http.StatusGatewayTimeout, codes.DeadlineExceeded},
	ErrNotImplemented:  {http.StatusNotImplemented, codes.Unimplemented},
	ErrPayloadTooLarge: {http.StatusRequestEntityTooLarge, codes.ResourceExhausted},
}

func lookup(code string) codeInfo {
	if info, ok := codeTable[code]; ok {
		return info
	}
	return codeTable[ErrInternal]
}

// ToHTTPStatus는 에러 코드를 HTTP 상태 코드로 변환합니다
func ToHTTPStatus(code string) int {
	return lookup(code).httpStatus
}

// ToGRPCCode는 에러 코드를 gRPC 코드로 변환합니다
func ToGRPCCode(code string) codes.Code {
	return lookup(code).grpcCode
}
