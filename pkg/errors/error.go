package errors

import (
	"errors"
	"fmt"
)

// 표준 라이브러리 함수 재노출
var (
	New    = errors.New
	Unwrap = errors.Unwrap
	Is     = errors.Is
	As     = errors.As
)

// Error는 기본 에러 인터페이스를 확장합니다
type Error interface {
	error
	Code() string    // 에러 코드 반환
	Message() string // 사용자에게 노출 가능한 메시지 반환
	Unwrap() error   // 내부 에러 반환
}

// AppError는 기본 에러 구현체입니다
type AppError struct {
	code    string
	message string
	err     error
}

func (e *AppError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s", e.message, e.err.Error())
	}
	return e.message
}

func (e *AppError) Code() string {
	return e.code
}

// Message는 내부 원인을 제외한 메시지만 반환합니다
func (e *AppError) Message() string {
	return e.message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewAppError는 새 애플리케이션 에러를 생성합니다
func NewAppError(code string, message string, err error) *AppError {
	return &AppError{
		code:    code,
		message: message,
		err:     err,
	}
}

// NotFound는 NOT_FOUND 코드의 에러를 생성합니다
func NotFound(format string, args ...interface{}) *AppError {
	return NewAppError(ErrNotFound, fmt.Sprintf(format, args...), nil)
}

// InvalidArgument는 INVALID_ARGUMENT 코드의 에러를 생성합니다
func InvalidArgument(format string, args ...interface{}) *AppError {
	return NewAppError(ErrInvalidArgument, fmt.Sprintf(format, args...), nil)
}

// Conflict는 CONFLICT 코드의 에러를 생성합니다
func Conflict(format string, args ...interface{}) *AppError {
	return NewAppError(ErrConflict, fmt.Sprintf(format, args...), nil)
}

// PayloadTooLarge는 PAYLOAD_TOO_LARGE 코드의 에러를 생성합니다
func PayloadTooLarge(format string, args ...interface{}) *AppError {
	return NewAppError(ErrPayloadTooLarge, fmt.Sprintf(format, args...), nil)
}

// Wrap은 기존 에러를 래핑합니다
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	// 기존 AppError인 경우 코드를 유지합니다
	var appErr *AppError
	if As(err, &appErr) {
		return NewAppError(appErr.Code(), message, err)
	}

	return NewAppError(ErrInternal, message, err)
}

// CodeOf는 에러 체인에서 가장 바깥쪽 AppError의 코드를 반환합니다.
// AppError가 없으면 ErrInternal 입니다.
func CodeOf(err error) string {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr.Code()
	}
	return ErrInternal
}

// IsCode는 에러가 지정한 코드를 갖는지 확인합니다
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// PublicMessage는 클라이언트에 노출할 메시지를 반환합니다.
// Wrap으로 쌓인 메시지 대신 코드를 처음 부여한 에러의 메시지를 사용합니다.
func PublicMessage(err error) string {
	code := CodeOf(err)
	var origin *AppError
	for e := err; e != nil; e = Unwrap(e) {
		if appErr, ok := e.(*AppError); ok && appErr.code == code {
			origin = appErr
		}
	}
	if origin == nil {
		return ""
	}
	return origin.message
}
