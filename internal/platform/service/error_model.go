package service

import "errors"

type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation"
	ErrorCodeUnauthorized ErrorCode = "unauthorized"
	ErrorCodeForbidden    ErrorCode = "forbidden"
	ErrorCodeConflict     ErrorCode = "conflict"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeUnavailable  ErrorCode = "unavailable"
	ErrorCodeInternal     ErrorCode = "internal"
)

// ServiceError 传输层无关的业务错误。
// Message 面向客户端；Err 为内部原因，只写日志不透出。
type ServiceError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, cause error) error {
	return &ServiceError{Code: code, Message: message, Err: cause}
}

func NewServiceError(code ErrorCode, message string) error {
	return newError(code, message, nil)
}

func NewValidationError(message string) error {
	return newError(ErrorCodeValidation, message, nil)
}

func NewUnauthorizedError(message string) error {
	return newError(ErrorCodeUnauthorized, message, nil)
}

func NewForbiddenError(message string) error {
	return newError(ErrorCodeForbidden, message, nil)
}

func NewConflictError(message string) error {
	return newError(ErrorCodeConflict, message, nil)
}

func NewNotFoundError(message string) error {
	return newError(ErrorCodeNotFound, message, nil)
}

// NewUnavailableError 外部依赖（对象存储等）失败，原因本身即客户端消息
func NewUnavailableError(cause error) error {
	return newError(ErrorCodeUnavailable, cause.Error(), cause)
}

func NewInternalError(message string) error {
	return newError(ErrorCodeInternal, message, nil)
}

// WrapInternalError 数据库等内部失败：客户端只看到 message，cause 留给日志
func WrapInternalError(cause error, message string) error {
	return newError(ErrorCodeInternal, message, cause)
}

func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}

func IsCode(err error, code ErrorCode) bool {
	serviceErr, ok := AsServiceError(err)
	return ok && serviceErr.Code == code
}
