package service

import (
	"errors"
	"net/http"
)

// ErrorKind 是生成接口的错误分类。
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindInvalidInput
	KindServiceUnavailable
	KindContentBlocked
	KindUpstreamUnavailable
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "InvalidInput"
	case KindServiceUnavailable:
		return "ServiceUnavailable"
	case KindContentBlocked:
		return "ContentBlocked"
	case KindUpstreamUnavailable:
		return "UpstreamUnavailable"
	default:
		return "InternalError"
	}
}

// HTTPStatus 返回该类错误对应的 HTTP 状态码。
func (k ErrorKind) HTTPStatus() int {
	switch k {
	case KindInvalidInput, KindContentBlocked:
		return http.StatusBadRequest
	case KindUpstreamUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error 携带错误分类和可以直接返回给调用方的 Message，Err 为底层原因，只用于日志。
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError 把任意错误转换为 *Error，未分类的错误归为 KindInternal。
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	msg := defaultInternalMessage
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}
