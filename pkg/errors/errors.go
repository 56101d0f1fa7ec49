// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeForbidden          ErrorCode = "1003"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 认证授权错误 (2xxx)
	CodeTokenExpired      ErrorCode = "2001"
	CodeTokenInvalid      ErrorCode = "2002"
	CodeTokenMissing      ErrorCode = "2003"
	CodeProfileIncomplete ErrorCode = "2004"

	// 资源错误 (3xxx)
	CodeReportNotFound    ErrorCode = "3001"
	CodeParagraphNotFound ErrorCode = "3002"
	CodeUserNotFound      ErrorCode = "3003"
	CodeReferenceNotFound ErrorCode = "3004"

	// 业务错误 (4xxx)
	CodeParagraphCapacity ErrorCode = "4001"
	CodeReferenceCapacity ErrorCode = "4002"
	CodeDuplicateLink     ErrorCode = "4003"
	CodeGenerationFailed  ErrorCode = "4004"
	CodeGenerationStale   ErrorCode = "4005"
	CodeParseFailed       ErrorCode = "4006"
	CodeExportFailed      ErrorCode = "4007"
	CodeFileTooLarge      ErrorCode = "4008"
	CodeFileNotPDF        ErrorCode = "4009"

	// 外部服务错误 (5xxx)
	CodeDatabaseError    ErrorCode = "5001"
	CodeCacheError       ErrorCode = "5002"
	CodeLLMProviderError ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeFileTooLarge, CodeFileNotPDF:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeTokenExpired, CodeTokenInvalid, CodeTokenMissing:
		return http.StatusUnauthorized
	case CodeForbidden, CodeProfileIncomplete:
		return http.StatusForbidden
	case CodeNotFound, CodeReportNotFound, CodeParagraphNotFound, CodeUserNotFound, CodeReferenceNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeParagraphCapacity, CodeReferenceCapacity, CodeDuplicateLink, CodeGenerationStale:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrUnauthorized       = New(CodeUnauthorized, "unauthorized")
	ErrForbidden          = New(CodeForbidden, "forbidden")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrTooManyRequests    = New(CodeTooManyRequests, "too many requests")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrTokenExpired      = New(CodeTokenExpired, "token expired")
	ErrTokenInvalid      = New(CodeTokenInvalid, "token invalid")
	ErrTokenMissing      = New(CodeTokenMissing, "token missing")
	ErrProfileIncomplete = New(CodeProfileIncomplete, "profile incomplete")

	ErrReportNotFound    = New(CodeReportNotFound, "report not found")
	ErrParagraphNotFound = New(CodeParagraphNotFound, "paragraph not found")
	ErrUserNotFound      = New(CodeUserNotFound, "user not found")
	ErrReferenceNotFound = New(CodeReferenceNotFound, "reference not found")

	ErrParagraphCapacity = New(CodeParagraphCapacity, "paragraph list at capacity")
	ErrReferenceCapacity = New(CodeReferenceCapacity, "reference link list at capacity")
	ErrDuplicateLink     = New(CodeDuplicateLink, "reference link already exists")
	ErrGenerationFailed  = New(CodeGenerationFailed, "report generation failed")
	ErrGenerationStale   = New(CodeGenerationStale, "generation result superseded")
	ErrParseFailed       = New(CodeParseFailed, "model output parse failed")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
