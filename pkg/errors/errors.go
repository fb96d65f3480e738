package errors

import "fmt"

type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common error codes
const (
	ErrCodeTransport        = "TRANSPORT_ERROR"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeUnknown          = "UNKNOWN_ERROR"
)

// Code extracts the classification code from an error. Non-AppError
// values classify as UNKNOWN_ERROR; nil has no code.
func Code(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code
	}
	return ErrCodeUnknown
}

func IsTransport(err error) bool {
	return Code(err) == ErrCodeTransport
}

func IsUnauthorized(err error) bool {
	return Code(err) == ErrCodeUnauthorized
}

func IsConflict(err error) bool {
	return Code(err) == ErrCodeConflict
}

func IsNotFound(err error) bool {
	return Code(err) == ErrCodeNotFound
}

func IsValidation(err error) bool {
	return Code(err) == ErrCodeValidationFailed
}
