package apperrors

import "errors"

var (
	ErrEventNotFound        = errors.New("event not found")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrValidation           = errors.New("validation failed")
	ErrUnauthenticated      = errors.New("not authenticated")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("forbidden")
	ErrAlreadyRegistered    = errors.New("already registered")
	ErrEventFull            = errors.New("no spots left")
	ErrFileTooLarge         = errors.New("file too large")
	ErrUnsupportedFileType  = errors.New("unsupported file type")
	ErrInternalServerError  = errors.New("internal server error")
)

// ValidationError 帶有可以直接顯示給使用者的訊息
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}
