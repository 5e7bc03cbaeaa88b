package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies the failure class surfaced to the client.
type Kind string

const (
	KindValidation        Kind = "ValidationError"
	KindMissingSlip       Kind = "MissingSlipError"
	KindInvalidFileType   Kind = "InvalidFileType"
	KindFileTooLarge      Kind = "FileTooLarge"
	KindImageDecode       Kind = "ImageDecodeError"
	KindReceiptGeneration Kind = "ReceiptGenerationError"
	KindBackendRejected   Kind = "BackendRejected"
	KindNetwork           Kind = "NetworkError"
	KindConflict          Kind = "Conflict"
	KindNotFound          Kind = "NotFound"
	KindInternal          Kind = "Internal"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	Kind    Kind   `json:"kind"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Kind so callers can use errors.Is(err, apperror.ErrMissingSlip).
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrValidation        = &AppError{Kind: KindValidation, Code: http.StatusBadRequest, Message: "Validation failed"}
	ErrMissingSlip       = &AppError{Kind: KindMissingSlip, Code: http.StatusBadRequest, Message: "Payment Slip is required."}
	ErrInvalidFileType   = &AppError{Kind: KindInvalidFileType, Code: http.StatusUnsupportedMediaType, Message: "File is not an image."}
	ErrFileTooLarge      = &AppError{Kind: KindFileTooLarge, Code: http.StatusRequestEntityTooLarge, Message: "File is too large"}
	ErrImageDecode       = &AppError{Kind: KindImageDecode, Code: http.StatusUnprocessableEntity, Message: "Could not load image."}
	ErrReceiptGeneration = &AppError{Kind: KindReceiptGeneration, Code: http.StatusInternalServerError, Message: "Could not generate receipt"}
	ErrBackendRejected   = &AppError{Kind: KindBackendRejected, Code: http.StatusBadGateway, Message: "Order was rejected"}
	ErrNetwork           = &AppError{Kind: KindNetwork, Code: http.StatusServiceUnavailable, Message: "Could not reach the order server. Please try again."}
	ErrConflict          = &AppError{Kind: KindConflict, Code: http.StatusConflict, Message: "A submission is already in progress"}
	ErrNotFound          = &AppError{Kind: KindNotFound, Code: http.StatusNotFound, Message: "Resource not found"}
)

func NewValidationError(field string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("%s is required", field),
		Field:   field,
	}
}

func NewValidationMessage(field, message string) *AppError {
	return &AppError{
		Kind:    KindValidation,
		Code:    http.StatusBadRequest,
		Message: message,
		Field:   field,
	}
}

func NewMissingSlipError() *AppError {
	return clone(ErrMissingSlip, nil)
}

func NewInvalidFileTypeError(mediaType string) *AppError {
	e := clone(ErrInvalidFileType, nil)
	if mediaType != "" {
		e.Message = fmt.Sprintf("File is not an image (%s).", mediaType)
	}
	return e
}

func NewFileTooLargeError(limit int64) *AppError {
	e := clone(ErrFileTooLarge, nil)
	e.Message = fmt.Sprintf("File is too large (Max %s)", byteLimit(limit))
	return e
}

// byteLimit prints whole megabytes as MB and anything else as KB rounded up.
func byteLimit(n int64) string {
	const kb, mb = 1024, 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%dMB", n/mb)
	}
	return fmt.Sprintf("%dKB", (n+kb-1)/kb)
}

func NewImageDecodeError(err error) *AppError {
	return clone(ErrImageDecode, err)
}

func NewReceiptGenerationError(err error) *AppError {
	return clone(ErrReceiptGeneration, err)
}

// NewBackendRejectedError keeps the backend's message verbatim.
func NewBackendRejectedError(message string) *AppError {
	e := clone(ErrBackendRejected, nil)
	if message != "" {
		e.Message = message
	}
	return e
}

func NewNetworkError(err error) *AppError {
	return clone(ErrNetwork, err)
}

func NewConflictError(message string) *AppError {
	e := clone(ErrConflict, nil)
	if message != "" {
		e.Message = message
	}
	return e
}

func NewNotFoundError(resource string) *AppError {
	e := clone(ErrNotFound, nil)
	e.Message = resource + " not found"
	return e
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError converts an error to AppError if possible
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{
		Kind:    KindInternal,
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
		Err:     err,
	}
}

func clone(base *AppError, err error) *AppError {
	return &AppError{
		Kind:    base.Kind,
		Code:    base.Code,
		Message: base.Message,
		Err:     err,
	}
}
