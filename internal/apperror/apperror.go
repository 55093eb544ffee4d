package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation       Kind = "validation"
	KindNotFound         Kind = "not_found"
	KindInsufficientPool Kind = "insufficient_pool"
	KindInternal         Kind = "internal"
)

// AppError carries the HTTP status and a client-safe message. Only Internal
// errors are non-operational: their message is replaced at the boundary.
type AppError struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func (e *AppError) Operational() bool { return e.Kind != KindInternal }

func Validation(format string, args ...any) *AppError {
	return &AppError{Kind: KindValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) *AppError {
	return &AppError{Kind: KindNotFound, Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// InsufficientPool reports that a random test cannot be drawn from the pool.
func InsufficientPool(requested int, available int64) *AppError {
	return &AppError{
		Kind:    KindInsufficientPool,
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("not enough matching questions: requested %d, only %d available", requested, available),
	}
}

func Internal(err error) *AppError {
	return &AppError{Kind: KindInternal, Status: http.StatusInternalServerError, Message: "internal server error", Err: err}
}

// From returns err as an *AppError, wrapping anything unknown as Internal.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}
