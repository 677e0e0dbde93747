package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies service failures so controllers can translate them to
// transport status codes without inspecting message text.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindForbidden
	KindNotFound
	KindConflict
	KindStorage
	KindUnavailable
)

// ServiceError is the typed result every decision-service failure is reported
// as. Internal errors are wrapped, never surfaced verbatim to callers.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	cause   error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

func validationError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func forbiddenError(message string) *ServiceError {
	return &ServiceError{Kind: KindForbidden, Message: message}
}

func notFoundError(format string, args ...interface{}) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func storageError(message string, cause error) *ServiceError {
	return &ServiceError{Kind: KindStorage, Message: message, cause: cause}
}

// KindOf extracts the ErrorKind from err, defaulting to KindUnavailable for
// anything that is not a *ServiceError.
func KindOf(err error) ErrorKind {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindUnavailable
}

// Repository/dispatcher sentinels.
var (
	// ErrDecisionExists is returned by SaveDecision when a final decision for
	// the paper already exists. The conditional write, not a prior read, is
	// the source of truth for this condition.
	ErrDecisionExists = errors.New("final decision already exists for paper")

	// ErrNoFailedRecipients is returned by the dispatcher's resend path when
	// every author's latest attempt is already delivered.
	ErrNoFailedRecipients = errors.New("no failed recipients to resend to")
)
