// Package errors provides the structured error type shared by every team space
// operation. Callers branch on Kind or Code, never on Message text.
package errors

import "errors"

// Kind is the closed set of failure categories an operation can report.
type Kind string

const (
	KindStore           Kind = "store_error"
	KindNotFound        Kind = "not_found"
	KindInvalidInput    Kind = "invalid_input"
	KindExternalService Kind = "external_service_error"
	KindConflict        Kind = "conflict"
)

// Envelope status codes.
const (
	StatusCreated  = 201
	StatusAccepted = 202
	StatusFailed   = 401
	StatusMissing  = 402
)

// AppError represents a structured application error with a stable code,
// human-readable message, envelope status, kind and optional internal error.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"-"`
	Kind     Kind   `json:"-"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is matches another AppError by code so wrapped sentinels compare equal.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Wrap creates a new AppError from sentinel that carries internal as its cause.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Status:   sentinel.Status,
		Kind:     sentinel.Kind,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Status:   sentinel.Status,
		Kind:     sentinel.Kind,
		Internal: sentinel.Internal,
	}
}

// As returns err as an *AppError. Errors that are not AppErrors are reported
// as store failures, since the store is the only untyped error source.
func As(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(ErrStore, err)
}

// KindOf returns the Kind of err, or "" when err is nil.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return As(err).Kind
}

// General errors.
var (
	ErrStore        = &AppError{Code: "STORE_ERROR", Message: "The record store request failed", Status: StatusFailed, Kind: KindStore}
	ErrInvalidInput = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", Status: StatusFailed, Kind: KindInvalidInput}
	ErrConflict     = &AppError{Code: "CONFLICT", Message: "The team space was modified concurrently, try again", Status: StatusFailed, Kind: KindConflict}
	ErrInvalidToken = &AppError{Code: "INVALID_SESSION", Message: "Invalid or expired session", Status: StatusFailed, Kind: KindInvalidInput}
	ErrNotLoggedIn  = &AppError{Code: "NOT_LOGGED_IN", Message: "No user in session", Status: StatusFailed, Kind: KindInvalidInput}
)

// External collaborator errors.
var (
	ErrImageSearch = &AppError{Code: "IMAGE_SEARCH_FAILED", Message: "Image search failed", Status: StatusFailed, Kind: KindExternalService}
)

// Team space errors.
var (
	ErrTeamSpaceNotFound = &AppError{Code: "TEAM_SPACE_NOT_FOUND", Message: "Team space not found", Status: StatusMissing, Kind: KindNotFound}
	ErrInvalidJoinCode   = &AppError{Code: "INVALID_JOIN_CODE", Message: "Invalid Join Code", Status: StatusFailed, Kind: KindInvalidInput}
)

// Nested element errors.
var (
	ErrCategoryNotFound    = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Spending category not found", Status: StatusMissing, Kind: KindNotFound}
	ErrTransactionNotFound = &AppError{Code: "TRANSACTION_NOT_FOUND", Message: "Transaction not found", Status: StatusMissing, Kind: KindNotFound}
	ErrMemberNotFound      = &AppError{Code: "MEMBER_NOT_FOUND", Message: "No user found with that user ID", Status: StatusMissing, Kind: KindNotFound}
	ErrLeaderNotFound      = &AppError{Code: "LEADER_NOT_FOUND", Message: "Team space has no leader", Status: StatusMissing, Kind: KindNotFound}
)
