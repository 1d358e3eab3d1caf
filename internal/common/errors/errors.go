package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ErrorCode identifies a recoverable error category surfaced to the client.
type ErrorCode string

const (
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden    ErrorCode = "FORBIDDEN"
	ErrCodeConflict     ErrorCode = "CONFLICT"
	ErrCodeBadRequest   ErrorCode = "BAD_REQUEST"

	// User errors
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	ErrCodeEmailTaken   ErrorCode = "EMAIL_TAKEN"

	// Menu errors
	ErrCodeDishNotFound ErrorCode = "DISH_NOT_FOUND"
	ErrCodeMenuNotFound ErrorCode = "MENU_NOT_FOUND"

	// Reservation errors
	ErrCodeDishNotAvailableForDinner ErrorCode = "DISH_NOT_AVAILABLE_FOR_DINNER"
	ErrCodeDinnerAlreadyBooked       ErrorCode = "DINNER_ALREADY_BOOKED"
	ErrCodeReservationNotFound       ErrorCode = "RESERVATION_NOT_FOUND"

	// Meal-card errors
	ErrCodeInvalidCardNumber   ErrorCode = "INVALID_CARD_NUMBER"
	ErrCodeInvalidExpiryFormat ErrorCode = "INVALID_EXPIRY_FORMAT"
	ErrCodeCardExpired         ErrorCode = "CARD_EXPIRED"
	ErrCodeInvalidCvv          ErrorCode = "INVALID_CVV"
	ErrCodeAmountOutOfRange    ErrorCode = "AMOUNT_OUT_OF_RANGE"
	ErrCodeRechargeInProgress  ErrorCode = "RECHARGE_IN_PROGRESS"
	ErrCodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"
)

// AppError is the typed error carried through services up to the HTTP layer.
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Cause     error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithDetail attaches structured detail to the error.
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// HTTPStatus maps the error code to an HTTP status for the response layer.
func (e *AppError) HTTPStatus() int {
	switch e.Code {
	case ErrCodeNotFound, ErrCodeUserNotFound, ErrCodeDishNotFound,
		ErrCodeMenuNotFound, ErrCodeReservationNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeConflict, ErrCodeEmailTaken, ErrCodeDinnerAlreadyBooked,
		ErrCodeRechargeInProgress:
		return http.StatusConflict
	case ErrCodeValidation, ErrCodeBadRequest, ErrCodeInvalidCardNumber,
		ErrCodeInvalidExpiryFormat, ErrCodeCardExpired, ErrCodeInvalidCvv,
		ErrCodeAmountOutOfRange, ErrCodeDishNotAvailableForDinner,
		ErrCodeInsufficientBalance:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new application error.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with a code and message.
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := New(code, message)
	appErr.Cause = err
	return appErr
}

// Wrapf wraps an existing error with formatting.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AppError {
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// NewValidationError creates a validation error for a single field.
func NewValidationError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Validation failed for field '%s': %s", field, reason)).
		WithDetail("field", field).
		WithDetail("reason", reason)
}

// NewNotFoundError creates a "not found" error for a resource.
func NewNotFoundError(resource string, id interface{}) *AppError {
	return New(ErrCodeNotFound, fmt.Sprintf("%s not found", resource)).
		WithDetail("resource", resource).
		WithDetail("id", id)
}

// NewUnauthorizedError creates an authorization error.
func NewUnauthorizedError(reason string) *AppError {
	return New(ErrCodeUnauthorized, fmt.Sprintf("Unauthorized: %s", reason)).
		WithDetail("reason", reason)
}

// NewForbiddenError creates an access error.
func NewForbiddenError(reason string) *AppError {
	return New(ErrCodeForbidden, fmt.Sprintf("Forbidden: %s", reason)).
		WithDetail("reason", reason)
}

// AsAppError casts err to *AppError when possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err != nil {
		appErr, _ = err.(*AppError)
	}
	return appErr, appErr != nil
}
