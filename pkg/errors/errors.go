package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"

	// Booking admission rejections. Each one maps to a single failed
	// precondition in the admission engine and is terminal for the request.
	CodePastDate         = "PAST_DATE"
	CodePastTime         = "PAST_TIME"
	CodeAdvanceLimit     = "ADVANCE_LIMIT_EXCEEDED"
	CodeResourceClosed   = "RESOURCE_CLOSED"
	CodeOutsideWindow    = "OUTSIDE_WINDOW"
	CodeDuplicateBooking = "DUPLICATE_ACTIVE_BOOKING"
	CodeSlotTaken        = "SLOT_TAKEN"
)

type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	if e.HTTPStatus == 0 {
		return http.StatusInternalServerError
	}
	return e.HTTPStatus
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(ErrorResponse{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
	return data
}

type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func Wrap(err error, code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts any error into an *AppError. Unknown errors become
// internal errors so infrastructure failures are never presented as
// business rejections.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, CodeInternal, "Erro interno do servidor.", http.StatusInternalServerError)
}

// HasCode reports whether err is an *AppError carrying the given code.
func HasCode(err error, code string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NotFoundWithID(resource, id string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s não encontrado.", resource),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    details,
	}
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func Internal(message string, err error) *AppError {
	return Wrap(err, CodeInternal, message, http.StatusInternalServerError)
}

func PastDate(message string) *AppError {
	return New(CodePastDate, message, http.StatusUnprocessableEntity)
}

func PastTime(message string) *AppError {
	return New(CodePastTime, message, http.StatusUnprocessableEntity)
}

func AdvanceLimit(message string) *AppError {
	return New(CodeAdvanceLimit, message, http.StatusUnprocessableEntity)
}

func ResourceClosed(message string) *AppError {
	return New(CodeResourceClosed, message, http.StatusUnprocessableEntity)
}

func OutsideWindow(message string) *AppError {
	return New(CodeOutsideWindow, message, http.StatusUnprocessableEntity)
}

func DuplicateBooking(message string) *AppError {
	return New(CodeDuplicateBooking, message, http.StatusConflict)
}

func SlotTaken(message string) *AppError {
	return New(CodeSlotTaken, message, http.StatusConflict)
}
