package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.HTTPStatus)
	}
}

func TestWrap(t *testing.T) {
	originalErr := errors.New("store unreachable")
	wrapped := Wrap(originalErr, CodeInternal, "internal error", http.StatusInternalServerError)

	if !errors.Is(wrapped, originalErr) {
		t.Errorf("expected wrapped error to contain original error")
	}
	if wrapped.Code != CodeInternal {
		t.Errorf("expected code %s, got %s", CodeInternal, wrapped.Code)
	}
}

func TestHasCode(t *testing.T) {
	err := SlotTaken("Já existe um agendamento para este dia.")

	if !HasCode(err, CodeSlotTaken) {
		t.Error("expected HasCode to match the error's own code")
	}
	if HasCode(err, CodePastDate) {
		t.Error("expected HasCode to reject a different code")
	}
	if HasCode(errors.New("plain"), CodeSlotTaken) {
		t.Error("expected HasCode to reject non-AppError errors")
	}

	wrapped := fmt.Errorf("handling request: %w", err)
	if !HasCode(wrapped, CodeSlotTaken) {
		t.Error("expected HasCode to unwrap chained errors")
	}
}

func TestAsAppError_UnknownError(t *testing.T) {
	appErr := AsAppError(errors.New("mongo: network timeout"))

	if appErr.Code != CodeInternal {
		t.Errorf("expected unknown errors to map to %s, got %s", CodeInternal, appErr.Code)
	}
	if appErr.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", appErr.StatusCode())
	}
}

func TestRejectionStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"past date", PastDate("m"), CodePastDate, http.StatusUnprocessableEntity},
		{"past time", PastTime("m"), CodePastTime, http.StatusUnprocessableEntity},
		{"advance limit", AdvanceLimit("m"), CodeAdvanceLimit, http.StatusUnprocessableEntity},
		{"resource closed", ResourceClosed("m"), CodeResourceClosed, http.StatusUnprocessableEntity},
		{"outside window", OutsideWindow("m"), CodeOutsideWindow, http.StatusUnprocessableEntity},
		{"duplicate booking", DuplicateBooking("m"), CodeDuplicateBooking, http.StatusConflict},
		{"slot taken", SlotTaken("m"), CodeSlotTaken, http.StatusConflict},
		{"not found", NotFoundWithID("Recurso", "abc"), CodeNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}
