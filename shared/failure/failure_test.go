package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"hotelier/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusBadRequest,
		Message: "test error message",
	}

	if f.Error() != "test error message" {
		t.Errorf("expected error message to be 'test error message', got %s", f.Error())
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{
			name:    "BadRequest",
			err:     failure.BadRequest(errors.New("validation failed")),
			code:    http.StatusBadRequest,
			message: "validation failed",
		},
		{
			name:    "BadRequestFromString",
			err:     failure.BadRequestFromString("check-out date should be greater than check-in date"),
			code:    http.StatusBadRequest,
			message: "check-out date should be greater than check-in date",
		},
		{
			name:    "Unauthorized",
			err:     failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "NotFound",
			err:     failure.NotFound("booking not found"),
			code:    http.StatusNotFound,
			message: "booking not found",
		},
		{
			name:    "Conflict",
			err:     failure.Conflict("room already booked"),
			code:    http.StatusConflict,
			message: "room already booked",
		},
		{
			name:    "Forbidden",
			err:     failure.Forbidden("admins only"),
			code:    http.StatusForbidden,
			message: "admins only",
		},
		{
			name:    "InternalError",
			err:     failure.InternalError(errors.New("database connection failed")),
			code:    http.StatusInternalServerError,
			message: "database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.err.(*failure.Failure)
			if !ok {
				t.Fatalf("expected *failure.Failure, got %T", tt.err)
			}

			if f.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, f.Code)
			}

			if f.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, f.Message)
			}
		})
	}
}

func TestNilErrorsProduceNil(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}

	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{
			name: "failure error",
			err:  failure.NotFound("room not found"),
			code: http.StatusNotFound,
		},
		{
			name: "wrapped failure error",
			err:  fmt.Errorf("booking failed: %w", failure.BadRequestFromString("invalid range")),
			code: http.StatusBadRequest,
		},
		{
			name: "plain error",
			err:  errors.New("boom"),
			code: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := failure.GetCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
		})
	}
}
