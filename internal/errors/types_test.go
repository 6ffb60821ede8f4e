package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorType(""), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.errorType.String(); got != tt.expected {
				t.Errorf("ErrorType.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "Error without cause",
			appError: &AppError{
				Type:    ErrorTypeInvalidInput,
				Message: "invalid input",
			},
			expected: "invalid_input: invalid input",
		},
		{
			name: "Error with cause",
			appError: &AppError{
				Type:    ErrorTypeDatabase,
				Message: "connection failed",
				Cause:   errors.New("disk full"),
			},
			expected: "database: connection failed (caused by: disk full)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := tt.appError.Error(); result != tt.expected {
				t.Errorf("AppError.Error() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appError := &AppError{Type: ErrorTypeDatabase, Message: "wrapped error", Cause: cause}

	if appError.Unwrap() != cause {
		t.Errorf("AppError.Unwrap() = %v, want %v", appError.Unwrap(), cause)
	}
}

func TestAppError_Is(t *testing.T) {
	readErr := NewStoreReadError("fetch tasks", errors.New("boom"))

	if !errors.Is(readErr, ErrStoreRead) {
		t.Errorf("errors.Is(store read error, ErrStoreRead) = false, want true")
	}
	if errors.Is(NewDatabaseError("insert task", nil), ErrStoreRead) {
		t.Errorf("errors.Is(database error, ErrStoreRead) = true, want false")
	}
	if readErr.Is(errors.New("regular error")) {
		t.Errorf("AppError.Is(regular error) = true, want false")
	}
}
