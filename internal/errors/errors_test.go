package errors

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestNewNotFoundError(t *testing.T) {
	err := NewNotFoundError("task", "abc")

	if err.Type != ErrorTypeNotFound {
		t.Errorf("NewNotFoundError type = %v, want %v", err.Type, ErrorTypeNotFound)
	}
	if err.Message != "task not found: abc" {
		t.Errorf("NewNotFoundError message = %v, want %v", err.Message, "task not found: abc")
	}
	if identifier := err.Context["identifier"]; identifier != "abc" {
		t.Errorf("NewNotFoundError should set identifier context")
	}
}

func TestNewStoreReadError(t *testing.T) {
	cause := errors.New("file is not a database")
	err := NewStoreReadError("fetch tasks", cause)

	if err.Code != CodeStoreReadFailed {
		t.Errorf("NewStoreReadError code = %v, want %v", err.Code, CodeStoreReadFailed)
	}
	if !errors.Is(err, cause) {
		t.Errorf("NewStoreReadError should wrap its cause")
	}
}

func TestFromStore(t *testing.T) {
	notFound := NewNotFoundError("task", "abc")

	tests := []struct {
		name     string
		err      error
		wantNil  bool
		wantType ErrorType
	}{
		{name: "nil stays nil", err: nil, wantNil: true},
		{name: "app error passes through", err: notFound, wantType: ErrorTypeNotFound},
		{name: "deadline becomes timeout", err: fmt.Errorf("query: %w", context.DeadlineExceeded), wantType: ErrorTypeTimeout},
		{name: "cancel becomes timeout", err: context.Canceled, wantType: ErrorTypeTimeout},
		{name: "other becomes database", err: errors.New("disk I/O error"), wantType: ErrorTypeDatabase},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromStore("op", tt.err)
			if tt.wantNil {
				if got != nil {
					t.Errorf("FromStore() = %v, want nil", got)
				}
				return
			}
			if !IsErrorType(got, tt.wantType) {
				t.Errorf("FromStore() = %v, want type %v", got, tt.wantType)
			}
		})
	}

	if FromStore("op", notFound) != error(notFound) {
		t.Errorf("FromStore should return the same AppError instance")
	}
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"not found", NewNotFoundError("task", "abc"), "task not found: abc"},
		{"invalid input", NewInvalidInputError("id", "", "must not be empty"), "invalid input for id: must not be empty"},
		{"database", NewDatabaseError("insert task", nil), "A database error occurred. Please try again."},
		{"store read", NewStoreReadError("fetch tasks", nil), "A database error occurred. Please try again."},
		{"timeout", NewTimeoutError("fetch tasks", nil), "The operation timed out. Please try again."},
		{"plain", errors.New("plain"), "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetUserMessage(tt.err); got != tt.expected {
				t.Errorf("GetUserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(NewNotFoundError("task", "a")); code != CodeNotFound {
		t.Errorf("GetErrorCode() = %v, want %v", code, CodeNotFound)
	}
	if code := GetErrorCode(errors.New("x")); code != "UNKNOWN_ERROR" {
		t.Errorf("GetErrorCode() = %v, want UNKNOWN_ERROR", code)
	}
}

func TestShouldLogError(t *testing.T) {
	if ShouldLogError(NewNotFoundError("task", "a")) {
		t.Errorf("not found errors should not be logged")
	}
	if ShouldLogError(NewInvalidInputError("id", "", "empty")) {
		t.Errorf("invalid input errors should not be logged")
	}
	if !ShouldLogError(NewStoreReadError("fetch tasks", nil)) {
		t.Errorf("store read errors should be logged")
	}
	if !ShouldLogError(errors.New("unknown")) {
		t.Errorf("unknown errors should be logged")
	}
}
