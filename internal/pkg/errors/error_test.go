package errors

import (
	"fmt"
	"io"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrInvalidParam, "test message")
	if err.Code != ErrInvalidParam {
		t.Errorf("expected code %d, got %d", ErrInvalidParam, err.Code)
	}
	if err.Message != "test message" {
		t.Errorf("expected message 'test message', got '%s'", err.Message)
	}
	if err.Error() != "[INVALID_PARAM] test message" {
		t.Errorf("unexpected error string %q", err.Error())
	}
}

func TestWrap(t *testing.T) {
	cause := io.ErrUnexpectedEOF
	err := Wrap(ErrDecodingFailure, "wrapped", cause)
	if err.Cause != cause {
		t.Error("expected cause to be preserved")
	}
	wrapped := fmt.Errorf("outer: %w", err)
	if GetCode(wrapped) != ErrDecodingFailure {
		t.Errorf("expected code to survive wrapping, got %s", GetCode(wrapped))
	}
}

func TestHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func() *VearchError
		code ErrorCode
	}{
		{"InvalidParam", func() *VearchError { return InvalidParam("dim") }, ErrInvalidParam},
		{"Unsupported", func() *VearchError { return UnsupportedConfiguration("IVF_PQ", "JACCARD") }, ErrUnsupportedConfiguration},
		{"Encoding", func() *VearchError { return EncodingFailure("index params", io.EOF) }, ErrEncodingFailure},
		{"Engine", func() *VearchError { return EngineError("search", io.EOF) }, ErrEngine},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn()
			if err.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, err.Code)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if GetCode(nil) != ErrOK {
		t.Error("nil error should map to OK")
	}
	if GetCode(io.EOF) != ErrInternal {
		t.Error("foreign error should map to INTERNAL")
	}
	if !Is(New(ErrDistanceMismatch, "x"), ErrDistanceMismatch) {
		t.Error("Is should match the code")
	}
	if !ErrInvalidCandidate.IsValidation() || ErrEngine.IsValidation() {
		t.Error("unexpected validation classification")
	}
}
