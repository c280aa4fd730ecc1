package errors

import (
	stdErrors "errors"
	"net/http"
	"testing"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		publicMsg string
		retryable bool
		messageOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", messageOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required", messageOK: true},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found", messageOK: true},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeStore, status: http.StatusInternalServerError, publicMsg: "database read/write failed", retryable: true},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
	}

	for _, tt := range tests {
		meta := MetadataFor(tt.code)
		if meta.HTTPStatus != tt.status {
			t.Fatalf("code %s expected status %d got %d", tt.code, tt.status, meta.HTTPStatus)
		}
		if meta.PublicMessage != tt.publicMsg {
			t.Fatalf("code %s expected public message %q got %q", tt.code, tt.publicMsg, meta.PublicMessage)
		}
		if meta.Retryable != tt.retryable {
			t.Fatalf("code %s expected retryable %v got %v", tt.code, tt.retryable, meta.Retryable)
		}
		if meta.MessageAllowed != tt.messageOK {
			t.Fatalf("code %s expected message allowed %v got %v", tt.code, tt.messageOK, meta.MessageAllowed)
		}
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected internal status, got %d", meta.HTTPStatus)
	}
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing name")
	if base.Code() != CodeValidation {
		t.Fatalf("expected validation code, got %s", base.Code())
	}
	if base.Message() != "missing name" {
		t.Fatalf("unexpected message %q", base.Message())
	}
	if base.Unwrap() != nil {
		t.Fatalf("cause should be nil by default")
	}

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeStore, cause, "write item")
	if wrapped.Code() != CodeStore {
		t.Fatalf("expected store code, got %s", wrapped.Code())
	}
	if !stdErrors.Is(wrapped, cause) {
		t.Fatalf("expected wrapped error to unwrap to cause")
	}

	if got := Wrap(CodeNotFound, nil, "no item"); got.Unwrap() != nil {
		t.Fatalf("wrapping nil should behave like New")
	}
}

func TestAsFindsTypedError(t *testing.T) {
	inner := New(CodeNotFound, "item not found")
	chained := Wrap(CodeStore, inner, "read collection")

	if typed := As(chained); typed == nil || typed.Code() != CodeStore {
		t.Fatalf("expected outermost typed error, got %+v", typed)
	}
	if As(stdErrors.New("plain")) != nil {
		t.Fatalf("plain errors should not match")
	}
	if As(nil) != nil {
		t.Fatalf("nil should not match")
	}
}

func TestDumpCollectsChain(t *testing.T) {
	cause := stdErrors.New("connection refused")
	err := Wrap(CodeStore, cause, "put item")

	d := Dump(err)
	if d.Code != CodeStore {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if len(d.Chain) != 2 {
		t.Fatalf("expected 2 chain entries, got %d", len(d.Chain))
	}
}
