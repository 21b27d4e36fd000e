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
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusBadRequest, publicMsg: "validation failed", detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, publicMsg: "authentication required"},
		{code: CodeForbidden, status: http.StatusForbidden, publicMsg: "access denied"},
		{code: CodeNotFound, status: http.StatusNotFound, publicMsg: "resource not found"},
		{code: CodeConflict, status: http.StatusConflict, publicMsg: "conflict detected"},
		{code: CodeRateLimit, status: http.StatusTooManyRequests, publicMsg: "rate limit exceeded"},
		{code: CodeInternal, status: http.StatusInternalServerError, publicMsg: "internal server error", retryable: true},
		{code: CodeUpstream, status: http.StatusBadGateway, publicMsg: "marketplace backend unavailable", retryable: true, detailsOK: true},
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
		if meta.DetailsAllowed != tt.detailsOK {
			t.Fatalf("code %s expected details allowed %v got %v", tt.code, tt.detailsOK, meta.DetailsAllowed)
		}
	}
}

func TestMetadataForUnknownCodeFallsBack(t *testing.T) {
	meta := MetadataFor(Code("NOPE"))
	if meta.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unknown code should map to internal, got %d", meta.HTTPStatus)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("socket closed")
	err := Wrap(CodeUpstream, cause, "list cart items")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be discoverable via errors.Is")
	}
	if typed := As(err); typed == nil || typed.Code() != CodeUpstream {
		t.Fatalf("expected typed upstream error, got %v", err)
	}
}

func TestWrapNilCauseBehavesLikeNew(t *testing.T) {
	err := Wrap(CodeValidation, nil, "quantity must be positive")
	if err.Unwrap() != nil {
		t.Fatal("expected no cause")
	}
	if err.Error() != "VALIDATION_ERROR: quantity must be positive" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

type fakeStatusErr struct{ status int }

func (f *fakeStatusErr) Error() string        { return "upstream said no" }
func (f *fakeStatusErr) UpstreamStatus() int  { return f.status }
func (f *fakeStatusErr) UpstreamBody() string { return `{"detail":"nope"}` }

func TestDumpExtractsUpstreamStatus(t *testing.T) {
	err := Wrap(CodeUpstream, &fakeStatusErr{status: 503}, "refresh cart")

	d := Dump(err)
	if d.Code != CodeUpstream {
		t.Fatalf("expected upstream code, got %s", d.Code)
	}
	if d.UpstreamStatus != 503 {
		t.Fatalf("expected upstream status 503, got %d", d.UpstreamStatus)
	}
	if len(d.Chain) < 2 {
		t.Fatalf("expected full error chain, got %v", d.Chain)
	}
}

func TestDumpNil(t *testing.T) {
	if d := Dump(nil); d.TopMessage != "" || d.Code != "" {
		t.Fatalf("expected zero dump for nil error, got %+v", d)
	}
}
