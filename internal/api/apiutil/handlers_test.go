package apiutil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/Fixturely/internal/api/authz"
)

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty("", "  ", " second ", "third"); got != "second" {
		t.Fatalf("expected trimmed second value, got %q", got)
	}
	if got := FirstNonEmpty("", " "); got != "" {
		t.Fatalf("expected empty result, got %q", got)
	}
}

func TestIsJSONRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	if !IsJSONRequest(req) {
		t.Fatalf("expected JSON request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if IsJSONRequest(req) {
		t.Fatalf("expected form request")
	}
}

func TestDecodeJSONRejectsUnknownFields(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatalf("expected unknown field error")
	}
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}{"name":"b"}`))
	if err := DecodeJSON(req, &dst); err == nil {
		t.Fatalf("expected trailing data error")
	}
}

func TestRequireAccessStatuses(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{name: "unauthenticated", err: authz.ErrUnauthenticated, status: http.StatusUnauthorized},
		{name: "forbidden", err: authz.ErrForbidden, status: http.StatusForbidden},
		{name: "other", err: errors.New("boom"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			recorder := httptest.NewRecorder()
			ok := RequireAccess(recorder, req, "test", func(context.Context) error { return tt.err })
			if ok {
				t.Fatalf("expected access to be denied")
			}
			if recorder.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, recorder.Code)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	if !RequireAccess(recorder, req, "test", func(context.Context) error { return nil }) {
		t.Fatalf("expected access to be granted")
	}
}

func TestWriteHandlerError(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	recorder := httptest.NewRecorder()
	WriteHandlerError(recorder, req, HandlerError{Status: http.StatusConflict, Message: "Fixtures already exist"})
	if recorder.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Fixtures already exist") {
		t.Fatalf("unexpected body %q", recorder.Body.String())
	}
}

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2025-08-02", "start_date")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != 8 || parsed.Day() != 2 {
		t.Fatalf("unexpected date %v", parsed)
	}
	if blank, err := ParseDate(" ", "start_date"); err != nil || !blank.IsZero() {
		t.Fatalf("expected zero time for blank input, got %v %v", blank, err)
	}
	if _, err := ParseDate("02/08/2025", "start_date"); err == nil {
		t.Fatalf("expected error for unsupported layout")
	}
}
