package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/mediconnect/pkg/logging"
)

func TestCSRFIssuesTokenOnGet(t *testing.T) {
	var seen string
	handler := CSRF(false)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = CSRFTokenFromContext(r.Context())
	}))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/appointment", nil))

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CSRFCookieName {
		t.Fatalf("expected csrf cookie, got %+v", cookies)
	}
	if seen == "" || seen != cookies[0].Value {
		t.Fatalf("expected context token to match cookie, got %q", seen)
	}
	if len(seen) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(seen))
	}
}

func TestCSRFRejectsPostWithoutToken(t *testing.T) {
	called := false
	handler := CSRF(false)(okHandler(&called))
	req := httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader("fullName=Jane"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "abc"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if called {
		t.Fatalf("expected handler to be skipped")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestCSRFAcceptsMatchingFormField(t *testing.T) {
	called := false
	handler := CSRF(false)(okHandler(&called))
	form := url.Values{CSRFFieldName: {"abc"}, "fullName": {"Jane"}}
	req := httptest.NewRequest(http.MethodPost, "/appointment", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "abc"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected request to pass, called=%v code=%d", called, rec.Code)
	}
}

func TestCSRFAcceptsHeader(t *testing.T) {
	called := false
	handler := CSRF(false)(okHandler(&called))
	req := httptest.NewRequest(http.MethodPost, "/doctors", nil)
	req.Header.Set(CSRFHeaderName, "abc")
	req.AddCookie(&http.Cookie{Name: CSRFCookieName, Value: "abc"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if !called {
		t.Fatalf("expected header token to be accepted")
	}
}

func TestRequestLoggerRecordsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")
	handler := chimw.RequestID(RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	})))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/patients", nil))

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("expected one JSON log line: %v (%s)", err, buf.String())
	}
	if entry["status"] != float64(http.StatusUnprocessableEntity) {
		t.Fatalf("expected status 422 in log, got %v", entry["status"])
	}
	if entry["path"] != "/api/patients" {
		t.Fatalf("unexpected path %v", entry["path"])
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}
}
