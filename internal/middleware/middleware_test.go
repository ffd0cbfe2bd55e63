package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionSetsCookie(t *testing.T) {
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var seen bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			seen = true
			break
		}
	}
	if !seen {
		t.Fatalf("expected %s cookie to be set, got %v", sessionCookieName, rec.Result().Header["Set-Cookie"])
	}
}

func TestSessionRoundTrip(t *testing.T) {
	var firstID, secondID string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := GetSession(r)
		if firstID == "" {
			firstID = s.ID
		} else {
			secondID = s.ID
		}
		_, _ = io.WriteString(w, "ok")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)

	if firstID == "" || firstID != secondID {
		t.Fatalf("session id must survive the cookie round trip: %q vs %q", firstID, secondID)
	}
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	var gotID string
	h := Session(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = GetSession(r).ID
		_, _ = io.WriteString(w, "ok")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	firstID := gotID

	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			c.Value = c.Value + "x" // break the signature
		}
		req2.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req2)
	if gotID == firstID {
		t.Fatalf("tampered cookie must yield a fresh session")
	}
}

func TestCSRFBlocksPostWithoutToken(t *testing.T) {
	h := Session(CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without CSRF token, got %d", rec.Code)
	}
}

func TestCSRFAllowsPostWithToken(t *testing.T) {
	h := Session(CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})))

	boot := httptest.NewRecorder()
	h.ServeHTTP(boot, httptest.NewRequest(http.MethodGet, "/", nil))
	var token string
	for _, c := range boot.Result().Cookies() {
		if c.Name == csrfCookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatalf("missing csrf cookie after bootstrap GET")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	for _, c := range boot.Result().Cookies() {
		req.AddCookie(c)
	}
	req.Header.Set("X-CSRF-Token", token)
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid CSRF, got %d; body=%s", rec.Code, rec.Body.String())
	}
}

func TestCSRFRejectionIsJSONForHTMX(t *testing.T) {
	h := HTMX(Session(CSRF(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))))
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("htmx rejection must be JSON, got %q", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["error"] == "" {
		t.Fatalf("expected error field in body, got %v", body)
	}
}

func TestHTMXContextFlag(t *testing.T) {
	var flagged bool
	h := HTMX(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		flagged = IsHTMX(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("HX-Request", "true")
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !flagged {
		t.Fatalf("expected htmx flag in context")
	}
}
