package visitor

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/louisbranch/storefront/internal/platform/id"
	"github.com/louisbranch/storefront/internal/services/storefront/platform/requestmeta"
)

func TestMiddlewareIssuesCookieForNewVisitor(t *testing.T) {
	t.Parallel()

	var seen string
	h := Middleware(requestmeta.SchemePolicy{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if !id.Valid(seen) {
		t.Fatalf("visitor id = %q, want generated id", seen)
	}
	cookie, err := http.ParseSetCookie(rr.Header().Get("Set-Cookie"))
	if err != nil {
		t.Fatalf("ParseSetCookie() error = %v", err)
	}
	if cookie.Name != CookieName || cookie.Value != seen || !cookie.HttpOnly {
		t.Fatalf("cookie = %+v", cookie)
	}
}

func TestMiddlewareReusesExistingVisitor(t *testing.T) {
	t.Parallel()

	existing, err := id.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}
	var seen string
	h := Middleware(requestmeta.SchemePolicy{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: existing})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if seen != existing {
		t.Fatalf("visitor id = %q, want %q", seen, existing)
	}
	if rr.Header().Get("Set-Cookie") != "" {
		t.Fatal("existing visitor should not get a new cookie")
	}
}

func TestMiddlewareReplacesMalformedCookie(t *testing.T) {
	t.Parallel()

	var seen string
	h := Middleware(requestmeta.SchemePolicy{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "../../etc/passwd"})
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if !id.Valid(seen) {
		t.Fatalf("visitor id = %q, want generated id", seen)
	}
	if rr.Header().Get("Set-Cookie") == "" {
		t.Fatal("expected replacement cookie")
	}
}

func TestFromContextWithoutVisitor(t *testing.T) {
	t.Parallel()

	if _, ok := FromContext(context.Background()); ok {
		t.Fatal("expected no visitor")
	}
	if _, ok := FromContext(nil); ok {
		t.Fatal("expected no visitor for nil context")
	}
	if _, ok := Read(nil); ok {
		t.Fatal("expected no visitor for nil request")
	}
}
