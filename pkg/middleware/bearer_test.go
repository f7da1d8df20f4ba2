package middleware

import (
	baseHttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
)

func testJWTHandler(t *testing.T) auth.JWTHandler {
	t.Helper()

	handler, err := auth.MakeJWTHandler([]byte("0123456789abcdef0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("make jwt handler: %v", err)
	}

	return handler
}

func TestBearerMiddlewareMissingHeader(t *testing.T) {
	mw := BearerMiddleware{Handler: testJWTHandler(t)}

	calls := 0
	next := func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
		calls++
		return nil
	}

	for _, header := range []string{"", "Token abc", "Bearer", "bearer "} {
		req := httptest.NewRequest(baseHttp.MethodPost, "/blog/posts", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		apiErr := mw.Handle(next)(httptest.NewRecorder(), req)

		if apiErr == nil || apiErr.Status != baseHttp.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %+v", header, apiErr)
		}

		if !strings.Contains(apiErr.Message, "missing bearer token") {
			t.Fatalf("header %q: unexpected message %q", header, apiErr.Message)
		}
	}

	if calls != 0 {
		t.Fatalf("wrapped handler ran %d times for unauthenticated requests", calls)
	}
}

func TestBearerMiddlewareInvalidToken(t *testing.T) {
	mw := BearerMiddleware{Handler: testJWTHandler(t)}

	calls := 0
	next := func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
		calls++
		return nil
	}

	req := httptest.NewRequest(baseHttp.MethodPost, "/blog/posts", nil)
	req.Header.Set("Authorization", "Bearer not-a-real-token")

	apiErr := mw.Handle(next)(httptest.NewRecorder(), req)

	if apiErr == nil || apiErr.Status != baseHttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", apiErr)
	}

	if !strings.Contains(apiErr.Message, "invalid or expired token") {
		t.Fatalf("unexpected message %q", apiErr.Message)
	}

	if calls != 0 {
		t.Fatalf("wrapped handler must not run on invalid tokens")
	}
}

func TestBearerMiddlewareExpiredToken(t *testing.T) {
	issuer, err := auth.MakeJWTHandler([]byte("0123456789abcdef0123456789abcdef"), time.Millisecond)
	if err != nil {
		t.Fatalf("make jwt handler: %v", err)
	}

	token, _, err := issuer.Generate("user-uuid", "editor@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	mw := BearerMiddleware{Handler: issuer}

	req := httptest.NewRequest(baseHttp.MethodGet, "/blog/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	apiErr := mw.Handle(func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
		t.Fatalf("handler must not run with an expired token")
		return nil
	})(httptest.NewRecorder(), req)

	if apiErr == nil || apiErr.Status != baseHttp.StatusUnauthorized {
		t.Fatalf("expected 401, got %+v", apiErr)
	}
}

func TestBearerMiddlewareInjectsClaims(t *testing.T) {
	handler := testJWTHandler(t)
	mw := BearerMiddleware{Handler: handler}

	token, _, err := handler.Generate("user-uuid", "editor@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(baseHttp.MethodPost, "/blog/posts", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	var seen *auth.Claims
	apiErr := mw.Handle(func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
		claims, ok := GetClaims(r.Context())
		if !ok {
			t.Fatalf("expected claims in context")
		}

		seen = claims
		return nil
	})(httptest.NewRecorder(), req)

	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}

	if seen == nil || seen.UserID != "user-uuid" || seen.Email != "editor@example.com" {
		t.Fatalf("unexpected claims: %+v", seen)
	}
}

func TestBearerMiddlewareOptionalPassesAnonymous(t *testing.T) {
	mw := BearerMiddleware{Handler: testJWTHandler(t)}

	for _, header := range []string{"", "Token abc", "Bearer not-a-real-token"} {
		calls := 0

		req := httptest.NewRequest(baseHttp.MethodGet, "/blog/posts/some-slug", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}

		apiErr := mw.Optional(func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
			calls++

			if _, ok := GetClaims(r.Context()); ok {
				t.Fatalf("header %q: expected no claims", header)
			}

			return nil
		})(httptest.NewRecorder(), req)

		if apiErr != nil {
			t.Fatalf("header %q: optional middleware must never reject, got %+v", header, apiErr)
		}

		if calls != 1 {
			t.Fatalf("header %q: wrapped handler ran %d times", header, calls)
		}
	}
}

func TestBearerMiddlewareOptionalInjectsClaims(t *testing.T) {
	handler := testJWTHandler(t)
	mw := BearerMiddleware{Handler: handler}

	token, _, err := handler.Generate("user-uuid", "editor@example.com")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(baseHttp.MethodGet, "/blog/posts/some-slug", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	apiErr := mw.Optional(func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
		claims, ok := GetClaims(r.Context())
		if !ok || claims.UserID != "user-uuid" {
			t.Fatalf("expected claims for a valid token, got %+v", claims)
		}

		return nil
	})(httptest.NewRecorder(), req)

	if apiErr != nil {
		t.Fatalf("unexpected error: %+v", apiErr)
	}
}

func TestGetClaimsWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(baseHttp.MethodGet, "/blog/posts", nil)

	if _, ok := GetClaims(req.Context()); ok {
		t.Fatalf("expected no claims on a bare context")
	}
}
