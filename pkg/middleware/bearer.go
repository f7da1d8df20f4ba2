package middleware

import (
	"context"
	baseHttp "net/http"
	"strings"

	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
)

type bearerContextKey string

const BearerClaimsKey bearerContextKey = "bearer.claims"

// BearerMiddleware validates Authorization bearer tokens and injects the
// resolved claims into the request context. It rejects before the wrapped
// handler ever runs, so guarded handlers can assume an identity is present.
type BearerMiddleware struct {
	Handler auth.JWTHandler
}

func (m BearerMiddleware) Handle(next endpoint.ApiHandler) endpoint.ApiHandler {
	return func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
		header := strings.TrimSpace(r.Header.Get("Authorization"))

		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return endpoint.UnauthorisedError("missing bearer token")
		}

		token := strings.TrimSpace(header[len("bearer "):])
		if token == "" {
			return endpoint.UnauthorisedError("missing bearer token")
		}

		claims, err := m.Handler.Validate(token)
		if err != nil {
			return endpoint.UnauthorisedError("invalid or expired token")
		}

		ctx := context.WithValue(r.Context(), BearerClaimsKey, claims)

		return next(w, r.WithContext(ctx))
	}
}

// Optional injects claims when the request carries a valid bearer token but
// never rejects: anonymous callers pass through untouched. Routes that widen
// their response for an authenticated caller hang off this variant.
func (m BearerMiddleware) Optional(next endpoint.ApiHandler) endpoint.ApiHandler {
	return func(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
		header := strings.TrimSpace(r.Header.Get("Authorization"))

		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			return next(w, r)
		}

		token := strings.TrimSpace(header[len("bearer "):])

		claims, err := m.Handler.Validate(token)
		if err != nil {
			return next(w, r)
		}

		ctx := context.WithValue(r.Context(), BearerClaimsKey, claims)

		return next(w, r.WithContext(ctx))
	}
}

// GetClaims extracts the authenticated identity from the request context.
func GetClaims(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(BearerClaimsKey).(*auth.Claims)

	return claims, ok
}
