package endpoint

import (
	"errors"
	"fmt"
	baseHttp "net/http"
	"strings"

	"github.com/getsentry/sentry-go"

	"github.com/matthewbroadbent/blog-norivane/pkg/portal"
)

type ScopeApiError struct {
	scope   *sentry.Scope
	request *baseHttp.Request
	apiErr  *ApiError
}

func NewScopeApiError(scope *sentry.Scope, r *baseHttp.Request, apiErr *ApiError) *ScopeApiError {
	return &ScopeApiError{scope: scope, request: r, apiErr: apiErr}
}

func (s *ScopeApiError) Enrich() {
	if s == nil || s.scope == nil || s.request == nil || s.apiErr == nil {
		return
	}

	s.scope.SetRequest(s.request)
	s.scope.SetExtra("api_error_status_text", baseHttp.StatusText(s.apiErr.Status))
	s.scope.SetExtra("api_error_message", s.apiErr.Message)

	if s.apiErr.Data != nil {
		s.scope.SetExtra("api_error_data", s.apiErr.Data)
	}

	if s.apiErr.Err != nil {
		s.scope.SetExtra("api_error_cause", s.apiErr.Err.Error())
		s.scope.SetTag("api.error.cause_type", fmt.Sprintf("%T", s.apiErr.Err))
		s.scope.SetExtra("api_error_cause_chain", s.buildErrorChain(s.apiErr.Err))
	}

	if clientIP := strings.TrimSpace(portal.ParseClientIP(s.request)); clientIP != "" {
		s.scope.SetExtra("http_client_ip", clientIP)
	}
}

func (s *ScopeApiError) buildErrorChain(err error) []string {
	chain := make([]string, 0, 4)

	for current := err; current != nil; current = errors.Unwrap(current) {
		chain = append(chain, current.Error())
	}

	return chain
}
