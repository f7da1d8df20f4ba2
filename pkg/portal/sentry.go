package portal

import (
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/matthewbroadbent/blog-norivane/env"
)

// Sentry bundles the HTTP instrumentation handler with its options so the
// server can wrap the router once at boot.
type Sentry struct {
	Handler *sentryhttp.Handler
	Options *sentryhttp.Options
	Env     *env.Environment
}
