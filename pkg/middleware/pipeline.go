package middleware

import (
	"github.com/matthewbroadbent/blog-norivane/env"
	"github.com/matthewbroadbent/blog-norivane/pkg/auth"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
)

type Pipeline struct {
	Env    *env.Environment
	Bearer BearerMiddleware
}

func MakePipeline(e *env.Environment, jwt auth.JWTHandler) Pipeline {
	return Pipeline{
		Env:    e,
		Bearer: BearerMiddleware{Handler: jwt},
	}
}

func (m Pipeline) Chain(h endpoint.ApiHandler, handlers ...endpoint.Middleware) endpoint.ApiHandler {
	for i := len(handlers) - 1; i >= 0; i-- {
		h = handlers[i](h)
	}

	return h
}
