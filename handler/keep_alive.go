package handler

import (
	baseHttp "net/http"
	"time"

	"github.com/matthewbroadbent/blog-norivane/database"
	"github.com/matthewbroadbent/blog-norivane/handler/payload"
	"github.com/matthewbroadbent/blog-norivane/pkg/endpoint"
)

type KeepAliveHandler struct{}

func MakeKeepAliveHandler() KeepAliveHandler {
	return KeepAliveHandler{}
}

func (h KeepAliveHandler) Handle(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	resp := endpoint.NewNoCacheResponse(w, r)

	data := payload.KeepAliveResponse{
		Message:  "pong",
		DateTime: time.Now().UTC().Format(time.RFC3339),
	}

	if err := resp.RespondOk(data); err != nil {
		return endpoint.LogInternalError("could not encode keep-alive response", err)
	}

	return nil
}

type KeepAliveDBHandler struct {
	db *database.Connection
}

func MakeKeepAliveDBHandler(db *database.Connection) KeepAliveDBHandler {
	return KeepAliveDBHandler{db: db}
}

func (h KeepAliveDBHandler) Handle(w baseHttp.ResponseWriter, r *baseHttp.Request) *endpoint.ApiError {
	if err := h.db.Ping(); err != nil {
		return endpoint.LogInternalError("database ping failed", err)
	}

	resp := endpoint.NewNoCacheResponse(w, r)

	data := payload.KeepAliveResponse{
		Message:  "pong",
		DateTime: time.Now().UTC().Format(time.RFC3339),
	}

	if err := resp.RespondOk(data); err != nil {
		return endpoint.LogInternalError("could not encode keep-alive response", err)
	}

	return nil
}
