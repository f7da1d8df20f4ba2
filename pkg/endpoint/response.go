package endpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	baseHttp "net/http"
)

type Response struct {
	writer  baseHttp.ResponseWriter
	request *baseHttp.Request
	headers func(w baseHttp.ResponseWriter)
}

// NewNoCacheResponse builds a JSON response whose payload must never be
// served stale. Every CMS endpoint mutates or reflects mutable state, so this
// is the default shape.
func NewNoCacheResponse(writer baseHttp.ResponseWriter, request *baseHttp.Request) *Response {
	return &Response{
		writer:  writer,
		request: request,
		headers: func(w baseHttp.ResponseWriter) {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Cache-Control", "no-store")
		},
	}
}

func (r *Response) WithHeaders(callback func(w baseHttp.ResponseWriter)) {
	callback(r.writer)
}

func (r *Response) RespondOk(payload any) error {
	return r.respond(baseHttp.StatusOK, payload)
}

func (r *Response) RespondCreated(payload any) error {
	return r.respond(baseHttp.StatusCreated, payload)
}

func (r *Response) RespondNoContent() {
	r.writer.WriteHeader(baseHttp.StatusNoContent)
}

func (r *Response) respond(status int, payload any) error {
	r.headers(r.writer)
	r.writer.WriteHeader(status)

	return json.NewEncoder(r.writer).Encode(payload)
}

func InternalError(msg string) *ApiError {
	message := fmt.Sprintf("Internal server error: %s", msg)

	return &ApiError{
		Message: message,
		Status:  baseHttp.StatusInternalServerError,
		Err:     errors.New(message),
	}
}

func LogInternalError(msg string, err error) *ApiError {
	slog.Error(err.Error(), "error", err)

	return &ApiError{
		Message: fmt.Sprintf("Internal server error: %s", msg),
		Status:  baseHttp.StatusInternalServerError,
		Err:     err,
	}
}

func BadRequestError(msg string) *ApiError {
	message := fmt.Sprintf("Bad request error: %s", msg)

	return &ApiError{
		Message: message,
		Status:  baseHttp.StatusBadRequest,
		Err:     errors.New(message),
	}
}

func UnauthorisedError(msg string) *ApiError {
	message := fmt.Sprintf("Unauthorised request: %s", msg)

	return &ApiError{
		Message: message,
		Status:  baseHttp.StatusUnauthorized,
		Err:     errors.New(message),
	}
}

func NotFound(msg string) *ApiError {
	message := fmt.Sprintf("Not found error: %s", msg)

	return &ApiError{
		Message: message,
		Status:  baseHttp.StatusNotFound,
		Err:     errors.New(message),
	}
}

func ConflictError(msg string) *ApiError {
	message := fmt.Sprintf("Conflict error: %s", msg)

	return &ApiError{
		Message: message,
		Status:  baseHttp.StatusConflict,
		Err:     errors.New(message),
	}
}

func UnprocessableEntity(msg string, errs map[string]any) *ApiError {
	message := fmt.Sprintf("Unprocessable entity: %s", msg)

	return &ApiError{
		Message: message,
		Status:  baseHttp.StatusUnprocessableEntity,
		Data:    errs,
		Err:     errors.New(message),
	}
}
