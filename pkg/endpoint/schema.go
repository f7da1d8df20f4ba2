package endpoint

import baseHttp "net/http"

type ErrorResponse struct {
	Error  string         `json:"error"`
	Status int            `json:"status"`
	Data   map[string]any `json:"data,omitempty"`
}

type ApiError struct {
	Message string
	Status  int
	Data    map[string]any
	Err     error
}

func (e *ApiError) Error() string {
	if e == nil {
		return "Internal Server Error"
	}

	return e.Message
}

func (e *ApiError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

type ApiHandler func(baseHttp.ResponseWriter, *baseHttp.Request) *ApiError

type Middleware func(ApiHandler) ApiHandler
