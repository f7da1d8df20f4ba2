package endpoint

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	baseHttp "net/http"
)

const MaxRequestSize = 1 << 20 // 1MB limit

// ParseRequestBody decodes the request body into T, capping reads at
// MaxRequestSize. The returned closer releases the body and is safe to defer
// regardless of the error outcome.
func ParseRequestBody[T any](r *baseHttp.Request) (T, func(), error) {
	var request T

	closer := func() {
		if issue := r.Body.Close(); issue != nil {
			slog.Error("ParseRequestBody: " + issue.Error())
		}
	}

	limitedReader := io.LimitReader(r.Body, MaxRequestSize)

	data, err := io.ReadAll(limitedReader)
	if err != nil {
		return request, closer, fmt.Errorf("failed to read the given request body: %w", err)
	}

	if len(data) == 0 {
		return request, closer, nil
	}

	if err = json.Unmarshal(data, &request); err != nil {
		return request, closer, fmt.Errorf("failed to unmarshal the given request body: %w", err)
	}

	return request, closer, nil
}
