package endpoint

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
)

type createBody struct {
	Title string `json:"title"`
}

func TestParseRequestBodyDecodesJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/blog/posts", strings.NewReader(`{"title":"My Post"}`))

	body, closer, err := ParseRequestBody[createBody](req)
	defer closer()

	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if body.Title != "My Post" {
		t.Fatalf("unexpected body: %+v", body)
	}
}

func TestParseRequestBodyEmptyBodyIsZeroValue(t *testing.T) {
	req := httptest.NewRequest("POST", "/blog/posts", bytes.NewReader(nil))

	body, closer, err := ParseRequestBody[createBody](req)
	defer closer()

	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if body.Title != "" {
		t.Fatalf("expected zero value, got %+v", body)
	}
}

func TestParseRequestBodyRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest("POST", "/blog/posts", strings.NewReader(`{"title":`))

	_, closer, err := ParseRequestBody[createBody](req)
	defer closer()

	if err == nil {
		t.Fatalf("expected unmarshal error")
	}
}
