package portal

import (
	"net/http/httptest"
	"testing"
)

func TestParseClientIPPrefersForwardedFor(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("X-Forwarded-For", " 203.0.113.9 , 10.0.0.1")

	if got := ParseClientIP(r); got != "203.0.113.9" {
		t.Fatalf("unexpected ip: %q", got)
	}
}

func TestParseClientIPFallsBackToRemoteAddr(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.7:1234"

	if got := ParseClientIP(r); got != "192.0.2.7" {
		t.Fatalf("unexpected ip: %q", got)
	}
}
