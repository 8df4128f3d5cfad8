package providers

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"
)

func TestOutcome(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		message string
		want    string
	}{
		{"unauthorized", http.StatusUnauthorized, "bad key", "invalid or unauthorized credential"},
		{"forbidden", http.StatusForbidden, "", "invalid or unauthorized credential"},
		{"rate limited", http.StatusTooManyRequests, "slow down", "rate limited, retry later"},
		{"server error with text", http.StatusInternalServerError, "boom", "provider returned status 500: boom"},
		{"server error without text", http.StatusBadGateway, "  ", "provider returned status 502: Bad Gateway"},
		{"client error", http.StatusNotFound, "no such route", "provider returned status 404: no such route"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Outcome(tc.status, tc.message); got != tc.want {
				t.Fatalf("got %q want %q", got, tc.want)
			}
		})
	}
}

func TestInferEnvironment(t *testing.T) {
	if got := InferEnvironment("sk_test_abc", "sk_test"); got != "test" {
		t.Fatalf("expected test, got %q", got)
	}
	if got := InferEnvironment("sk_live_abc", "sk_test"); got != "live" {
		t.Fatalf("expected live, got %q", got)
	}
	if got := InferEnvironment("FLWSECK_TEST-xyz", "FLWSECK_TEST"); got != "test" {
		t.Fatalf("marker match must be case-insensitive, got %q", got)
	}
	if got := InferEnvironment("whatever-test-key"); got != "test" {
		t.Fatalf("default marker should match, got %q", got)
	}
}

func TestDecodeJSONBody(t *testing.T) {
	resp := &http.Response{
		Body: io.NopCloser(strings.NewReader(`{"status":true,"message":"ok"}`)),
	}
	decoded := DecodeJSONBody(resp)
	if decoded["message"] != "ok" {
		t.Fatalf("expected decoded body, got %v", decoded)
	}

	malformed := &http.Response{Body: io.NopCloser(strings.NewReader("<html>"))}
	if decoded := DecodeJSONBody(malformed); len(decoded) != 0 {
		t.Fatalf("expected empty map for malformed body, got %v", decoded)
	}

	if decoded := DecodeJSONBody(nil); len(decoded) != 0 {
		t.Fatalf("expected empty map for nil response, got %v", decoded)
	}
}

func TestDecodeJSONBody_EnforcesSizeLimit(t *testing.T) {
	huge := append([]byte(`{"padding":"`), bytes.Repeat([]byte("a"), int(maxResponseBodyBytes))...)
	huge = append(huge, []byte(`"}`)...)
	resp := &http.Response{Body: io.NopCloser(bytes.NewReader(huge))}
	// Truncated JSON fails to parse, which degrades to an empty map.
	if decoded := DecodeJSONBody(resp); len(decoded) != 0 {
		t.Fatalf("expected empty map for oversized body, got %d keys", len(decoded))
	}
}

func TestStringValue(t *testing.T) {
	decoded := map[string]any{"message": "  ok  ", "count": 3}
	if got := StringValue(decoded, "message"); got != "ok" {
		t.Fatalf("expected trimmed value, got %q", got)
	}
	if got := StringValue(decoded, "count"); got != "" {
		t.Fatalf("expected empty for non-string, got %q", got)
	}
	if got := StringValue(nil, "message"); got != "" {
		t.Fatalf("expected empty for nil map, got %q", got)
	}
}
