package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultRequestTimeout bounds the single probe call a tester makes.
	DefaultRequestTimeout = 15 * time.Second

	maxResponseBodyBytes int64 = 1 << 20
)

type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResolveHTTPClient returns the supplied client or a default one with
// the given timeout.
func ResolveHTTPClient(client HTTPDoer, timeout time.Duration) HTTPDoer {
	if client != nil {
		return client
	}
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &http.Client{Timeout: timeout}
}

// Outcome classifies a non-2xx probe response into the failure message
// a tester reports. The provider's own error text is carried for the
// generic case only; credentials never appear in messages.
func Outcome(statusCode int, providerMessage string) string {
	switch {
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		return "invalid or unauthorized credential"
	case statusCode == http.StatusTooManyRequests:
		return "rate limited, retry later"
	default:
		message := strings.TrimSpace(providerMessage)
		if message == "" {
			message = http.StatusText(statusCode)
		}
		return fmt.Sprintf("provider returned status %d: %s", statusCode, message)
	}
}

// InferEnvironment guesses test vs live mode from a credential's key
// material. Providers embed a marker substring in test keys.
func InferEnvironment(key string, testMarkers ...string) string {
	lowered := strings.ToLower(key)
	if len(testMarkers) == 0 {
		testMarkers = []string{"test"}
	}
	for _, marker := range testMarkers {
		if marker == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(marker)) {
			return "test"
		}
	}
	return "live"
}

// DecodeJSONBody reads at most maxResponseBodyBytes of the response and
// unmarshals it into a generic map. A malformed body yields an empty
// map rather than an error: classification only needs the status code.
func DecodeJSONBody(resp *http.Response) map[string]any {
	if resp == nil || resp.Body == nil {
		return map[string]any{}
	}
	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodyBytes))
	if err != nil {
		return map[string]any{}
	}
	decoded := map[string]any{}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return map[string]any{}
	}
	return decoded
}

// StringValue extracts a string field from a decoded JSON map.
func StringValue(decoded map[string]any, key string) string {
	if decoded == nil {
		return ""
	}
	if value, ok := decoded[key].(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}

// NewGetRequest builds the read-only probe request with the supplied
// headers. The context must flow through so a cancelled caller aborts
// the outbound call.
func NewGetRequest(ctx context.Context, url string, headers map[string]string) (*http.Request, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	return req, nil
}

func DrainAndClose(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodyBytes))
	_ = resp.Body.Close()
}
