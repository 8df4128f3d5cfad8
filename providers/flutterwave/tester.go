package flutterwave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paylinkhq/go-paylink/core"
	"github.com/paylinkhq/go-paylink/providers"
)

const (
	ProviderName   = "flutterwave"
	DefaultBaseURL = "https://api.flutterwave.com"

	secretKeyField  = "secretKey"
	secretKeyPrefix = "FLWSECK"
	testKeyMarker   = "FLWSECK_TEST"
)

type Config struct {
	BaseURL    string
	HTTPClient providers.HTTPDoer
	Timeout    time.Duration
}

// Tester probes the Flutterwave API with a read-only balances lookup.
type Tester struct {
	baseURL string
	client  providers.HTTPDoer
}

func New(cfg Config) *Tester {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Tester{
		baseURL: baseURL,
		client:  providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

func (t *Tester) Name() string { return ProviderName }

func (t *Tester) Schema() core.CredentialSchema {
	return core.CredentialSchema{Required: []string{secretKeyField}}
}

func (t *Tester) Test(ctx context.Context, bundle core.CredentialBundle) (core.ConnectionTestResult, error) {
	if t == nil || t.client == nil {
		return core.ConnectionTestResult{}, fmt.Errorf("flutterwave: http client is required")
	}
	startedAt := time.Now()

	secretKey := bundle.StringField(secretKeyField)
	if secretKey == "" {
		return elapsed(core.TestFailed("missing required field: "+secretKeyField), startedAt), nil
	}
	if !strings.HasPrefix(secretKey, secretKeyPrefix) {
		return elapsed(core.TestFailed(secretKeyField+` must start with "`+secretKeyPrefix+`"`), startedAt), nil
	}

	req, err := providers.NewGetRequest(ctx, t.baseURL+"/v3/balances", map[string]string{
		"Authorization": "Bearer " + secretKey,
	})
	if err != nil {
		return elapsed(core.TestFailed("build request: "+err.Error()), startedAt), nil
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return elapsed(core.TestFailed("provider unreachable: "+err.Error()), startedAt), nil
	}
	defer providers.DrainAndClose(resp)

	decoded := providers.DecodeJSONBody(resp)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return elapsed(core.TestFailed(providers.Outcome(resp.StatusCode, providers.StringValue(decoded, "message"))), startedAt), nil
	}
	// Flutterwave reports "success" or "error" in the status field even
	// on 2xx responses.
	if status := providers.StringValue(decoded, "status"); status != "" && !strings.EqualFold(status, "success") {
		message := providers.StringValue(decoded, "message")
		if message == "" {
			message = "provider reported failure"
		}
		return elapsed(core.TestFailed(message), startedAt), nil
	}

	metadata := map[string]any{
		"environment": providers.InferEnvironment(secretKey, testKeyMarker),
	}
	if balances, ok := decoded["data"].([]any); ok {
		metadata["balanceCount"] = len(balances)
	}
	return elapsed(core.TestSucceeded("connection successful", metadata), startedAt), nil
}

func elapsed(result core.ConnectionTestResult, startedAt time.Time) core.ConnectionTestResult {
	result.Elapsed = time.Since(startedAt)
	return result
}

var _ core.ConnectionTester = (*Tester)(nil)
