package seerbit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/paylinkhq/go-paylink/core"
	"github.com/paylinkhq/go-paylink/providers"
)

const (
	ProviderName   = "seerbit"
	DefaultBaseURL = "https://seerbitapi.com"

	publicKeyField     = "publicKey"
	secretKeyField     = "secretKey"
	encryptionKeyField = "encryptionKey"

	publicKeyPrefix = "SBPUBK_"
	secretKeyPrefix = "SBSECK_"
	testKeyMarker   = "_TEST_"
)

type Config struct {
	BaseURL    string
	HTTPClient providers.HTTPDoer
	Timeout    time.Duration
}

// Tester probes the SeerBit API with a read-only merchant bank list
// lookup. SeerBit authenticates probe calls with the secret and public
// key joined by a dot; the encryption key is only used for payment
// payloads, so its shape is validated but never sent.
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
	return core.CredentialSchema{Required: []string{publicKeyField, secretKeyField, encryptionKeyField}}
}

func (t *Tester) Test(ctx context.Context, bundle core.CredentialBundle) (core.ConnectionTestResult, error) {
	if t == nil || t.client == nil {
		return core.ConnectionTestResult{}, fmt.Errorf("seerbit: http client is required")
	}
	startedAt := time.Now()

	publicKey := bundle.StringField(publicKeyField)
	secretKey := bundle.StringField(secretKeyField)
	encryptionKey := bundle.StringField(encryptionKeyField)
	for _, field := range []struct {
		name  string
		value string
	}{
		{publicKeyField, publicKey},
		{secretKeyField, secretKey},
		{encryptionKeyField, encryptionKey},
	} {
		if field.value == "" {
			return elapsed(core.TestFailed("missing required field: "+field.name), startedAt), nil
		}
	}
	if !strings.HasPrefix(publicKey, publicKeyPrefix) {
		return elapsed(core.TestFailed(publicKeyField+` must start with "`+publicKeyPrefix+`"`), startedAt), nil
	}
	if !strings.HasPrefix(secretKey, secretKeyPrefix) {
		return elapsed(core.TestFailed(secretKeyField+` must start with "`+secretKeyPrefix+`"`), startedAt), nil
	}

	req, err := providers.NewGetRequest(ctx, t.baseURL+"/api/v2/banks/"+publicKey, map[string]string{
		"Authorization": "Bearer " + secretKey + "." + publicKey,
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

	metadata := map[string]any{
		"environment": providers.InferEnvironment(publicKey, testKeyMarker),
	}
	if code := providers.StringValue(decoded, "code"); code != "" {
		metadata["responseCode"] = code
	}
	return elapsed(core.TestSucceeded("connection successful", metadata), startedAt), nil
}

func elapsed(result core.ConnectionTestResult, startedAt time.Time) core.ConnectionTestResult {
	result.Elapsed = time.Since(startedAt)
	return result
}

var _ core.ConnectionTester = (*Tester)(nil)
