package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"

	"github.com/paylinkhq/go-paylink/core"
)

const (
	// DefaultMount is the KV v2 mount the client targets when none is
	// configured.
	DefaultMount = "secret"

	// DefaultRequestTimeout bounds each backend call when the caller
	// does not supply a client of their own.
	DefaultRequestTimeout = 10 * time.Second

	tokenHeader = "X-Vault-Token"

	maxResponseBodyBytes = 1 << 20
)

// HTTPDoer is the subset of *http.Client the vault client needs.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config carries the connection settings for a Vault KV v2 mount.
type Config struct {
	// Address is the base URL of the Vault server, e.g.
	// https://vault.internal:8200.
	Address string
	// Token authenticates every request via the X-Vault-Token header.
	Token string
	// Mount is the KV v2 mount name. Defaults to DefaultMount.
	Mount string
	// BasePath is an optional prefix inserted between the mount and the
	// derived secret path.
	BasePath string
	// HTTPClient overrides the default client, mostly for tests.
	HTTPClient HTTPDoer
	// Timeout applies only when HTTPClient is nil.
	Timeout time.Duration
	// Logger receives per-call debug output. Optional.
	Logger glog.Logger
}

// Client stores credential bundles in Vault's KV v2 engine. Paths are
// derived from the provider name and tenant id, never accepted from
// callers, so two tenants can never collide on a secret location.
type Client struct {
	address  string
	token    string
	mount    string
	basePath string
	client   HTTPDoer
	logger   glog.Logger
}

// New builds a Client. It fails fast on a missing address so a
// misconfigured deployment surfaces at wiring time rather than on the
// first secret write.
func New(cfg Config) (*Client, error) {
	address := strings.TrimSuffix(strings.TrimSpace(cfg.Address), "/")
	if address == "" {
		return nil, goerrors.New("vault address is required", goerrors.CategoryBadInput).
			WithTextCode(core.ErrorBadInput)
	}

	mount := strings.Trim(strings.TrimSpace(cfg.Mount), "/")
	if mount == "" {
		mount = DefaultMount
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultRequestTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Client{
		address:  address,
		token:    strings.TrimSpace(cfg.Token),
		mount:    mount,
		basePath: strings.Trim(strings.TrimSpace(cfg.BasePath), "/"),
		client:   client,
		logger:   glog.Ensure(cfg.Logger),
	}, nil
}

// Save writes the bundle as the latest version of the tenant's secret.
// Existing versions are superseded, not merged.
func (c *Client) Save(ctx context.Context, providerName string, tenantID int64, bundle core.CredentialBundle) error {
	if err := c.ready(); err != nil {
		return err
	}
	if bundle.IsEmpty() {
		return goerrors.New("credential bundle is required", goerrors.CategoryBadInput).
			WithTextCode(core.ErrorBadInput)
	}

	target, err := c.secretURL(providerName, tenantID)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(map[string]any{"data": bundle})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to encode credential bundle").
			WithTextCode(core.ErrorInternal)
	}

	resp, err := c.do(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.backendError("write", resp)
	}

	c.logger.Debug("secret saved", "provider", providerName, "tenant_id", tenantID)
	return nil
}

// Get reads the latest version of the tenant's secret. A missing entry
// is a CategoryNotFound error so callers can distinguish "never stored"
// from a backend outage.
func (c *Client) Get(ctx context.Context, providerName string, tenantID int64) (core.CredentialBundle, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}

	target, err := c.secretURL(providerName, tenantID)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil, goerrors.New("vault entry not found", goerrors.CategoryNotFound).
			WithTextCode(core.ErrorVaultEntryMissing)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.backendError("read", resp)
	}

	var envelope struct {
		Data struct {
			Data map[string]any `json:"data"`
		} `json:"data"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&envelope); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "failed to decode vault response").
			WithTextCode(core.ErrorVaultFailed)
	}
	if envelope.Data.Data == nil {
		return nil, goerrors.New("vault entry not found", goerrors.CategoryNotFound).
			WithTextCode(core.ErrorVaultEntryMissing)
	}

	return core.CredentialBundle(envelope.Data.Data), nil
}

// Exists reports whether a secret is stored for the pair. Backend
// failures degrade to false.
func (c *Client) Exists(ctx context.Context, providerName string, tenantID int64) bool {
	bundle, err := c.Get(ctx, providerName, tenantID)
	return err == nil && !bundle.IsEmpty()
}

// Delete removes the latest version of the tenant's secret. Deleting a
// secret that was never stored is not an error.
func (c *Client) Delete(ctx context.Context, providerName string, tenantID int64) error {
	if err := c.ready(); err != nil {
		return err
	}

	target, err := c.secretURL(providerName, tenantID)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, http.MethodDelete, target, nil)
	if err != nil {
		return err
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.backendError("delete", resp)
	}
	return nil
}

// UpdateField rewrites a single field of the stored bundle. The update
// is read-modify-write: concurrent calls on the same pair can drop one
// of the writes.
func (c *Client) UpdateField(ctx context.Context, providerName string, tenantID int64, field string, value any) error {
	field = strings.TrimSpace(field)
	if field == "" {
		return goerrors.New("field name is required", goerrors.CategoryBadInput).
			WithTextCode(core.ErrorBadInput)
	}

	bundle, err := c.Get(ctx, providerName, tenantID)
	if err != nil {
		return err
	}

	updated := bundle.Clone()
	updated[field] = value
	return c.Save(ctx, providerName, tenantID, updated)
}

func (c *Client) ready() error {
	if c == nil || c.client == nil {
		return goerrors.New("vault client is not configured", goerrors.CategoryInternal).
			WithTextCode(core.ErrorInternal)
	}
	return nil
}

func (c *Client) secretURL(providerName string, tenantID int64) (string, error) {
	path, err := core.VaultPathFor(providerName, tenantID)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryBadInput, "invalid secret path").
			WithTextCode(core.ErrorBadInput)
	}
	if c.basePath != "" {
		path = c.basePath + "/" + path
	}
	return c.address + "/v1/" + c.mount + "/data/" + path, nil
}

func (c *Client) do(ctx context.Context, method, target string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to build vault request").
			WithTextCode(core.ErrorInternal)
	}
	if c.token != "" {
		req.Header.Set(tokenHeader, c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryExternal, "vault request failed").
			WithTextCode(core.ErrorVaultFailed)
	}
	return resp, nil
}

// backendError turns a non-2xx Vault response into a classified error,
// folding in the messages Vault reports in its {"errors":[...]} body.
func (c *Client) backendError(operation string, resp *http.Response) error {
	message := fmt.Sprintf("vault %s failed with status %d", operation, resp.StatusCode)
	if detail := decodeErrors(resp); detail != "" {
		message += ": " + detail
	}

	category := goerrors.CategoryExternal
	textCode := core.ErrorVaultFailed
	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		category = goerrors.CategoryAuth
		textCode = core.ErrorForbidden
	}

	c.logger.Error("vault call failed", "operation", operation, "status", resp.StatusCode)
	return goerrors.New(message, category).WithTextCode(textCode)
}

func decodeErrors(resp *http.Response) string {
	if resp == nil || resp.Body == nil {
		return ""
	}
	var body struct {
		Errors []string `json:"errors"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodyBytes)).Decode(&body); err != nil {
		return ""
	}
	return strings.Join(body.Errors, "; ")
}

func drain(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBodyBytes))
	_ = resp.Body.Close()
}

var _ core.SecretStore = (*Client)(nil)
