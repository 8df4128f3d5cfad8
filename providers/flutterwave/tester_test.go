package flutterwave

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/paylinkhq/go-paylink/core"
)

func TestTest_SuccessReportsEnvironmentAndBalances(t *testing.T) {
	var authHeader, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		path = r.URL.Path
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"success","message":"Wallet balances fetched","data":[{"currency":"NGN"},{"currency":"USD"}]}`))
	}))
	defer server.Close()

	tester := New(Config{BaseURL: server.URL})
	result, err := tester.Test(context.Background(), core.CredentialBundle{"secretKey": "FLWSECK_TEST-abc-X"})
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if path != "/v3/balances" {
		t.Fatalf("unexpected path %q", path)
	}
	if authHeader != "Bearer FLWSECK_TEST-abc-X" {
		t.Fatalf("unexpected auth header %q", authHeader)
	}
	if result.Metadata["environment"] != "test" {
		t.Fatalf("expected test environment, got %v", result.Metadata["environment"])
	}
	if result.Metadata["balanceCount"] != 2 {
		t.Fatalf("expected balanceCount 2, got %v", result.Metadata["balanceCount"])
	}
}

func TestTest_ErrorStatusOn2xxIsFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"error","message":"Merchant not approved"}`))
	}))
	defer server.Close()

	tester := New(Config{BaseURL: server.URL})
	result, err := tester.Test(context.Background(), core.CredentialBundle{"secretKey": "FLWSECK-abc"})
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if result.Success {
		t.Fatalf("expected failure")
	}
	if result.Message != "Merchant not approved" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.Metadata["environment"] != nil {
		t.Fatalf("failure results must not carry environment metadata")
	}
}

func TestTest_ValidationRejectsBadKeysWithoutNetwork(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()
	tester := New(Config{BaseURL: server.URL})

	result, err := tester.Test(context.Background(), core.CredentialBundle{"secretKey": "sk_test_wrong_provider"})
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if result.Success || result.Message != `secretKey must start with "FLWSECK"` {
		t.Fatalf("unexpected result %+v", result)
	}

	result, err = tester.Test(context.Background(), core.CredentialBundle{})
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if result.Success || result.Message != "missing required field: secretKey" {
		t.Fatalf("unexpected result %+v", result)
	}

	if hits.Load() != 0 {
		t.Fatalf("expected zero network calls, got %d", hits.Load())
	}
}

func TestTest_UnauthorizedClassification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","message":"Invalid authorization key"}`))
	}))
	defer server.Close()

	tester := New(Config{BaseURL: server.URL})
	result, err := tester.Test(context.Background(), core.CredentialBundle{"secretKey": "FLWSECK-abc"})
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if result.Message != "invalid or unauthorized credential" {
		t.Fatalf("unexpected message %q", result.Message)
	}
}

func TestTest_LiveKeyEnvironment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"success","data":[]}`))
	}))
	defer server.Close()

	tester := New(Config{BaseURL: server.URL})
	result, err := tester.Test(context.Background(), core.CredentialBundle{"secretKey": "FLWSECK-live-key"})
	if err != nil {
		t.Fatalf("test: %v", err)
	}
	if result.Metadata["environment"] != "live" {
		t.Fatalf("expected live environment, got %v", result.Metadata["environment"])
	}
}
