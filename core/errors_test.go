package core

import (
	"errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestOnboardingErrorMapper_ClassifiesPlainErrors(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		textCode string
		status   int
	}{
		{
			"unsupported provider",
			errors.New("core: unsupported provider: \"stripe\""),
			goerrors.CategoryNotFound,
			ErrorProviderNotFound,
			http.StatusNotFound,
		},
		{
			"configuration not found",
			errors.New("configuration not found: cfg-9"),
			goerrors.CategoryNotFound,
			ErrorConfigNotFound,
			http.StatusNotFound,
		},
		{
			"access denied",
			errors.New("access denied"),
			goerrors.CategoryAuthz,
			ErrorForbidden,
			http.StatusForbidden,
		},
		{
			"test failed",
			errors.New("connection test failed: bad key"),
			goerrors.CategoryOperation,
			ErrorTestFailed,
			http.StatusUnprocessableEntity,
		},
		{
			"rate limited",
			errors.New("provider rate limit exceeded"),
			goerrors.CategoryRateLimit,
			ErrorRateLimited,
			http.StatusTooManyRequests,
		},
		{
			"vault failure",
			errors.New("failed to store credentials"),
			goerrors.CategoryExternal,
			ErrorVaultFailed,
			http.StatusBadGateway,
		},
		{
			"bad input",
			errors.New("missing required field: secretKey"),
			goerrors.CategoryBadInput,
			ErrorBadInput,
			http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := onboardingErrorMapper(tc.err)
			if mapped == nil {
				t.Fatalf("expected mapped error")
			}
			if mapped.Category != tc.category {
				t.Fatalf("category: got %v want %v", mapped.Category, tc.category)
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("text code: got %s want %s", mapped.TextCode, tc.textCode)
			}
			if mapped.Code != tc.status {
				t.Fatalf("status: got %d want %d", mapped.Code, tc.status)
			}
		})
	}
}

func TestOnboardingErrorMapper_PreservesRichErrors(t *testing.T) {
	original := goerrors.New("access denied", goerrors.CategoryAuthz).
		WithCode(http.StatusForbidden).
		WithTextCode(ErrorForbidden)

	mapped := onboardingErrorMapper(original)
	if mapped != original {
		t.Fatalf("expected rich error to pass through unchanged")
	}
}

func TestOnboardingErrorMapper_FillsMissingEnvelopeFields(t *testing.T) {
	partial := goerrors.New("something odd", goerrors.CategoryNotFound)
	partial.Code = 0
	partial.TextCode = ""

	mapped := onboardingErrorMapper(partial)
	if mapped.Code != http.StatusNotFound {
		t.Fatalf("expected default status, got %d", mapped.Code)
	}
	if mapped.TextCode != ErrorConfigNotFound {
		t.Fatalf("expected default text code, got %s", mapped.TextCode)
	}
}

func TestOnboardingErrorMapper_NilIsNil(t *testing.T) {
	if mapped := onboardingErrorMapper(nil); mapped != nil {
		t.Fatalf("expected nil, got %v", mapped)
	}
}
