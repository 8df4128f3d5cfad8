package core

import (
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	ErrorBadInput          = "PAYLINK_BAD_INPUT"
	ErrorProviderNotFound  = "PAYLINK_PROVIDER_NOT_FOUND"
	ErrorConfigNotFound    = "PAYLINK_CONFIG_NOT_FOUND"
	ErrorForbidden         = "PAYLINK_FORBIDDEN"
	ErrorTestFailed        = "PAYLINK_TEST_FAILED"
	ErrorRateLimited       = "PAYLINK_RATE_LIMITED"
	ErrorVaultFailed       = "PAYLINK_VAULT_FAILED"
	ErrorVaultEntryMissing = "PAYLINK_VAULT_ENTRY_MISSING"
	ErrorInternal          = "PAYLINK_INTERNAL"
)

func onboardingErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "unsupported provider"), strings.Contains(msg, "provider not found"):
		return newCoreError(err.Error(), goerrors.CategoryNotFound, ErrorProviderNotFound)
	case strings.Contains(msg, "configuration not found"):
		return newCoreError(err.Error(), goerrors.CategoryNotFound, ErrorConfigNotFound)
	case strings.Contains(msg, "access denied"), strings.Contains(msg, "not owned"):
		return newCoreError(err.Error(), goerrors.CategoryAuthz, ErrorForbidden)
	case strings.Contains(msg, "connection test failed"):
		return newCoreError(err.Error(), goerrors.CategoryOperation, ErrorTestFailed)
	case strings.Contains(msg, "rate limit"), strings.Contains(msg, "throttl"):
		return newCoreError(err.Error(), goerrors.CategoryRateLimit, ErrorRateLimited)
	case strings.Contains(msg, "failed to store credentials"), strings.Contains(msg, "vault"):
		return newCoreError(err.Error(), goerrors.CategoryExternal, ErrorVaultFailed)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "empty"):
		return newCoreError(err.Error(), goerrors.CategoryBadInput, ErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureErrorEnvelope(mapped)
}

func newCoreError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = httpStatusFor(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return ErrorBadInput
	case goerrors.CategoryNotFound:
		return ErrorConfigNotFound
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return ErrorForbidden
	case goerrors.CategoryRateLimit:
		return ErrorRateLimited
	case goerrors.CategoryOperation:
		return ErrorTestFailed
	case goerrors.CategoryExternal:
		return ErrorVaultFailed
	default:
		return ErrorInternal
	}
}

func httpStatusFor(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryRateLimit:
		return http.StatusTooManyRequests
	case goerrors.CategoryOperation:
		return http.StatusUnprocessableEntity
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
