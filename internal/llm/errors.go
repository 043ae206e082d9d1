package llm

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorKind string

const (
	KindUnauthorized     ErrorKind = "unauthorized"
	KindRateLimited      ErrorKind = "rate_limited"
	KindModelUnavailable ErrorKind = "model_unavailable"
	KindGeneric          ErrorKind = "generic"
)

var (
	ErrNoModels        = errors.New("no available models")
	ErrEmptyCompletion = errors.New("no response choices")
)

// ProviderError is a completion failure classified by cause.
type ProviderError struct {
	Provider   string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s (status %d): %v", e.Provider, e.Kind, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// KindOf reports the classification of err, KindGeneric when unclassified.
func KindOf(err error) ErrorKind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return KindGeneric
}

func classify(status int, code string) ErrorKind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return KindUnauthorized
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case code == "model_decommissioned" || code == "model_not_found":
		return KindModelUnavailable
	case status == http.StatusNotFound:
		return KindModelUnavailable
	default:
		return KindGeneric
	}
}
