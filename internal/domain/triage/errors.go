package triage

import (
	"errors"
	"fmt"
)

// ErrNoInput indicates a request carried neither symptom text nor an
// image. The transport boundary rejects this before the engine runs; the
// engine re-checks defensively.
var ErrNoInput = errors.New("no symptom text or medical image supplied")

// ProviderError marks a generative-provider failure: missing credentials,
// network trouble, a provider-side error, or an empty response. It is the
// designed fallback trigger — the orchestrator recovers from it locally
// and it never reaches the caller as a failure.
type ProviderError struct {
	Reason string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider: %s: %v", e.Reason, e.Err)
	}
	return "provider: " + e.Reason
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ErrProviderNotConfigured is the standing failure installed at startup
// when no provider credential is present. It fails closed for the
// lifetime of the process and is never re-checked per request.
var ErrProviderNotConfigured = &ProviderError{Reason: "credentials not configured"}
