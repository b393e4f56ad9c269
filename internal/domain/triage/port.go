package triage

import "context"

// GenerateContext carries everything the generative provider needs for
// one combined text+image call. The user id is prompt context only and
// must not appear in the rendered answer.
type GenerateContext struct {
	Text      string
	UserID    string
	ImagePath string
	ImageMIME string
}

// Generator port (interface to the external generative-AI provider).
// Implementations return the raw narrative text, or an error — typically
// a *ProviderError — which the orchestrator converts into fallback.
type Generator interface {
	Generate(ctx context.Context, gc GenerateContext) (string, error)
}

// SelectionPolicy port (interface for choosing an entry from the finding
// catalog for a given upload).
type SelectionPolicy interface {
	Select(filename string, n int) int
}
