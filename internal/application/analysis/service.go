package analysis

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gramseva/aidoctor/internal/application"
	"github.com/gramseva/aidoctor/internal/domain/triage"
)

const generativeSource = "Generative LLM"

// DefaultProviderTimeout bounds a single generative call so a hung
// provider cannot stall the request worker; a timeout is a provider
// error and degrades to fallback like any other.
const DefaultProviderTimeout = 30 * time.Second

// Command carries one analysis request into the engine.
type Command struct {
	Text   string
	UserID string
	Image  *ImageUpload
}

// ImageUpload describes an already-persisted upload. The boundary owns
// the file at Path and removes it after the engine returns.
type ImageUpload struct {
	Filename string
	Size     int64
	MIME     string
	Path     string
}

// Service implements the hybrid analysis use-case: one generative
// attempt, then deterministic fallback. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	Generator triage.Generator
	Text      *triage.TextAnalyzer
	Imaging   *triage.ImageSimulator
	Clock     application.Clock
	Timeout   time.Duration
}

// Analyze runs the engine end to end.
//
// The generative provider is invoked exactly once; there is no retry.
// Its failure modes (quota, auth, transient network) are not cheaply
// distinguishable here, and a deterministic fallback always exists, so a
// single failure transitions straight to the fallback analyzers. The
// caller always gets a result unless the request had no input at all.
func (s *Service) Analyze(ctx context.Context, cmd Command) (*triage.Result, error) {
	if strings.TrimSpace(cmd.Text) == "" && cmd.Image == nil {
		return nil, triage.ErrNoInput
	}
	now := s.Clock.Now()

	narrative, err := s.tryGenerative(ctx, cmd)
	if err == nil {
		return &triage.Result{
			Report:     triage.Freeform(narrative),
			Kind:       triage.KindGemini,
			Confidence: 90,
			Source:     generativeSource,
			Timestamp:  now,
		}, nil
	}
	log.Printf("provider unavailable, using fallback analysis: %v", err)

	return s.fallback(cmd, now), nil
}

// tryGenerative issues the single bounded provider call. An empty
// narrative counts as a provider failure.
func (s *Service) tryGenerative(ctx context.Context, cmd Command) (string, error) {
	if s.Generator == nil {
		return "", triage.ErrProviderNotConfigured
	}

	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	gc := triage.GenerateContext{
		Text:   strings.TrimSpace(cmd.Text),
		UserID: cmd.UserID,
	}
	if cmd.Image != nil {
		gc.ImagePath = cmd.Image.Path
		gc.ImageMIME = cmd.Image.MIME
	}

	narrative, err := s.Generator.Generate(ctx, gc)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(narrative) == "" {
		return "", &triage.ProviderError{Reason: "empty response"}
	}
	return narrative, nil
}

// fallback runs the deterministic analyzers per present modality and
// combines them. When both modalities are present this is the only path
// that scores them independently; the generative call treats the image
// as an addendum to one combined prompt.
func (s *Service) fallback(cmd Command, now time.Time) *triage.Result {
	var textRes, imageRes *triage.Result
	if strings.TrimSpace(cmd.Text) != "" {
		textRes = s.Text.Analyze(cmd.Text, now)
	}
	if cmd.Image != nil {
		imageRes = s.Imaging.Analyze(cmd.Image.Filename, cmd.Image.Size, cmd.Image.MIME, now)
	}
	return triage.Combine(textRes, imageRes, now)
}

// NotConfigured is the standing Generator installed at startup when no
// provider credential is present. Every call fails with the same
// provider error for the lifetime of the process.
type NotConfigured struct{}

func (NotConfigured) Generate(context.Context, triage.GenerateContext) (string, error) {
	return "", triage.ErrProviderNotConfigured
}
