package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/gramseva/aidoctor/internal/domain/triage"
	"github.com/gramseva/aidoctor/internal/infra/ai/prompt"
)

const defaultModel = "gemini-1.5-flash"

// Client adapts the Gemini API to the triage.Generator port.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("missing Gemini API key")
	}
	cli, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{client: cli, model: model}, nil
}

func (c *Client) Close() error { return c.client.Close() }

// Generate issues one combined call: the persona prompt plus symptom
// text, with the image attached as a second content part when present.
func (c *Client) Generate(ctx context.Context, gc triage.GenerateContext) (string, error) {
	model := c.client.GenerativeModel(c.model)

	parts := []genai.Part{genai.Text(prompt.GetUserPrompt(gc.Text, gc.UserID))}
	if gc.ImagePath != "" {
		data, err := os.ReadFile(gc.ImagePath)
		if err != nil {
			return "", &triage.ProviderError{Reason: "read image", Err: err}
		}
		parts = append(parts, genai.ImageData(imageFormat(gc.ImageMIME, gc.ImagePath), data))
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", &triage.ProviderError{Reason: "generate", Err: err}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &triage.ProviderError{Reason: "empty response"}
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if strings.TrimSpace(b.String()) == "" {
		return "", &triage.ProviderError{Reason: "empty response"}
	}
	return b.String(), nil
}

// imageFormat derives the genai image format ("png", "jpeg", ...) from
// the MIME type, falling back to the file extension.
func imageFormat(mime, path string) string {
	if f, ok := strings.CutPrefix(mime, "image/"); ok && f != "" {
		return f
	}
	if i := strings.LastIndex(path, "."); i >= 0 && i < len(path)-1 {
		return strings.ToLower(path[i+1:])
	}
	return "jpeg"
}
