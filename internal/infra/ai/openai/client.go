package openai

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/gramseva/aidoctor/internal/domain/triage"
	"github.com/gramseva/aidoctor/internal/infra/ai/prompt"
)

const maxTokens = 2048

// Client adapts the OpenAI chat API to the triage.Generator port. It is
// the alternative provider binding, selected with provider.name: openai.
type Client struct {
	*openai.Client
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{Client: openai.NewClient(apiKey), Model: model}
}

// Generate issues one chat completion with the medical persona as the
// system message and the symptoms (plus image, as a data URL part) as
// the user message.
func (c *Client) Generate(ctx context.Context, gc triage.GenerateContext) (string, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if gc.ImagePath != "" {
		data, err := os.ReadFile(gc.ImagePath)
		if err != nil {
			return "", &triage.ProviderError{Reason: "read image", Err: err}
		}
		mime := gc.ImageMIME
		if mime == "" {
			mime = "image/jpeg"
		}
		user.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: prompt.GetUserPrompt(gc.Text, gc.UserID)},
			{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL: fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)),
				},
			},
		}
	} else {
		user.Content = prompt.GetUserPrompt(gc.Text, gc.UserID)
	}

	resp, err := c.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			user,
		},
	})
	if err != nil {
		return "", &triage.ProviderError{Reason: "chat completion", Err: err}
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &triage.ProviderError{Reason: "empty response"}
	}
	return resp.Choices[0].Message.Content, nil
}
