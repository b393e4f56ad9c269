package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetUserPrompt(t *testing.T) {
	p := GetUserPrompt("fever and chills", "user-42")

	assert.Contains(t, p, GetSystemPrompt())
	assert.Contains(t, p, "Symptoms: fever and chills")
	assert.Contains(t, p, "User ID: user-42 (for context, do not include in response)")
}

func TestGetUserPromptOmitsEmptyParts(t *testing.T) {
	p := GetUserPrompt("", "")

	assert.Equal(t, GetSystemPrompt(), p)
	assert.NotContains(t, p, "Symptoms:")
	assert.NotContains(t, p, "User ID:")
}
