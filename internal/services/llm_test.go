package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMServiceRejectsUnknownProvider(t *testing.T) {
	_, err := NewLLMService("anthropic", "", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER")
}

func TestNewLLMServiceRejectsEmptyProvider(t *testing.T) {
	_, err := NewLLMService("", "key", "", "key", "")
	require.Error(t, err)
}

func TestNewLLMServiceRequiresGeminiKey(t *testing.T) {
	_, err := NewLLMService(ProviderGemini, "", "", "unused", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GOOGLE_API_KEY")
}

func TestNewLLMServiceRequiresOpenAIKey(t *testing.T) {
	_, err := NewLLMService(ProviderOpenAI, "unused", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestNewLLMServiceBuildsOpenAIBackend(t *testing.T) {
	svc, err := NewLLMService("  OpenAI  ", "", "", "sk-test", "gpt-4o")
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestSplitSystemUser(t *testing.T) {
	system, user := splitSystemUser([]Message{
		{Role: RoleSystem, Content: "first rule"},
		{Role: RoleUser, Content: "question"},
		{Role: RoleSystem, Content: "second rule"},
		{Role: RoleUser, Content: "detail"},
	})

	assert.Equal(t, "first rule\nsecond rule", system)
	assert.Equal(t, "question\ndetail", user)
}

func TestSplitSystemUserEmpty(t *testing.T) {
	system, user := splitSystemUser(nil)
	assert.Empty(t, system)
	assert.Empty(t, user)
}
