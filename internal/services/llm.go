package services

import (
	"context"
	"fmt"
	"strings"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged part of a prompt sequence.
type Message struct {
	Role    string
	Content string
}

// ImageInput is one raw image handed to a vision call.
type ImageInput struct {
	MIMEType string
	Data     []byte
}

// LLMService is the model gateway: text and vision completion against one
// backend. Callers never see a vendor request shape. Neither operation
// retries; failures come back as *ModelInvocationError.
type LLMService interface {
	CompleteText(ctx context.Context, messages []Message) (string, error)
	CompleteVision(ctx context.Context, messages []Message, images []ImageInput) (string, error)
}

const (
	ProviderGemini = "google"
	ProviderOpenAI = "openai"
)

// NewLLMService selects the backend for the given provider identifier.
// An unknown provider or missing key is an error the caller should treat as
// fatal: no batch may be accepted without a usable backend.
func NewLLMService(provider, geminiKey, geminiModel, openaiKey, openaiModel string) (LLMService, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case ProviderGemini:
		if geminiKey == "" {
			return nil, fmt.Errorf("provider %q selected but GOOGLE_API_KEY is empty", provider)
		}
		return NewGeminiService(geminiKey, geminiModel)
	case ProviderOpenAI:
		if openaiKey == "" {
			return nil, fmt.Errorf("provider %q selected but OPENAI_API_KEY is empty", provider)
		}
		return NewOpenAIService(openaiKey, openaiModel), nil
	default:
		return nil, fmt.Errorf("no LLM provider configured: set PROVIDER to %q or %q", ProviderGemini, ProviderOpenAI)
	}
}

// splitSystemUser flattens a prompt sequence into one system string and one
// user string, preserving order within each role.
func splitSystemUser(messages []Message) (system string, user string) {
	var sys, usr []string
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			sys = append(sys, m.Content)
		default:
			usr = append(usr, m.Content)
		}
	}
	return strings.Join(sys, "\n"), strings.Join(usr, "\n")
}
