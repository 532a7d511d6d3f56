package services

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type geminiService struct {
	client    *genai.Client
	modelName string
}

// NewGeminiService builds the Gemini backend of the model gateway.
func NewGeminiService(apiKey, modelName string) (LLMService, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:    client,
		modelName: modelName,
	}, nil
}

// CompleteText implements LLMService.
func (g *geminiService) CompleteText(ctx context.Context, messages []Message) (string, error) {
	system, user := splitSystemUser(messages)

	config := g.generateConfig(system)
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, genai.Text(user), config)
	if err != nil {
		return "", &ModelInvocationError{Provider: ProviderGemini, Op: "complete_text", Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &ModelInvocationError{
			Provider: ProviderGemini,
			Op:       "complete_text",
			Err:      fmt.Errorf("no text content in response"),
		}
	}
	return text, nil
}

// CompleteVision implements LLMService.
func (g *geminiService) CompleteVision(ctx context.Context, messages []Message, images []ImageInput) (string, error) {
	system, user := splitSystemUser(messages)

	parts := []*genai.Part{genai.NewPartFromText(user)}
	for _, img := range images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	config := g.generateConfig(system)
	resp, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, config)
	if err != nil {
		return "", &ModelInvocationError{Provider: ProviderGemini, Op: "complete_vision", Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &ModelInvocationError{
			Provider: ProviderGemini,
			Op:       "complete_vision",
			Err:      fmt.Errorf("no text content in response"),
		}
	}
	return text, nil
}

func (g *geminiService) generateConfig(system string) *genai.GenerateContentConfig {
	temperature := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return config
}
