package services

import (
	"context"
	"encoding/base64"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type openaiService struct {
	client    *openai.Client
	modelName string
}

// NewOpenAIService builds the OpenAI backend of the model gateway.
func NewOpenAIService(apiKey, modelName string) LLMService {
	return &openaiService{
		client:    openai.NewClient(apiKey),
		modelName: modelName,
	}
}

// CompleteText implements LLMService.
func (o *openaiService) CompleteText(ctx context.Context, messages []Message) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleSystem {
			role = openai.ChatMessageRoleSystem
		}
		chatMessages = append(chatMessages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.modelName,
		Messages:    chatMessages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", &ModelInvocationError{Provider: ProviderOpenAI, Op: "complete_text", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ModelInvocationError{
			Provider: ProviderOpenAI,
			Op:       "complete_text",
			Err:      fmt.Errorf("no choices in response"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}

// CompleteVision implements LLMService. Images go in as data URLs alongside
// the user text, the way the chat completions vision API expects.
func (o *openaiService) CompleteVision(ctx context.Context, messages []Message, images []ImageInput) (string, error) {
	system, user := splitSystemUser(messages)

	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: user},
	}
	for _, img := range images {
		encoded := base64.StdEncoding.EncodeToString(img.Data)
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: fmt.Sprintf("data:%s;base64,%s", img.MIMEType, encoded),
			},
		})
	}

	chatMessages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: system},
		{Role: openai.ChatMessageRoleUser, MultiContent: parts},
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.modelName,
		Messages:  chatMessages,
		MaxTokens: 4096,
	})
	if err != nil {
		return "", &ModelInvocationError{Provider: ProviderOpenAI, Op: "complete_vision", Err: err}
	}
	if len(resp.Choices) == 0 {
		return "", &ModelInvocationError{
			Provider: ProviderOpenAI,
			Op:       "complete_vision",
			Err:      fmt.Errorf("no choices in response"),
		}
	}
	return resp.Choices[0].Message.Content, nil
}
