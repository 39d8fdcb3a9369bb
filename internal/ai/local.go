package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultLocalEndpoint = "http://localhost:11434/v1"
	DefaultLocalModel    = "local-model"
	localNoKey           = "local-no-key"
)

var _ Provider = (*LocalProvider)(nil)

// LocalProvider talks to any OpenAI compatible chat completions server (Ollama, LocalAI, vLLM).
type LocalProvider struct {
	client *openai.Client
	model  string
}

func NewLocalProvider(endpoint, model, apiKey string) *LocalProvider {
	if endpoint == "" {
		endpoint = DefaultLocalEndpoint
	}
	if model == "" {
		model = DefaultLocalModel
	}
	if apiKey == "" {
		apiKey = localNoKey
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(endpoint, "/")
	return &LocalProvider{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (p *LocalProvider) Name() string {
	return ProviderLocal
}

func (p *LocalProvider) Generate(ctx context.Context, req Request) (string, error) {
	var messages []openai.ChatCompletionMessage
	if req.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.SystemInstruction,
		})
	}

	userMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(req.Images) == 0 {
		userMsg.Content = req.Prompt
	} else {
		userMsg.MultiContent = []openai.ChatMessagePart{
			{Type: openai.ChatMessagePartTypeText, Text: req.Prompt},
		}
		for _, img := range req.Images {
			userMsg.MultiContent = append(userMsg.MultiContent, openai.ChatMessagePart{
				Type: openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{
					URL:    fmt.Sprintf("data:%s;base64,%s", img.MimeType, base64.StdEncoding.EncodeToString(img.Data)),
					Detail: openai.ImageURLDetailAuto,
				},
			})
		}
	}
	messages = append(messages, userMsg)

	temperature := float32(1)
	if req.Temperature != nil {
		temperature = *req.Temperature
	}

	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
	}
	if req.ResponseSchema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("local ai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
