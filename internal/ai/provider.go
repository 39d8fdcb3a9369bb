package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const (
	ProviderGemini = "gemini"
	ProviderLocal  = "local"
)

var (
	ErrUnknownProvider = errors.New("unknown ai provider")
	ErrEmptyResponse   = errors.New("empty ai response")
)

type Image struct {
	MimeType string
	Data     []byte
}

// Request is a single generation call. ResponseSchema switches the provider to JSON output.
type Request struct {
	SystemInstruction string
	Prompt            string
	Images            []Image
	ResponseSchema    *genai.Schema
	Temperature       *float32
	ThinkingBudget    *int32
	// overrides the provider's default model when set
	Model string
}

type Provider interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

type ProviderConfig struct {
	Provider      string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	LocalEndpoint string
	LocalModel    string
	LocalAPIKey   string
}

// NewProvider returns the provider named in cfg.Provider.
func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiBaseURL)
	case ProviderLocal:
		return NewLocalProvider(cfg.LocalEndpoint, cfg.LocalModel, cfg.LocalAPIKey), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
