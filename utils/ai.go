package utils

import (
	"context"
	"errors"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var ErrAIDisabled = errors.New("gemini api key not configured")

type AIConfig struct {
	APIKey string
	Model  string
	// MaxTokens caps the reply; zero leaves the model default.
	MaxTokens int32
}

func NewAIClient(ctx context.Context, cfg AIConfig) (*genai.Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrAIDisabled
	}
	return genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
}

// Prompt opens a client, asks a single text question and returns the
// concatenated text parts of every candidate.
func Prompt(ctx context.Context, cfg AIConfig, prompt string) (string, error) {
	client, err := NewAIClient(ctx, cfg)
	if err != nil {
		return "", err
	}
	defer client.Close()

	m := client.GenerativeModel(cfg.Model)
	m.SetTemperature(0.2)
	if cfg.MaxTokens > 0 {
		m.SetMaxOutputTokens(cfg.MaxTokens)
	}
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	return responseText(resp), nil
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var parts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, p := range cand.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				parts = append(parts, string(t))
			}
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}
