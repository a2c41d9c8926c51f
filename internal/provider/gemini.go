package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// GeminiCapability executes tasks against the Gemini API.
type GeminiCapability struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini-backed capability. The ctx governs client
// construction only, not individual executions.
func NewGemini(ctx context.Context, cfg config.ProviderConfig) (*GeminiCapability, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini provider requires an API key (config provider.api_key or GOOGLE_API_KEY)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash"
	}

	return &GeminiCapability{client: client, model: model}, nil
}

// Execute runs one content generation round-trip. GenerativeModel values
// are cheap per-call wrappers, so each execution builds its own to keep
// the capability safe for concurrent use.
func (g *GeminiCapability) Execute(ctx context.Context, req Request) (*Response, error) {
	model := g.client.GenerativeModel(g.model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(req.SystemPrompt + toolLine(req.Tools))},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}

	out := &Response{Text: text.String()}
	if resp.UsageMetadata != nil {
		out.TokensUsed = &models.TokenUsage{
			Input:  int64(resp.UsageMetadata.PromptTokenCount),
			Output: int64(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return out, nil
}

// Close releases the underlying API client.
func (g *GeminiCapability) Close() error {
	return g.client.Close()
}
