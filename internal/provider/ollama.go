package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// OllamaCapability executes tasks against a local Ollama instance.
// The client is resolved from OLLAMA_HOST the way the ollama CLI does.
type OllamaCapability struct {
	client *api.Client
	model  string
}

// NewOllama creates an Ollama-backed capability.
func NewOllama(cfg config.ProviderConfig) (*OllamaCapability, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = "llama3.1"
	}

	return &OllamaCapability{client: client, model: model}, nil
}

// Execute runs one non-streaming chat completion.
func (o *OllamaCapability) Execute(ctx context.Context, req Request) (*Response, error) {
	stream := false
	chatReq := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: req.SystemPrompt + toolLine(req.Tools)},
			{Role: "user", Content: req.Prompt},
		},
		Stream: &stream,
	}

	var text strings.Builder
	var usage models.TokenUsage
	err := o.client.Chat(ctx, chatReq, func(resp api.ChatResponse) error {
		text.WriteString(resp.Message.Content)
		if resp.Done {
			usage.Input = int64(resp.Metrics.PromptEvalCount)
			usage.Output = int64(resp.Metrics.EvalCount)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	return &Response{Text: text.String(), TokensUsed: &usage}, nil
}
