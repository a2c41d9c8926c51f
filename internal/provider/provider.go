// Package provider implements the executor capability: the external
// collaborator that actually performs a task given a prompt and tool set.
// All implementations must be safe for concurrent calls; the engine treats
// Execute as an atomic request/response and owns all timeout enforcement.
package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// Request is one task execution request.
type Request struct {
	// Role selects the specialist persona.
	Role models.Role
	// SystemPrompt is the role's prompt template.
	SystemPrompt string
	// Prompt is the assembled task instruction text.
	Prompt string
	// Tools is the role's allowed tool set, advisory to the backend.
	Tools []string
	// Timeout is the task's configured timeout, advisory to the backend;
	// the engine enforces it regardless.
	Timeout time.Duration
}

// Response is a successful execution outcome.
type Response struct {
	Text       string
	Findings   *models.Findings
	TokensUsed *models.TokenUsage
}

// Capability executes one task. Implementations return an error for any
// backend fault; the engine captures it as a failed Result rather than
// propagating it.
type Capability interface {
	Execute(ctx context.Context, req Request) (*Response, error)
}

// New builds the capability named by the provider configuration.
// Unknown names are an error; an empty name means mock.
func New(ctx context.Context, cfg config.ProviderConfig) (Capability, error) {
	switch strings.ToLower(cfg.Name) {
	case "", "mock":
		return NewMock(), nil
	case "anthropic":
		return NewAnthropic(cfg)
	case "ollama":
		return NewOllama(cfg)
	case "gemini":
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}
}

// toolLine renders the allowed tool set for inclusion in a system prompt.
func toolLine(tools []string) string {
	if len(tools) == 0 {
		return ""
	}
	return "\n\nAllowed tools: " + strings.Join(tools, ", ")
}
