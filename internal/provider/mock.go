package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// MockCapability is the offline capability used in dev mode and tests.
// It is deterministic: the same request always produces the same response.
type MockCapability struct {
	// Delay simulates execution latency per task.
	Delay time.Duration
	// FailOn makes any request whose prompt contains the substring fault.
	FailOn string
}

// NewMock creates a mock capability with no delay.
func NewMock() *MockCapability {
	return &MockCapability{}
}

// Execute produces a canned response, honoring context cancellation
// during the simulated delay.
func (m *MockCapability) Execute(ctx context.Context, req Request) (*Response, error) {
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if m.FailOn != "" && strings.Contains(req.Prompt, m.FailOn) {
		return nil, fmt.Errorf("mock fault: prompt contains %q", m.FailOn)
	}

	summary := req.Prompt
	if idx := strings.IndexByte(summary, '\n'); idx >= 0 {
		summary = summary[:idx]
	}
	if len(summary) > 80 {
		summary = summary[:80]
	}

	return &Response{
		Text:     fmt.Sprintf("[mock %s] completed: %s", req.Role, summary),
		Findings: &models.Findings{},
		TokensUsed: &models.TokenUsage{
			Input:  int64(len(req.Prompt) / 4),
			Output: 32,
		},
	}, nil
}
