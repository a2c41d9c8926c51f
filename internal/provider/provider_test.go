package provider

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/DocHatty/Vulpes-Celare-sub003/internal/config"
	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

func TestMockDeterministic(t *testing.T) {
	m := NewMock()
	req := Request{Role: models.RoleScout, Prompt: "scan src/filters for SSN patterns"}

	first, err := m.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	second, err := m.Execute(context.Background(), req)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	if first.Text != second.Text {
		t.Errorf("mock not deterministic: %q vs %q", first.Text, second.Text)
	}
	if !strings.Contains(first.Text, "scout") {
		t.Errorf("mock output missing role, got %q", first.Text)
	}
	if first.TokensUsed == nil || first.TokensUsed.Total() == 0 {
		t.Error("mock should report token usage")
	}
}

func TestMockFailOn(t *testing.T) {
	m := &MockCapability{FailOn: "poison"}

	if _, err := m.Execute(context.Background(), Request{Prompt: "clean prompt"}); err != nil {
		t.Errorf("unexpected fault: %v", err)
	}
	if _, err := m.Execute(context.Background(), Request{Prompt: "contains poison marker"}); err == nil {
		t.Error("expected fault for matching prompt")
	}
}

func TestMockHonorsCancellation(t *testing.T) {
	m := &MockCapability{Delay: 5 * time.Second}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		_, err := m.Execute(ctx, Request{Prompt: "slow"})
		done <- err
	}()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected cancellation error")
		}
	case <-time.After(time.Second):
		t.Fatal("mock did not honor cancellation")
	}
}

func TestFactory(t *testing.T) {
	ctx := context.Background()

	cap, err := New(ctx, config.ProviderConfig{Name: "mock"})
	if err != nil {
		t.Fatalf("mock factory: %v", err)
	}
	if _, ok := cap.(*MockCapability); !ok {
		t.Errorf("expected *MockCapability, got %T", cap)
	}

	// Empty name defaults to mock.
	cap, err = New(ctx, config.ProviderConfig{})
	if err != nil {
		t.Fatalf("default factory: %v", err)
	}
	if _, ok := cap.(*MockCapability); !ok {
		t.Errorf("expected *MockCapability for empty name, got %T", cap)
	}

	if _, err := New(ctx, config.ProviderConfig{Name: "hal9000"}); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestFactoryAnthropicRequiresKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	if _, err := New(context.Background(), config.ProviderConfig{Name: "anthropic"}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestToolLine(t *testing.T) {
	if got := toolLine(nil); got != "" {
		t.Errorf("empty tools should render nothing, got %q", got)
	}
	got := toolLine([]string{"read", "grep"})
	if !strings.Contains(got, "read, grep") {
		t.Errorf("unexpected tool line %q", got)
	}
}
