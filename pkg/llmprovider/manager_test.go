package llmprovider

import (
	"context"
	"errors"
	"testing"
	"time"

	"line-knowledge-assistant/config"
)

// mockProvider is a test implementation of the Provider interface
type mockProvider struct {
	name       string
	model      string
	shouldFail bool
	delay      time.Duration
	response   *Response
	callCount  int
	lastReq    *Request
}

func (m *mockProvider) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	m.callCount++
	m.lastReq = req
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.shouldFail {
		return nil, errors.New("mock provider error")
	}
	return m.response, nil
}

func (m *mockProvider) Name() string {
	return m.name
}

func (m *mockProvider) Model() string {
	return m.model
}

// mockLogger is a test implementation of the Logger interface
type mockLogger struct {
	infoMessages []string
	warnMessages []string
}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any) {
	m.infoMessages = append(m.infoMessages, template)
}
func (m *mockLogger) Warn(ctx context.Context, arg ...any) {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any) {
	m.warnMessages = append(m.warnMessages, template)
}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

func okResponse(provider string) *Response {
	return &Response{
		Content:      "Hello from " + provider,
		ProviderName: provider,
		ModelName:    provider + "-model",
		Usage:        &Usage{InputTokens: 100, OutputTokens: 50, TotalTokens: 150},
	}
}

func userRequest() *Request {
	return &Request{
		Messages:    []Message{{Role: "user", Content: "Hello"}},
		MaxTokens:   800,
		Temperature: 0.2,
		TopP:        0.95,
	}
}

func TestGenerateContent_SuccessWithPrimaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", response: okResponse("primary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary}, &Config{FallbackEnabled: true}, logger)

	req := userRequest()
	resp, err := manager.GenerateContent(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.ProviderName != "primary" {
		t.Errorf("Expected provider name 'primary', got: %s", resp.ProviderName)
	}
	if primary.callCount != 1 {
		t.Errorf("Expected primary provider to be called once, got: %d", primary.callCount)
	}
	if primary.lastReq != req {
		t.Errorf("Expected request to be passed through unchanged")
	}
	if len(logger.infoMessages) != 1 || len(logger.warnMessages) != 0 {
		t.Errorf("Expected 1 info and 0 warn logs, got %d/%d", len(logger.infoMessages), len(logger.warnMessages))
	}
}

func TestGenerateContent_FallbackToSecondaryProvider(t *testing.T) {
	primary := &mockProvider{name: "primary", model: "primary-model", shouldFail: true}
	secondary := &mockProvider{name: "secondary", model: "secondary-model", response: okResponse("secondary")}
	logger := &mockLogger{}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true}, logger)

	resp, err := manager.GenerateContent(context.Background(), userRequest())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if resp.ProviderName != "secondary" {
		t.Errorf("Expected provider name 'secondary', got: %s", resp.ProviderName)
	}
	// Each provider is tried exactly once.
	if primary.callCount != 1 {
		t.Errorf("Expected primary provider to be called once, got: %d", primary.callCount)
	}
	if secondary.callCount != 1 {
		t.Errorf("Expected secondary provider to be called once, got: %d", secondary.callCount)
	}
	if len(logger.infoMessages) != 1 || len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 info and 1 warn logs, got %d/%d", len(logger.infoMessages), len(logger.warnMessages))
	}
}

func TestGenerateContent_AllProvidersFail(t *testing.T) {
	primary := &mockProvider{name: "primary", shouldFail: true}
	secondary := &mockProvider{name: "secondary", shouldFail: true}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: true}, &mockLogger{})

	resp, err := manager.GenerateContent(context.Background(), userRequest())
	if err == nil {
		t.Fatal("Expected error when all providers fail, got nil")
	}
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Errorf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if resp != nil {
		t.Errorf("Expected nil response, got: %v", resp)
	}
}

func TestGenerateContent_FallbackDisabled(t *testing.T) {
	primary := &mockProvider{name: "primary", shouldFail: true}
	secondary := &mockProvider{name: "secondary", response: okResponse("secondary")}
	manager := NewManager([]Provider{primary, secondary}, &Config{FallbackEnabled: false}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), userRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if secondary.callCount != 0 {
		t.Errorf("Expected secondary provider not to be called, got: %d", secondary.callCount)
	}
}

func TestGenerateContent_GlobalTimeout(t *testing.T) {
	slow := &mockProvider{name: "slow", delay: time.Second, response: okResponse("slow")}
	next := &mockProvider{name: "next", response: okResponse("next")}
	manager := NewManager([]Provider{slow, next}, &Config{
		FallbackEnabled: true,
		MaxTotalTimeout: 50 * time.Millisecond,
	}, &mockLogger{})

	_, err := manager.GenerateContent(context.Background(), userRequest())
	if !errors.Is(err, ErrAllProvidersFailed) {
		t.Fatalf("Expected ErrAllProvidersFailed, got: %v", err)
	}
	if next.callCount != 0 {
		t.Errorf("Expected no call after the deadline, got: %d", next.callCount)
	}
}

func TestGenerateContent_InvalidInput(t *testing.T) {
	manager := NewManager(nil, nil, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), userRequest()); !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
	}

	manager = NewManager([]Provider{&mockProvider{name: "p"}}, nil, &mockLogger{})
	if _, err := manager.GenerateContent(context.Background(), &Request{}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("Expected ErrInvalidRequest, got: %v", err)
	}
}

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "deepseek", Enabled: true, Priority: 2, APIKey: "ds-key", Model: "deepseek-chat"},
			{Name: "azure", Enabled: true, Priority: 1, APIKey: "az-key", BaseURL: "https://x.openai.azure.com", Model: "gpt-4o-mini", Timeout: "30s"},
			{Name: "openai", Enabled: false, Priority: 0, APIKey: "oa-key", Model: "gpt-4o-mini"},
			{Name: "openai", Enabled: true, Priority: 3, Model: "gpt-4o-mini"},
		},
	}

	logger := &mockLogger{}
	providers, err := InitializeProviders(cfg, logger)
	if err != nil {
		t.Fatalf("Failed to initialize providers: %v", err)
	}

	if len(providers) != 2 {
		t.Fatalf("Expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "azure" || providers[1].Name() != "deepseek" {
		t.Errorf("Expected azure then deepseek, got %s then %s", providers[0].Name(), providers[1].Name())
	}
	if providers[0].Model() != "gpt-4o-mini" {
		t.Errorf("Expected deployment gpt-4o-mini, got %s", providers[0].Model())
	}
	if len(logger.warnMessages) != 1 {
		t.Errorf("Expected 1 warning for the provider without key, got %d", len(logger.warnMessages))
	}
}

func TestInitializeProviders_Errors(t *testing.T) {
	if _, err := InitializeProviders(nil, nil); err == nil {
		t.Error("Expected error for nil config")
	}

	_, err := InitializeProviders(&config.LLMConfig{}, nil)
	if !errors.Is(err, ErrNoProvidersConfigured) {
		t.Errorf("Expected ErrNoProvidersConfigured, got: %v", err)
	}

	_, err = InitializeProviders(&config.LLMConfig{Providers: []config.ProviderConfig{
		{Name: "azure", Enabled: true, APIKey: "k", Model: "d", Timeout: "soon"},
	}}, nil)
	if err == nil {
		t.Error("Expected error when every provider fails to initialize")
	}
}
