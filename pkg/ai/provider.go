package ai

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	apperrors "github.com/paper-code/go-papercode/pkg/errors"
	"github.com/paper-code/go-papercode/pkg/logger"
	"github.com/paper-code/go-papercode/pkg/metrics"
	"github.com/paper-code/go-papercode/pkg/tracer"
)

// UnavailableHint is the remedy reported with AIUnavailable.
const UnavailableHint = "set OPENAI_API_KEY (or ai.api_key) to enable AI descriptions"

// Config selects and tunes the OpenAI-compatible chat model.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// Option customises a Provider.
type Option func(*Provider)

// WithChatModel injects a ready chat model, bypassing lazy construction.
// Availability then no longer depends on an API key.
func WithChatModel(m model.BaseChatModel) Option {
	return func(p *Provider) {
		p.chatModel = m
	}
}

// WithLogger sets the provider logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) {
		if l != nil {
			p.logger = l
		}
	}
}

// Provider produces project descriptions with a single chat completion per
// call. It never retries.
type Provider struct {
	cfg    Config
	logger *slog.Logger

	mu        sync.Mutex
	chatModel model.BaseChatModel
}

// New constructs a Provider. The chat model is created on the first Describe.
func New(cfg Config, opts ...Option) *Provider {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	p := &Provider{cfg: cfg, logger: logger.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Available reports whether Describe can be attempted. It inspects local
// configuration only and never touches the network.
func (p *Provider) Available() bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.chatModel != nil || p.cfg.APIKey != ""
}

// Model returns the configured model name.
func (p *Provider) Model() string {
	return p.cfg.Model
}

// Describe asks the model for a project description and returns it trimmed.
func (p *Provider) Describe(ctx context.Context, in DescribeInput) (string, error) {
	if !p.Available() {
		return "", apperrors.AIUnavailable(UnavailableHint)
	}

	ctx, span := tracer.Start(ctx, "ai.describe")
	defer span.End()
	span.SetAttributes(
		attribute.String("ai.model", p.cfg.Model),
		attribute.String("project.tech_stack", in.TechStack),
	)

	start := time.Now()
	text, err := p.describe(ctx, in)
	status := "ok"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Enrich(ctx, p.logger).Warn("ai description failed", "model", p.cfg.Model, "error", err.Error())
	}
	metrics.RecordAICall(p.cfg.Model, status, time.Since(start))
	return text, err
}

func (p *Provider) describe(ctx context.Context, in DescribeInput) (string, error) {
	chatModel, err := p.model(ctx)
	if err != nil {
		return "", apperrors.AIRequestFailed(err)
	}

	msgs, err := BuildMessages(ctx, in)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeInternal, "build AI prompt")
	}

	resp, err := chatModel.Generate(ctx, msgs)
	if err != nil {
		return "", apperrors.AIRequestFailed(err)
	}
	if resp == nil {
		return "", apperrors.AIRequestFailed(errors.New("empty response from model"))
	}
	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", apperrors.AIRequestFailed(errors.New("model returned an empty completion"))
	}
	return text, nil
}

// model returns the chat model, creating the OpenAI client on first use.
func (p *Provider) model(ctx context.Context) (model.BaseChatModel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.chatModel != nil {
		return p.chatModel, nil
	}

	cfg := &openai.ChatModelConfig{
		APIKey:  p.cfg.APIKey,
		BaseURL: p.cfg.BaseURL,
		Model:   p.cfg.Model,
		Timeout: p.cfg.Timeout,
	}
	if p.cfg.MaxTokens > 0 {
		cfg.MaxTokens = &p.cfg.MaxTokens
	}
	if p.cfg.Temperature > 0 {
		temp := float32(p.cfg.Temperature)
		cfg.Temperature = &temp
	}

	chatModel, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	p.chatModel = chatModel
	return chatModel, nil
}
