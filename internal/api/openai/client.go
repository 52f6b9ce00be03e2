package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/Alias1177/TradeVault/internal/metrics"
	"github.com/Alias1177/TradeVault/internal/model"
)

// FallbackReply is returned by Reply when the assistant cannot be reached.
const FallbackReply = "Error connecting to AI."

const defaultMaxTokens = 1000

// Message is one turn of a conversation.
type Message struct {
	Role    string
	Content string
}

// Conversation roles
const (
	RoleUser      = openai.ChatMessageRoleUser
	RoleAssistant = openai.ChatMessageRoleAssistant
)

// User builds a single user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Options configures the assistant client.
type Options struct {
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int
	Metrics   *metrics.Metrics
}

// Client wraps the OpenAI API client
type Client struct {
	client    *openai.Client
	model     string
	maxTokens int
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewClient creates a new OpenAI client
func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	if opts.Model == "" {
		opts.Model = openai.GPT4oMini
	}
	if opts.MaxTokens == 0 {
		opts.MaxTokens = defaultMaxTokens
	}

	return &Client{
		client:    openai.NewClientWithConfig(cfg),
		model:     opts.Model,
		maxTokens: opts.MaxTokens,
		metrics:   opts.Metrics,
		logger:    log.With().Str("component", "openai_client").Logger(),
	}
}

// Complete sends the conversation with an optional system prompt and returns
// the first choice. Failures wrap model.ErrCollaboratorUnavailable.
func (c *Client) Complete(ctx context.Context, system string, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages:  make([]openai.ChatCompletionMessage, 0, len(messages)+1),
	}
	if system != "" {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: system,
		})
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	c.logger.Debug().Int("messages", len(req.Messages)).Msg("Sending prompt to OpenAI")

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		c.logger.Error().Err(err).Msg("OpenAI API error")
		return "", fmt.Errorf("%w: %v", model.ErrCollaboratorUnavailable, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.logger.Warn().Msg("OpenAI returned empty choices")
		return "", fmt.Errorf("%w: empty completion", model.ErrCollaboratorUnavailable)
	}

	return resp.Choices[0].Message.Content, nil
}

// Reply is Complete with the failure turned into FallbackReply.
func (c *Client) Reply(ctx context.Context, system string, messages []Message) string {
	text, err := c.Complete(ctx, system, messages)
	if err != nil {
		c.metrics.ObserveAssistant(metrics.OutcomeFallback)
		return FallbackReply
	}
	c.metrics.ObserveAssistant(metrics.OutcomeOK)
	return text
}
