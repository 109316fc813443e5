package oracle

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/vk/taskgraphgo/internal/ctxlog"
)

// Options configure the inference backend behind the collaborators.
type Options struct {
	// BaseURL points at any OpenAI-compatible chat-completion endpoint.
	// Empty means the upstream default.
	BaseURL     string
	APIKey      string
	Model       string
	Temperature float32
}

// Client is the production Oracle. One client is constructed per run and
// shared by every task; it holds no per-task state.
type Client struct {
	api   *openai.Client
	model string
	temp  float32
}

// NewClient builds an Oracle over the configured backend.
func NewClient(opts Options) *Client {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	return &Client{
		api:   openai.NewClientWithConfig(cfg),
		model: opts.Model,
		temp:  opts.Temperature,
	}
}

// AskActor implements Oracle.
func (c *Client) AskActor(ctx context.Context, input string) (string, error) {
	ctxlog.FromContext(ctx).Debug("Asking actor.", "model", c.model)
	return c.complete(ctx, actorSystemPrompt, input)
}

// AskAllocator implements Oracle.
func (c *Client) AskAllocator(ctx context.Context, input string) (AllocationResult, error) {
	ctxlog.FromContext(ctx).Debug("Asking allocator.", "model", c.model)
	raw, err := c.complete(ctx, allocatorSystemPrompt, input)
	if err != nil {
		return AllocationResult{}, err
	}
	return ParseAllocation(raw)
}

// DeriveTaskName implements Oracle.
func (c *Client) DeriveTaskName(ctx context.Context, goal string) (string, error) {
	ctxlog.FromContext(ctx).Debug("Deriving first task name.", "model", c.model)
	name, err := c.complete(ctx, namingSystemPrompt, goal)
	if err != nil {
		return "", err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("backend returned an empty task name")
	}
	// Keep the name usable as a node identity even if the model ignores the
	// single-identifier instruction.
	name = strings.Join(strings.Fields(name), "_")
	return name, nil
}

// complete performs one chat completion round trip.
func (c *Client) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: backend returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
