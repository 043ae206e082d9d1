package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/liushuangls/go-anthropic/v2"
)

const defaultClaudeModel = "claude-3-5-haiku-latest"

type ClaudeClient struct {
	client *anthropic.Client
	model  string
}

func NewClaudeClient(apiKey string, model string, baseURL string) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}
	if model == "" {
		model = defaultClaudeModel
	}
	return &ClaudeClient{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (c *ClaudeClient) Name() string {
	return "claude"
}

// ListModels reports the configured model; this SDK has no listing call.
func (c *ClaudeClient) ListModels(ctx context.Context) ([]string, error) {
	return []string{c.model}, nil
}

func (c *ClaudeClient) Generate(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	temperature := req.Temperature

	mreq := anthropic.MessagesRequest{
		Model:  anthropic.Model(req.Model),
		System: req.System,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(req.Prompt),
				},
			},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}
	if req.TopP > 0 {
		topP := req.TopP
		mreq.TopP = &topP
	}

	resp, err := c.client.CreateMessages(ctx, mreq)
	if err != nil {
		return "", c.wrap(err)
	}

	var sb strings.Builder
	for _, part := range resp.Content {
		if part.Text != nil {
			sb.WriteString(*part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &ProviderError{Provider: c.Name(), Kind: KindGeneric, Err: ErrEmptyCompletion}
	}
	return sb.String(), nil
}

func (c *ClaudeClient) wrap(err error) error {
	pe := &ProviderError{Provider: c.Name(), Kind: KindGeneric, Err: err}

	var reqErr *anthropic.RequestError
	if errors.As(err, &reqErr) {
		pe.StatusCode = reqErr.StatusCode
		pe.Kind = classify(reqErr.StatusCode, "")
	}

	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Type {
		case anthropic.ErrTypeAuthentication, anthropic.ErrTypePermission:
			pe.Kind = KindUnauthorized
		case anthropic.ErrTypeRateLimit:
			pe.Kind = KindRateLimited
		case anthropic.ErrTypeNotFound:
			pe.Kind = KindModelUnavailable
		}
	}
	return pe
}
