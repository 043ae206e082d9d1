package llm

import (
	"context"
)

// Request is a single chat completion: an optional system message plus one
// user prompt.
type Request struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

type LLMClient interface {
	Generate(ctx context.Context, req Request) (string, error)
}

type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

// Provider is a concrete completion backend.
type Provider interface {
	LLMClient
	ModelLister
	Name() string
}
