package narrative

import (
	"context"
	"strings"
	"sync"

	"github.com/agenthands/storymap/internal/llm"
	"github.com/agenthands/storymap/internal/search"
)

type MockLLM struct {
	mu       sync.Mutex
	Response string
	Err      error
	// Respond overrides Response/Err when set.
	Respond  func(req llm.Request) (string, error)
	Requests []llm.Request
}

func (m *MockLLM) Generate(ctx context.Context, req llm.Request) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.Respond != nil {
		return m.Respond(req)
	}
	return m.Response, m.Err
}

// MockSearcher answers queries containing a key of Answers and fails
// everything else.
type MockSearcher struct {
	Answers map[string]*search.Response
	Err     error
}

func (m *MockSearcher) Search(ctx context.Context, req search.Request) (*search.Response, error) {
	for key, resp := range m.Answers {
		if strings.Contains(req.Query, key) {
			return resp, nil
		}
	}
	return nil, m.Err
}
