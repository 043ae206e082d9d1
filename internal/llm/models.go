package llm

import (
	"context"
	"io"
	"time"

	"github.com/agenthands/storymap/internal/logging"
	"github.com/agenthands/storymap/internal/metrics"
)

// SelectModel walks preferred in order and returns the first model present
// in live. With no preferred model live it returns the first live model.
func SelectModel(live, preferred []string) (string, error) {
	if len(live) == 0 {
		return "", ErrNoModels
	}
	available := make(map[string]struct{}, len(live))
	for _, m := range live {
		available[m] = struct{}{}
	}
	for _, m := range preferred {
		if _, ok := available[m]; ok {
			return m, nil
		}
	}
	return live[0], nil
}

// Completer negotiates a model with the provider before each completion,
// unless a model is pinned.
type Completer struct {
	provider  Provider
	pinned    string
	preferred []string
	timeout   time.Duration
}

func NewCompleter(p Provider, pinned string, preferred []string, timeout time.Duration) *Completer {
	return &Completer{
		provider:  p,
		pinned:    pinned,
		preferred: preferred,
		timeout:   timeout,
	}
}

func (c *Completer) Name() string {
	return c.provider.Name()
}

// Close releases the provider's connections if it holds any.
func (c *Completer) Close() error {
	if closer, ok := c.provider.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ResolveModel returns the model the next completion would use.
func (c *Completer) ResolveModel(ctx context.Context) (string, error) {
	if c.pinned != "" {
		return c.pinned, nil
	}
	live, err := c.provider.ListModels(ctx)
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("provider", c.provider.Name()).
			Msg("model listing failed, using preference list")
		live = c.preferred
	}
	return SelectModel(live, c.preferred)
}

func (c *Completer) Generate(ctx context.Context, req Request) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	if req.Model == "" {
		model, err := c.ResolveModel(ctx)
		if err != nil {
			return "", err
		}
		req.Model = model
	}

	start := time.Now()
	out, err := c.provider.Generate(ctx, req)
	if err != nil {
		metrics.ObserveUpstream(c.provider.Name(), string(KindOf(err)), start)
		return "", err
	}
	metrics.ObserveUpstream(c.provider.Name(), "ok", start)

	logging.Ctx(ctx).Debug().Str("provider", c.provider.Name()).Str("model", req.Model).
		Int("chars", len(out)).Dur("took", time.Since(start)).Msg("completion")
	return out, nil
}
