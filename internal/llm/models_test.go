package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var preferred = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant", "mixtral-8x7b-32768", "gemma2-9b-it"}

func TestSelectModel(t *testing.T) {
	tests := []struct {
		name    string
		live    []string
		want    string
		wantErr error
	}{
		{"second preference", []string{"whisper-large-v3", "llama-3.1-8b-instant"}, "llama-3.1-8b-instant", nil},
		{"first preference wins", []string{"gemma2-9b-it", "llama-3.3-70b-versatile"}, "llama-3.3-70b-versatile", nil},
		{"no preference live", []string{"qwen-2.5-32b"}, "qwen-2.5-32b", nil},
		{"empty", nil, "", ErrNoModels},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectModel(tt.live, preferred)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeProvider struct {
	models   []string
	listErr  error
	response string
	genErr   error
	lastReq  Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) ListModels(ctx context.Context) ([]string, error) {
	return f.models, f.listErr
}

func (f *fakeProvider) Generate(ctx context.Context, req Request) (string, error) {
	f.lastReq = req
	return f.response, f.genErr
}

func TestCompleterNegotiatesModel(t *testing.T) {
	p := &fakeProvider{models: []string{"whisper-large-v3", "llama-3.1-8b-instant"}, response: "ok"}
	c := NewCompleter(p, "", preferred, 0)

	out, err := c.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Equal(t, "llama-3.1-8b-instant", p.lastReq.Model)
}

func TestCompleterPinnedModelSkipsListing(t *testing.T) {
	p := &fakeProvider{listErr: errors.New("should not be called"), response: "ok"}
	c := NewCompleter(p, "my-model", preferred, 0)

	_, err := c.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "my-model", p.lastReq.Model)
}

func TestCompleterListingFailureUsesPreferences(t *testing.T) {
	p := &fakeProvider{listErr: errors.New("503"), response: "ok"}
	c := NewCompleter(p, "", preferred, 0)

	_, err := c.Generate(context.Background(), Request{Prompt: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b-versatile", p.lastReq.Model)
}

func TestCompleterNoModels(t *testing.T) {
	p := &fakeProvider{models: []string{}}
	c := NewCompleter(p, "", preferred, 0)

	_, err := c.Generate(context.Background(), Request{Prompt: "hi"})
	assert.ErrorIs(t, err, ErrNoModels)
}

func TestKindOf(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), &ProviderError{Kind: KindRateLimited, Err: errors.New("429")})
	assert.Equal(t, KindRateLimited, KindOf(wrapped))
	assert.Equal(t, KindGeneric, KindOf(errors.New("plain")))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindUnauthorized, classify(401, ""))
	assert.Equal(t, KindRateLimited, classify(429, ""))
	assert.Equal(t, KindModelUnavailable, classify(400, "model_decommissioned"))
	assert.Equal(t, KindGeneric, classify(500, ""))
}
