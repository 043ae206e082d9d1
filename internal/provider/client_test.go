package provider

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONSendsQueryAndUserAgent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "StoryMap.ai/1.0", r.Header.Get("User-Agent"))
		assert.Equal(t, "Broken Hill", r.URL.Query().Get("q"))
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	c := New("test", time.Second, "StoryMap.ai/1.0")
	body, err := c.GetJSON(context.Background(), srv.URL, url.Values{"q": {"Broken Hill"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
}

func TestPostJSONEncodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"query":"uluru"}`, string(b))
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New("test", time.Second, "")
	_, err := c.PostJSON(context.Background(), srv.URL, map[string]string{"query": "uluru"})
	require.NoError(t, err)
}

func TestNon2xxReturnsStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("slow down"))
	}))
	defer srv.Close()

	c := New("test", time.Second, "")
	_, err := c.GetJSON(context.Background(), srv.URL, nil)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Equal(t, "slow down", se.Body)
}

func TestCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New("test", time.Second, "").GetJSON(ctx, srv.URL, nil)
	assert.Error(t, err)
}
