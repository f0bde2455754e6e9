package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatusServer(t *testing.T, status int, delay time.Duration) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected method GET, got %s", r.Method)
		}
		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestClient_Get(t *testing.T) {
	tests := []struct {
		name   string
		status int
	}{
		{"ok", http.StatusOK},
		{"not found", http.StatusNotFound},
		{"server error", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newStatusServer(t, tt.status, 0)
			client := NewClient(WithTimeout(5 * time.Second))

			status, err := client.Get(context.Background(), server.URL)
			require.NoError(t, err)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestClient_UserAgent(t *testing.T) {
	got := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(WithUserAgent("volley-test"))
	_, err := client.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "volley-test", <-got)
}

func TestClient_ContextTimeout(t *testing.T) {
	server := newStatusServer(t, http.StatusOK, time.Second)
	client := NewClient(WithTimeout(5 * time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline error, got %v", err)
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := NewClient(WithTimeout(time.Second))
	_, err := client.Get(context.Background(), url)
	assert.Error(t, err)
}

func TestClient_InvalidURL(t *testing.T) {
	client := NewClient()
	_, err := client.Get(context.Background(), "://bad")
	assert.Error(t, err)
}

func TestClient_WithOptions(t *testing.T) {
	client := NewClient(
		WithTimeout(3*time.Second),
		WithMaxConnsPerHost(64),
		WithInsecureSkipVerify(true),
	)

	assert.Equal(t, 3*time.Second, client.httpClient.Timeout)

	transport, ok := client.httpClient.Transport.(*http.Transport)
	require.True(t, ok)
	assert.Equal(t, 64, transport.MaxConnsPerHost)
	assert.Equal(t, 64, transport.MaxIdleConnsPerHost)
	require.NotNil(t, transport.TLSClientConfig)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)
}

func TestClient_DNSCache(t *testing.T) {
	server := newStatusServer(t, http.StatusOK, 0)
	client := NewClient(WithDNSCache(NewResolver(nil)))

	for i := 0; i < 3; i++ {
		status, err := client.Get(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, status)
	}
	client.CloseIdleConnections()
}
