package wikipedia

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eramap/pkg/constants"
	"github.com/agentstation/eramap/pkg/errors"
)

func TestClientFetch(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("testdata", "page.html"))
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "parse", q.Get("action"))
		assert.Equal(t, "中国年号列表", q.Get("page"))
		assert.Equal(t, "text", q.Get("prop"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "2", q.Get("formatversion"))
		assert.Equal(t, "zh-hant", q.Get("variant"))
		assert.Equal(t, constants.UserAgent, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"parse": map[string]any{"title": "中国年号列表", "text": string(page)},
		})
	}))
	defer server.Close()

	c := NewClient(WithAPIURL(server.URL))
	got, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(page), got)
	assert.Equal(t, SourceName, c.Name())
}

func TestClientFetchFailures(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantMsg    string
	}{
		{
			name: "non-200",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name: "api error body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"error":{"code":"missingtitle","info":"The page you specified doesn't exist."}}`))
			},
			wantStatus: http.StatusOK,
			wantMsg:    "missingtitle",
		},
		{
			name: "malformed json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>`))
			},
			wantStatus: http.StatusOK,
			wantMsg:    "malformed response",
		},
		{
			name: "no text",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"parse":{"title":"x"}}`))
			},
			wantStatus: http.StatusOK,
			wantMsg:    "no page text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(WithAPIURL(server.URL)).Fetch(context.Background())
			require.Error(t, err)
			assert.True(t, errors.IsFetchFailure(err))

			var apiErr *errors.APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, SourceName, apiErr.Source)
			if tt.wantMsg != "" {
				assert.Contains(t, apiErr.Message, tt.wantMsg)
			}
		})
	}
}

func TestClientFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewClient(WithAPIURL(server.URL), WithTimeout(50*time.Millisecond)).Fetch(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsFetchFailure(err))
	assert.True(t, errors.IsTimeout(err))
}

func TestClientFetchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(WithAPIURL("http://127.0.0.1:1")).Fetch(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsFetchFailure(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, errors.IsCanceled(err))
}

func TestEndpoint(t *testing.T) {
	c := NewClient(WithAPIURL("https://example.org/w/api.php"), WithPage("A B"), WithVariant(""))
	assert.Equal(t, "https://example.org/w/api.php?action=parse&format=json&formatversion=2&page=A+B&prop=text", c.Endpoint())
}

func TestFile(t *testing.T) {
	f := NewFile(filepath.Join("testdata", "page.html"))
	got, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, got, "泰始")
	assert.Equal(t, "file", f.Name())

	_, err = NewFile(filepath.Join(t.TempDir(), "missing.html")).Fetch(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
