package executor

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/diffreq/internal/types"
)

func TestExecute(t *testing.T) {
	var gotMethod, gotBody, gotHeader, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Trace")
		gotQuery = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	req := &types.ResolvedRequest{
		Method:  http.MethodPost,
		URL:     server.URL + "/items?limit=10",
		Headers: http.Header{"X-Trace": {"abc"}, "Content-Type": {"application/json"}},
		Body:    `{"name":"a"}`,
	}

	resp, err := Execute(context.Background(), server.Client(), req)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "abc", gotHeader)
	assert.Equal(t, "limit=10", gotQuery)
	assert.Equal(t, `{"name":"a"}`, gotBody)

	assert.Equal(t, "HTTP/1.1", resp.Proto)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "Created", resp.StatusText)
	assert.Equal(t, "application/json", resp.Headers.Get("Content-Type"))
	assert.Equal(t, `{"ok":true}`, string(resp.Body))
	assert.Equal(t, 12, resp.RequestSize)
	assert.Equal(t, 11, resp.ResponseSize)
}

func TestExecuteStatusError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{"ok", http.StatusOK, false},
		{"no content", http.StatusNoContent, false},
		{"not modified", http.StatusNotModified, false},
		{"not found", http.StatusNotFound, true},
		{"server error", http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := Execute(context.Background(), server.Client(), &types.ResolvedRequest{
				Method: http.MethodGet,
				URL:    server.URL,
			})
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var statusErr *types.StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, tt.status, statusErr.Status)
			assert.ErrorIs(t, err, types.ErrNetwork)
		})
	}
}

func TestExecuteNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := Execute(context.Background(), nil, &types.ResolvedRequest{Method: http.MethodGet, URL: url})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNetwork)
}

func TestExecuteTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := Execute(ctx, server.Client(), &types.ResolvedRequest{Method: http.MethodGet, URL: server.URL})
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(ClientOptions{})
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, client.Timeout)

	client, err = NewClient(ClientOptions{Timeout: time.Second, InsecureSkipVerify: true})
	require.NoError(t, err)
	assert.Equal(t, time.Second, client.Timeout)
	transport, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	assert.True(t, transport.TLSClientConfig.InsecureSkipVerify)

	_, err = NewClient(ClientOptions{CAFile: "/nonexistent/ca.pem"})
	assert.Error(t, err)

	_, err = NewClient(ClientOptions{CertFile: "cert.pem"})
	assert.Error(t, err)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "0ms"},
		{999, "999ms"},
		{1000, "1.00s"},
		{1532, "1.53s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.ms))
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int
		want  string
	}{
		{0, "0B"},
		{1023, "1023B"},
		{1024, "1.00KB"},
		{1536, "1.50KB"},
		{1024 * 1024, "1.00MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.bytes))
	}
}
