package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	tests := []struct {
		name        string
		htmlContent string
		wantText    string
		wantErr     bool
		statusCode  int
	}{
		{
			name: "article with several paragraphs",
			htmlContent: `<!DOCTYPE html>
				<html>
				<head><title>Release Notes</title></head>
				<body>
					<article>
						<h1>Release Notes for the New Runtime</h1>
						<p>The runtime now ships with a reworked scheduler for background jobs.</p>
						<p>Existing deployments pick up the change without configuration edits.</p>
					</article>
				</body>
				</html>`,
			wantText:   "reworked scheduler",
			statusCode: http.StatusOK,
		},
		{
			name: "minimal page",
			htmlContent: `<!DOCTYPE html>
				<html>
				<body>
					<p>Short announcement body</p>
				</body>
				</html>`,
			wantText:   "Short announcement body",
			statusCode: http.StatusOK,
		},
		{
			name:        "server error",
			htmlContent: "error",
			wantErr:     true,
			statusCode:  http.StatusInternalServerError,
		},
		{
			name:        "not found",
			htmlContent: "not found",
			wantErr:     true,
			statusCode:  http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				if tt.statusCode == http.StatusOK {
					w.Header().Set("Content-Type", "text/html")
				}
				_, _ = w.Write([]byte(tt.htmlContent))
			}))
			defer server.Close()

			extractor := NewExtractor(10*time.Second, "")

			text, err := extractor.Extract(context.Background(), server.URL)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Contains(t, text, tt.wantText)
		})
	}
}

func TestExtractor_Extract_UserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><p>Agent check body text</p></body></html>"))
	}))
	defer server.Close()

	extractor := NewExtractor(time.Second, "custom-agent/2.0")
	_, err := extractor.Extract(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "custom-agent/2.0", gotUA)
}

func TestExtractor_Extract_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("<html><body>Too late</body></html>"))
	}))
	defer server.Close()

	extractor := NewExtractor(100*time.Millisecond, "")

	_, err := extractor.Extract(context.Background(), server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context deadline exceeded")
}

func TestExtractor_Extract_InvalidURL(t *testing.T) {
	extractor := NewExtractor(time.Second, "")

	tests := []struct {
		name string
		link string
	}{
		{name: "empty url", link: ""},
		{name: "no scheme", link: "not-a-url"},
		{name: "unreachable host", link: "http://localhost:99999/test"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractor.Extract(context.Background(), tt.link)
			require.Error(t, err)
		})
	}
}

func TestExtractor_Extract_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
			return
		case <-time.After(5 * time.Second):
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("<html><body>Content</body></html>"))
		}
	}))
	defer server.Close()

	extractor := NewExtractor(5*time.Second, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.Extract(ctx, server.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "context canceled")
}
