package newsdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatest(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		body      string
		wantErr   string
		wantCount int
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"status": "success",
				"totalResults": 2,
				"results": [
					{"title": "Acme raises Series B", "link": "https://news.example.com/a", "pubDate": "2026-08-01 10:00:00", "source_id": "example"},
					{"title": "Acme ships v2", "link": "https://news.example.com/b", "pubDate": "2026-07-15 09:00:00", "source_id": "example"}
				]
			}`,
			wantCount: 2,
		},
		{
			name:    "rate_limit",
			status:  http.StatusTooManyRequests,
			body:    `{"status":"error"}`,
			wantErr: "unexpected status 429",
		},
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"status":"error","results":{"message":"invalid api key"}}`,
			wantErr: "unexpected status 401",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{broken`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/news", r.URL.Path)
				assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
				assert.Equal(t, "Acme", r.URL.Query().Get("q"))
				assert.Equal(t, "en", r.URL.Query().Get("language"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))
			resp, err := client.Latest(context.Background(), "Acme")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, "success", resp.Status)
			require.Len(t, resp.Results, tt.wantCount)
			assert.Equal(t, "Acme raises Series B", resp.Results[0].Title)
			assert.Equal(t, "https://news.example.com/a", resp.Results[0].Link)
			assert.Equal(t, "example", resp.Results[0].SourceID)
		})
	}
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient("my-key")
	hc := c.(*httpClient)
	assert.Equal(t, "my-key", hc.apiKey)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.NotNil(t, hc.http)
}
