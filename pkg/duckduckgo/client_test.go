package duckduckgo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstantAnswer(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantErr     string
		wantHeading string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"Heading": "Stripe",
				"AbstractText": "Stripe is a payments company.",
				"AbstractURL": "https://stripe.com",
				"AbstractSource": "Wikipedia",
				"RelatedTopics": [{"Text": "Stripe Inc", "FirstURL": "https://stripe.com"}]
			}`,
			wantHeading: "Stripe",
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `oops`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{not json`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "Stripe", r.URL.Query().Get("q"))
				assert.Equal(t, "json", r.URL.Query().Get("format"))
				assert.Equal(t, "1", r.URL.Query().Get("no_redirect"))
				assert.Equal(t, "1", r.URL.Query().Get("no_html"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(WithBaseURL(srv.URL))
			answer, err := client.InstantAnswer(context.Background(), "Stripe")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, answer)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, answer)
			assert.Equal(t, tt.wantHeading, answer.Heading)
			assert.Equal(t, "Stripe is a payments company.", answer.AbstractText)
			assert.Equal(t, "https://stripe.com", answer.AbstractURL)
			require.Len(t, answer.RelatedTopics, 1)
			assert.Equal(t, "Stripe Inc", answer.RelatedTopics[0].Text)
		})
	}
}

func TestInstantAnswer_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(WithBaseURL(srv.URL))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.InstantAnswer(ctx, "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send request")
}

func TestNewClient_Defaults(t *testing.T) {
	t.Parallel()
	c := NewClient()
	hc := c.(*httpClient)
	assert.Equal(t, defaultBaseURL, hc.baseURL)
	assert.NotNil(t, hc.http)
	assert.NotNil(t, hc.http.Transport)
}
