package brandfetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBrand(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantErr  string
		wantName string
	}{
		{
			name:   "success",
			status: http.StatusOK,
			body: `{
				"name": "Stripe",
				"domain": "stripe.com",
				"description": "Financial infrastructure for the internet.",
				"logos": [{"type": "logo", "theme": "dark", "formats": [{"src": "https://cdn.brandfetch.io/stripe.svg", "format": "svg"}]}],
				"colors": [{"hex": "#635BFF", "type": "brand"}],
				"company": {"industries": [{"name": "FinTech", "score": 0.97}]}
			}`,
			wantName: "Stripe",
		},
		{
			name:    "not_found",
			status:  http.StatusNotFound,
			body:    `{"message":"brand not found"}`,
			wantErr: "unexpected status 404",
		},
		{
			name:    "server_error",
			status:  http.StatusInternalServerError,
			body:    `{"message":"boom"}`,
			wantErr: "unexpected status 500",
		},
		{
			name:    "malformed_response",
			status:  http.StatusOK,
			body:    `{bad`,
			wantErr: "unmarshal response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "/brands/stripe.com", r.URL.Path)
				assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient("test-key", WithBaseURL(srv.URL))
			brand, err := client.Brand(context.Background(), "stripe.com")

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, brand)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, brand)
			assert.Equal(t, tt.wantName, brand.Name)
			assert.Equal(t, "Financial infrastructure for the internet.", brand.Description)
			require.Len(t, brand.Colors, 1)
			assert.Equal(t, "#635BFF", brand.Colors[0].Hex)
			require.Len(t, brand.Company.Industries, 1)
			assert.Equal(t, "FinTech", brand.Company.Industries[0].Name)
		})
	}
}

func TestPrimaryLogoURL(t *testing.T) {
	tests := []struct {
		name  string
		brand Brand
		want  string
	}{
		{
			name: "first_format_wins",
			brand: Brand{Logos: []Logo{
				{Formats: []LogoFormat{{Src: "https://cdn.example.com/a.svg"}, {Src: "https://cdn.example.com/b.png"}}},
			}},
			want: "https://cdn.example.com/a.svg",
		},
		{
			name: "skips_empty_formats",
			brand: Brand{Logos: []Logo{
				{Formats: []LogoFormat{{Src: ""}}},
				{Formats: []LogoFormat{{Src: "https://cdn.example.com/c.png"}}},
			}},
			want: "https://cdn.example.com/c.png",
		},
		{
			name:  "no_logos",
			brand: Brand{},
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.brand.PrimaryLogoURL())
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
