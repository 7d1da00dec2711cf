package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/prospectiq/brief-cli/internal/model"
)

type stubAdapter struct {
	name string
}

func (s *stubAdapter) Name() string { return s.name }
func (s *stubAdapter) Fetch(ctx context.Context, q model.Query) model.PartialRecord {
	return model.PartialRecord{SourceID: s.name, OK: true}
}

func TestRegistry_PreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry().
		Register(&stubAdapter{name: "first"}).
		Register(&stubAdapter{name: "second"}).
		Register(&stubAdapter{name: "third"})

	assert.Equal(t, 3, r.Len())

	var names []string
	for _, a := range r.Adapters() {
		names = append(names, a.Name())
	}
	assert.Equal(t, []string{"first", "second", "third"}, names)
}

func TestExtractDomain(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"https_url", "https://www.acme.com/about", "acme.com"},
		{"http_url", "http://acme.io", "acme.io"},
		{"bare_domain", "acme.com", "acme.com"},
		{"bare_www_domain", "www.acme.com", "acme.com"},
		{"uppercase_host", "https://ACME.COM", "acme.com"},
		{"empty", "", ""},
		{"no_domain", "just words", ""},
		{"path_without_scheme", "acme.com/about", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDomain(tt.in))
		})
	}
}

func TestDisambiguate(t *testing.T) {
	assert.Equal(t, "Vector company tech startup business", disambiguate("Vector"))
	assert.Equal(t, "quantum company tech startup business", disambiguate("quantum"))
	assert.Equal(t, "Stripe", disambiguate("Stripe"))
	assert.Equal(t, "Acme Robotics", disambiguate("Acme Robotics"))
}
