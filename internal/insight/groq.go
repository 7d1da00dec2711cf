package insight

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/prospectiq/brief-cli/internal/model"
	"github.com/prospectiq/brief-cli/pkg/groq"
)

// GroqGenerator produces insight sections through Groq's chat completions
// API. It also serves as the industry classifier.
type GroqGenerator struct {
	client    groq.Client
	model     string
	maxTokens int
}

// NewGroqGenerator creates the generator. An empty model uses the
// client's default.
func NewGroqGenerator(client groq.Client, model string, maxTokens int) *GroqGenerator {
	if maxTokens <= 0 {
		maxTokens = 1200
	}
	return &GroqGenerator{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}
}

// Generate implements the insight generator boundary.
func (g *GroqGenerator) Generate(ctx context.Context, prompt model.GroundingPrompt) (model.InsightSections, error) {
	temp := 0.3
	resp, err := g.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model:       g.model,
		Messages:    []groq.Message{{Role: "user", Content: prompt.Instruction}},
		Temperature: &temp,
		MaxTokens:   &g.maxTokens,
	})
	if err != nil {
		return model.InsightSections{}, eris.Wrap(err, "insight: groq completion")
	}
	if len(resp.Choices) == 0 {
		return model.InsightSections{}, eris.New("insight: empty completion")
	}

	return ParseSections(resp.Choices[0].Message.Content), nil
}

// InferIndustry runs a short, low-cost industry classification.
func (g *GroqGenerator) InferIndustry(ctx context.Context, name, summary string) (string, error) {
	if summary == "" {
		summary = "No summary available."
	}
	instruction := "Classify the industry for the company named '" + name + "'. Summary: " + summary +
		"\nReturn only a short phrase like 'FinTech', 'AI Consulting', 'Healthcare SaaS'."

	temp := 0.0
	maxTokens := 30
	resp, err := g.client.ChatCompletion(ctx, groq.ChatCompletionRequest{
		Model:       g.model,
		Messages:    []groq.Message{{Role: "user", Content: instruction}},
		Temperature: &temp,
		MaxTokens:   &maxTokens,
	})
	if err != nil {
		return "", eris.Wrap(err, "insight: infer industry")
	}
	if len(resp.Choices) == 0 {
		return "", eris.New("insight: empty industry completion")
	}

	return strings.Trim(strings.TrimSpace(resp.Choices[0].Message.Content), `"'.`), nil
}
