package insight

import (
	"context"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"

	"github.com/prospectiq/brief-cli/internal/model"
)

// AnthropicGenerator produces insight sections through the Anthropic
// Messages API.
type AnthropicGenerator struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

// NewAnthropicGenerator creates the generator.
func NewAnthropicGenerator(apiKey, model string, maxTokens int) *AnthropicGenerator {
	if maxTokens <= 0 {
		maxTokens = 1200
	}
	return &AnthropicGenerator{
		client:    sdk.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		maxTokens: int64(maxTokens),
	}
}

// Generate implements the insight generator boundary.
func (g *AnthropicGenerator) Generate(ctx context.Context, prompt model.GroundingPrompt) (model.InsightSections, error) {
	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: g.maxTokens,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(prompt.Instruction)),
		},
		Temperature: sdk.Float(0.3),
	})
	if err != nil {
		return model.InsightSections{}, eris.Wrap(err, "insight: anthropic message")
	}

	var text strings.Builder
	for _, block := range msg.Content {
		text.WriteString(block.Text)
	}
	if text.Len() == 0 {
		return model.InsightSections{}, eris.New("insight: empty completion")
	}

	return ParseSections(text.String()), nil
}

// InferIndustry runs a short, low-cost industry classification.
func (g *AnthropicGenerator) InferIndustry(ctx context.Context, name, summary string) (string, error) {
	if summary == "" {
		summary = "No summary available."
	}
	instruction := "Classify the industry for the company named '" + name + "'. Summary: " + summary +
		"\nReturn only a short phrase like 'FinTech', 'AI Consulting', 'Healthcare SaaS'."

	msg, err := g.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(g.model),
		MaxTokens: 30,
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(instruction)),
		},
		Temperature: sdk.Float(0),
	})
	if err != nil {
		return "", eris.Wrap(err, "insight: infer industry")
	}

	var text strings.Builder
	for _, block := range msg.Content {
		text.WriteString(block.Text)
	}
	return strings.Trim(strings.TrimSpace(text.String()), `"'.`), nil
}
