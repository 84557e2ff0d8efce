package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// DescriptionService writes short product descriptions with Gemini.
type DescriptionService struct {
	Client    *genai.Client
	ModelName string
}

// NewDescriptionService initializes the Gemini client.
func NewDescriptionService(ctx context.Context, apiKey, modelName string) (*DescriptionService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	return &DescriptionService{Client: client, ModelName: modelName}, nil
}

// Close releases the underlying client.
func (s *DescriptionService) Close() error {
	return s.Client.Close()
}

// Describe returns a description for a product and the tokens it cost.
func (s *DescriptionService) Describe(ctx context.Context, title string, variantNames []string) (string, int, error) {
	model := s.Client.GenerativeModel(s.ModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(`You write product descriptions for a shoppable video feed. Two or three sentences, no markdown, no prices.`)},
	}

	res, err := model.GenerateContent(ctx, genai.Text(Prompt(title, variantNames)))
	if err != nil {
		return "", 0, fmt.Errorf("error generating description: %w", err)
	}

	tokens := 0
	if res.UsageMetadata != nil {
		tokens = int(res.UsageMetadata.TotalTokenCount)
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", tokens, nil
	}

	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String()), tokens, nil
}

// Prompt builds the user message for a product and its variant names.
func Prompt(title string, variantNames []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Product: %s\n", strings.TrimSpace(title))
	if len(variantNames) > 0 {
		fmt.Fprintf(&sb, "Available as: %s\n", strings.Join(variantNames, "; "))
	}
	return sb.String()
}
