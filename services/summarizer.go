package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Summarizer produces a concise summary of a piece of text, optionally
// bounded to maxWords words (0 means no bound).
type Summarizer interface {
	SummarizeText(ctx context.Context, text string, maxWords int) (string, error)
}

// GeminiSummarizer calls the Gemini API. The client is created once at
// startup and reused for every request.
type GeminiSummarizer struct {
	client *genai.Client
	model  string
}

// NewGeminiSummarizer builds the summarizer. It fails immediately when
// GEMINI_API_KEY is not configured rather than on the first call.
func NewGeminiSummarizer(ctx context.Context) (*GeminiSummarizer, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY not found in environment")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("could not create Gemini client: %w", err)
	}

	return &GeminiSummarizer{
		client: client,
		model:  "gemini-2.0-flash",
	}, nil
}

func (s *GeminiSummarizer) Close() error {
	return s.client.Close()
}

// BuildSummaryPrompt composes the instruction sent to the model.
func BuildSummaryPrompt(text string, maxWords int) string {
	prompt := "Please provide a concise summary of the following text:\n\n"
	if maxWords > 0 {
		prompt = fmt.Sprintf("Please provide a concise summary (max %d words) of the following text:\n\n", maxWords)
	}
	return prompt + text
}

func (s *GeminiSummarizer) SummarizeText(ctx context.Context, text string, maxWords int) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", errors.New("text content cannot be empty")
	}

	model := s.client.GenerativeModel(s.model)
	// Low temperature for focused, low-variability summaries
	model.SetTemperature(0.3)
	model.SetMaxOutputTokens(500)

	resp, err := model.GenerateContent(ctx, genai.Text(BuildSummaryPrompt(text, maxWords)))
	if err != nil {
		return "", fmt.Errorf("failed to summarize text: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no usable result")
	}

	return strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])), nil
}
